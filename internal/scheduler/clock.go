package scheduler

import "time"

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock - часы реального времени
var SystemClock Clock = systemClock{}

// ClockFunc позволяет подставить функцию в качестве часов (удобно в тестах)
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// FixedClock всегда возвращает один и тот же момент
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
