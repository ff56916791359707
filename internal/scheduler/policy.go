package scheduler

import (
	"time"

	"github.com/bagdasarian/crm-service/internal/domain"
)

// Две политики намеренно независимы: сдвиг даты при обходе и проверка при чтении
// могут давать разный результат для одной и той же задачи.

// StartOfDay возвращает полночь календарного дня t в зоне loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	return StartOfDay(a, loc).Equal(StartOfDay(b, loc))
}

// CheckStatus - проверка при чтении: overdue, если срок строго раньше начала
// текущего дня; pending для сегодняшнего дня и будущих дат.
func CheckStatus(dueDate, now time.Time, loc *time.Location) domain.Status {
	if sameDay(dueDate, now, loc) {
		return domain.StatusPending
	}
	if dueDate.Before(StartOfDay(now, loc)) {
		return domain.StatusOverdue
	}
	return domain.StatusPending
}

// EffectiveStatus применяет CheckStatus только к задачам в статусе pending
func EffectiveStatus(task *domain.Task, now time.Time, loc *time.Location) domain.Status {
	if task.Status != domain.StatusPending {
		return task.Status
	}
	return CheckStatus(task.DueDate, now, loc)
}

// RollForward - политика обхода: просроченная pending-задача переносится
// ровно на один день вперед и остается pending. За один обход - один день.
func RollForward(task *domain.Task, now time.Time, loc *time.Location) (time.Time, bool) {
	if task.Status != domain.StatusPending {
		return task.DueDate, false
	}
	if !task.DueDate.Before(StartOfDay(now, loc)) {
		return task.DueDate, false
	}
	if loc == nil {
		loc = time.Local
	}
	// календарный день в зоне loc, а не 24 часа
	return task.DueDate.In(loc).AddDate(0, 0, 1), true
}
