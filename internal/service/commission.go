package service

import "github.com/shopspring/decimal"

// CommissionRate - фиксированная ставка 1%, поле комиссии задачи в расчете не участвует
var CommissionRate = decimal.NewFromFloat(0.01)

// Commission считает комиссию от полученной суммы. Проверка суммы > 0 - на вызывающем.
func Commission(amountCharged decimal.Decimal) decimal.Decimal {
	return amountCharged.Mul(CommissionRate)
}

// Total - сумма вместе с комиссией
func Total(amountCharged decimal.Decimal) decimal.Decimal {
	return amountCharged.Add(Commission(amountCharged))
}

// Пределы соответствуют колонкам NUMERIC(14,2) и NUMERIC(5,2)
const moneyScale = 2

var (
	MaxAmountCharged  = decimal.RequireFromString("999999999999.99")
	MaxCommissionRate = decimal.RequireFromString("999.99")
)

// fitsMoney: не больше двух знаков после запятой и не больше max
func fitsMoney(v, max decimal.Decimal) bool {
	return v.Equal(v.Truncate(moneyScale)) && v.LessThanOrEqual(max)
}

// FormatMoney форматирует сумму с двумя знаками для отображения
func FormatMoney(v decimal.Decimal) string {
	return v.StringFixed(2)
}
