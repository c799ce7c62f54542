package payroll

import "github.com/shopspring/decimal"

// CalculateProportionalAmount scales a base amount by the payable-days
// factor produced by reconciliation.
func CalculateProportionalAmount(baseAmount decimal.Decimal, payableDaysFactor float64) decimal.Decimal {
	return baseAmount.Mul(decimal.NewFromFloat(payableDaysFactor))
}

// CalculateFinalPayrollAmount composes the net salary from the prorated
// base and the manual adjustments.
func CalculateFinalPayrollAmount(proportionalAmount, overtime, deductions, bonus decimal.Decimal) decimal.Decimal {
	return proportionalAmount.Add(overtime).Sub(deductions).Add(bonus)
}
