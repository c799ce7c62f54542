package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateProportionalAmount(t *testing.T) {
	base := decimal.NewFromInt(10_000_000)

	full := CalculateProportionalAmount(base, 1.0)
	assert.True(t, full.Equal(base), "factor 1 keeps the full amount, got %s", full)

	none := CalculateProportionalAmount(base, 0)
	assert.True(t, none.IsZero())

	fourFifths := CalculateProportionalAmount(base, 0.8)
	assert.True(t, fourFifths.Equal(decimal.NewFromInt(8_000_000)), "got %s", fourFifths)
}

func TestCalculateFinalPayrollAmount(t *testing.T) {
	proportional := decimal.NewFromInt(8_000_000)
	overtime := decimal.NewFromInt(500_000)
	deductions := decimal.NewFromInt(250_000)
	bonus := decimal.NewFromInt(1_000_000)

	net := CalculateFinalPayrollAmount(proportional, overtime, deductions, bonus)
	assert.True(t, net.Equal(decimal.NewFromInt(9_250_000)), "got %s", net)

	zeroAdjustments := CalculateFinalPayrollAmount(proportional, decimal.Zero, decimal.Zero, decimal.Zero)
	assert.True(t, zeroAdjustments.Equal(proportional))
}
