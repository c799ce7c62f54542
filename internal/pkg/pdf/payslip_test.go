package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPayslip(t *testing.T) {
	out, err := RenderPayslip(Payslip{
		CompanyName:  "PT Kirana Sejahtera",
		EmployeeName: "Dewi Lestari",
		EmployeeCode: "2024-0001",
		PeriodStart:  time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:    time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		Currency:     "IDR",

		BaseSalary:       decimal.NewFromInt(10_000_000),
		ProportionalBase: decimal.NewFromInt(9_000_000),
		OvertimeAmount:   decimal.NewFromInt(500_000),
		TotalDeductions:  decimal.NewFromInt(100_000),
		BonusAmount:      decimal.Zero,
		NetSalary:        decimal.NewFromInt(9_400_000),

		TotalWorkingDays:  21,
		TotalPresentDays:  19,
		TotalLeaveDays:    2,
		TotalPayableDays:  27,
		PayableDaysFactor: 0.9,
	})

	require.NoError(t, err)
	require.NotEmpty(t, out)
	// PDF files start with the %PDF header.
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderPayslipWithoutCompanyName(t *testing.T) {
	out, err := RenderPayslip(Payslip{
		EmployeeName: "Dewi Lestari",
		EmployeeCode: "2024-0001",
		PeriodStart:  time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:    time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		Currency:     "IDR",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
