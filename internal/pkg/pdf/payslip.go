package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Payslip holds everything the rendered document shows. Amounts arrive
// already computed; this package only formats.
type Payslip struct {
	CompanyName  string
	EmployeeName string
	EmployeeCode string
	PeriodStart  time.Time
	PeriodEnd    time.Time
	Currency     string

	BaseSalary       decimal.Decimal
	ProportionalBase decimal.Decimal
	OvertimeAmount   decimal.Decimal
	TotalDeductions  decimal.Decimal
	BonusAmount      decimal.Decimal
	NetSalary        decimal.Decimal

	TotalWorkingDays  int
	TotalPresentDays  float64
	TotalLeaveDays    float64
	TotalPayableDays  float64
	PayableDaysFactor float64
}

// RenderPayslip produces a single-page A4 payslip PDF.
func RenderPayslip(p Payslip) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(40, 10, "Payslip")
	doc.Ln(12)

	doc.SetFont("Helvetica", "", 12)
	if p.CompanyName != "" {
		doc.Cell(0, 8, p.CompanyName)
		doc.Ln(7)
	}
	doc.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", p.EmployeeName, p.EmployeeCode))
	doc.Ln(7)
	doc.Cell(0, 8, fmt.Sprintf("Period: %s to %s",
		p.PeriodStart.Format("2006-01-02"), p.PeriodEnd.Format("2006-01-02")))
	doc.Ln(10)

	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 8, "Attendance")
	doc.Ln(8)
	doc.SetFont("Helvetica", "", 12)
	doc.Cell(0, 8, fmt.Sprintf("Working days: %d   Present: %g   Leave: %g",
		p.TotalWorkingDays, p.TotalPresentDays, p.TotalLeaveDays))
	doc.Ln(7)
	doc.Cell(0, 8, fmt.Sprintf("Payable days: %g   Payable factor: %.4f",
		p.TotalPayableDays, p.PayableDaysFactor))
	doc.Ln(10)

	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 8, "Amounts")
	doc.Ln(8)
	doc.SetFont("Helvetica", "", 12)
	doc.Cell(0, 8, fmt.Sprintf("Base salary: %s %s", p.BaseSalary.StringFixed(2), p.Currency))
	doc.Ln(7)
	doc.Cell(0, 8, fmt.Sprintf("Prorated base: %s %s", p.ProportionalBase.StringFixed(2), p.Currency))
	doc.Ln(7)
	doc.Cell(0, 8, fmt.Sprintf("Overtime: %s %s", p.OvertimeAmount.StringFixed(2), p.Currency))
	doc.Ln(7)
	doc.Cell(0, 8, fmt.Sprintf("Deductions: %s %s", p.TotalDeductions.StringFixed(2), p.Currency))
	doc.Ln(7)
	doc.Cell(0, 8, fmt.Sprintf("Bonus: %s %s", p.BonusAmount.StringFixed(2), p.Currency))
	doc.Ln(7)
	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 8, fmt.Sprintf("Net salary: %s %s", p.NetSalary.StringFixed(2), p.Currency))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip: %w", err)
	}
	return buf.Bytes(), nil
}
