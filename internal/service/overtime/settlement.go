package overtime

import (
	"time"

	"github.com/rosterlab/shift-backend-go/internal/domain/overtime"
	"github.com/rosterlab/shift-backend-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// SettlementCalculator turns a checkout into payable overtime hours.
// Pure; all inputs come in as arguments.
type SettlementCalculator struct {
	standardDay decimal.Decimal
}

// NewSettlementCalculator builds a calculator whose fallback threshold
// is the policy's standard working day in hours.
func NewSettlementCalculator(standardDayHours float64) overtime.Calculator {
	return &SettlementCalculator{standardDay: decimal.NewFromFloat(standardDayHours)}
}

// Settle implements overtime.Calculator.
//
// With a windowed approval the creditable interval is the overlap of
// [shiftEnd, checkout] and the approval window, and the result is capped
// at the approved hours. Without an approval only hours worked beyond
// the standard day are credited.
func (c *SettlementCalculator) Settle(shiftEnd, checkout time.Time, approval *overtime.Approval, workedHours decimal.Decimal) decimal.Decimal {
	if approval == nil {
		return round2(maxDecimal(decimal.Zero, workedHours.Sub(c.standardDay)))
	}

	if !approval.HasWindow() {
		beyond := maxDecimal(decimal.Zero, workedHours.Sub(c.standardDay))
		return round2(minDecimal(beyond, approval.CapHours))
	}

	winStart, err := schedule.ClockOn(shiftEnd, approval.WindowFrom)
	if err != nil {
		return decimal.Zero
	}
	winEnd, err := schedule.ClockOn(shiftEnd, approval.WindowTo)
	if err != nil {
		return decimal.Zero
	}
	// Window wrapping past midnight follows the same wall-clock rule as
	// shifts.
	if !winEnd.After(winStart) {
		winEnd = winEnd.AddDate(0, 0, 1)
	}

	from := shiftEnd
	if winStart.After(from) {
		from = winStart
	}
	to := checkout
	if winEnd.Before(to) {
		to = winEnd
	}

	if !to.After(from) {
		return decimal.Zero
	}

	minutes := decimal.NewFromFloat(to.Sub(from).Minutes())
	hours := minutes.Div(sixty)
	return round2(minDecimal(hours, approval.CapHours))
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func maxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

func minDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
