package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fine returns max(0, days late) * perDayRate, with days counted on UTC calendar dates.
func Fine(dueDate, returnDateOrNow time.Time, perDayRate decimal.Decimal) decimal.Decimal {
	return FineWithCap(dueDate, returnDateOrNow, perDayRate, 0)
}

// FineWithCap is Fine with the billable days capped at maxDays. maxDays <= 0 disables the cap.
func FineWithCap(dueDate, returnDateOrNow time.Time, perDayRate decimal.Decimal, maxDays int) decimal.Decimal {
	days := DaysBetween(dueDate, returnDateOrNow)
	if days <= 0 {
		return decimal.Zero
	}

	if maxDays > 0 && days > maxDays {
		days = maxDays
	}

	return perDayRate.Mul(decimal.NewFromInt(int64(days)))
}
