package earnings

import (
	"time"

	"github.com/nurpe/courier-payroll/internal/model"
)

// FortnightRange returns the semi-monthly payroll period of month. The first
// half runs from the last day of the previous month through the 15th; the
// second from the 16th through the last day of month. Any half other than
// FirstHalf selects the second half.
func FortnightRange(year int, month time.Month, half model.Half) model.DateRange {
	if half == model.FirstHalf {
		prevYear, prevMonth := year, month-1
		if month == time.January {
			prevYear, prevMonth = year-1, time.December
		}
		return model.DateRange{
			Start: date(prevYear, prevMonth, DaysIn(prevYear, prevMonth)),
			End:   date(year, month, 15),
		}
	}
	return model.DateRange{
		Start: date(year, month, 16),
		End:   date(year, month, DaysIn(year, month)),
	}
}

// PreviousFortnight returns the last fortnight that ended strictly before the
// calendar day of reference.
func PreviousFortnight(reference time.Time) (int, time.Month, model.Half) {
	y, m, d := reference.Date()
	if d > 15 {
		return y, m, model.FirstHalf
	}
	if m == time.January {
		return y - 1, time.December, model.SecondHalf
	}
	return y, m - 1, model.SecondHalf
}

func DaysIn(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
