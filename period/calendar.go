package period

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

const (
	yearLayout  = "2006"
	monthLayout = "2006-01"
	dayLayout   = "2006-01-02"
)

// endOfDayNanos keeps end-of-day at millisecond precision: 23:59:59.999.
const endOfDayNanos = int(999 * time.Millisecond)

func startOfDay(t time.Time) time.Time {
	return now.With(t).BeginningOfDay()
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, endOfDayNanos, t.Location())
}

// lastOfMonth is the first day of the following month minus one day, which
// leaves leap years to the calendar.
func lastOfMonth(t time.Time) time.Time {
	first := now.With(t).BeginningOfMonth()
	return first.AddDate(0, 1, 0).AddDate(0, 0, -1)
}

func dayPeriod(t time.Time) Range {
	return Range{Start: startOfDay(t), End: endOfDay(t)}
}

func monthPeriod(t time.Time) Range {
	return Range{
		Start: now.With(t).BeginningOfMonth(),
		End:   endOfDay(lastOfMonth(t)),
	}
}

func quarterPeriod(t time.Time) Range {
	first := now.With(t).BeginningOfQuarter()
	return Range{
		Start: first,
		End:   endOfDay(lastOfMonth(first.AddDate(0, 2, 0))),
	}
}

func yearPeriod(t time.Time) Range {
	first := now.With(t).BeginningOfYear()
	return Range{
		Start: first,
		End:   endOfDay(lastOfMonth(first.AddDate(0, 11, 0))),
	}
}

// resolveRelative resolves a kind anchored on current, which is already in the
// target offset.
func resolveRelative(kind Kind, current time.Time) Range {
	today := startOfDay(current)
	thisMonth := now.With(today).BeginningOfMonth()

	switch kind {
	case Today:
		return dayPeriod(today)
	case Yesterday:
		return dayPeriod(today.AddDate(0, 0, -1))
	case CurrentMonth:
		return monthPeriod(thisMonth)
	case PreviousMonth:
		return monthPeriod(thisMonth.AddDate(0, -1, 0))
	case CurrentYear:
		return yearPeriod(thisMonth)
	case PreviousYear:
		return yearPeriod(thisMonth.AddDate(0, -12, 0))
	case MonthToDate:
		return Range{Start: thisMonth, End: current}
	case YearToDate:
		return Range{Start: now.With(today).BeginningOfYear(), End: current}
	case QuarterToDate:
		return Range{Start: now.With(today).BeginningOfQuarter(), End: current}
	}

	return Range{}
}

// resolveFixed resolves a token naming a calendar year, month, quarter or day.
// Field validity is left to time.ParseInLocation.
func resolveFixed(kind Kind, folded string, loc *time.Location) (Range, error) {
	switch kind {
	case Year:
		t, err := construct(yearLayout, folded, loc)
		if err != nil {
			return Range{}, err
		}
		return yearPeriod(t), nil
	case Month:
		t, err := construct(monthLayout, folded, loc)
		if err != nil {
			return Range{}, err
		}
		return monthPeriod(t), nil
	case Quarter:
		year, q, _ := strings.Cut(folded, "-q")
		n := int(q[0] - '0')
		t, err := construct(monthLayout, fmt.Sprintf("%s-%02d", year, (n-1)*3+1), loc)
		if err != nil {
			return Range{}, err
		}
		return quarterPeriod(t), nil
	case Day:
		t, err := construct(dayLayout, folded, loc)
		if err != nil {
			return Range{}, err
		}
		return dayPeriod(t), nil
	}

	return Range{}, ErrInvalidPeriod
}

func construct(layout, value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return t, nil
}
