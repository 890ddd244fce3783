package period

import (
	"fmt"
	"time"
)

// TimestampLayout renders period boundaries at millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000-07:00"

// Range is a resolved period. Both ends are inclusive and share one offset.
type Range struct {
	Kind  Kind      `json:"kind"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls within the range, boundaries included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

func (r Range) String() string {
	return fmt.Sprintf("%s - %s", r.Start.Format(TimestampLayout), r.End.Format(TimestampLayout))
}

// StartDate is the first calendar day of the range as YYYY-MM-DD.
func (r Range) StartDate() string {
	return r.Start.Format(dayLayout)
}

// EndDate is the last calendar day of the range as YYYY-MM-DD.
func (r Range) EndDate() string {
	return r.End.Format(dayLayout)
}

// Label names the range the way a fixed period token would: "2014",
// "2014-08", "2015-Q1" or "2014-08-19". To-date ranges are labelled by their
// first and last day.
func (r Range) Label() string {
	switch r.Kind {
	case Year, CurrentYear, PreviousYear:
		return r.Start.Format(yearLayout)
	case Month, CurrentMonth, PreviousMonth:
		return r.Start.Format(monthLayout)
	case Quarter:
		return fmt.Sprintf("%d-Q%d", r.Start.Year(), (int(r.Start.Month())-1)/3+1)
	case Day, Today, Yesterday:
		return r.Start.Format(dayLayout)
	}

	return fmt.Sprintf("%s..%s", r.StartDate(), r.EndDate())
}
