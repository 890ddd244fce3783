package period

import "regexp"

// Kind identifies which shape of the period grammar a token matched.
type Kind int

const (
	Unknown Kind = iota
	Today
	Yesterday
	CurrentMonth
	PreviousMonth
	CurrentYear
	PreviousYear
	MonthToDate
	YearToDate
	QuarterToDate
	Year
	Month
	Quarter
	Day
)

func (k Kind) String() string {
	switch k {
	case Today:
		return "today"
	case Yesterday:
		return "yesterday"
	case CurrentMonth:
		return "current month"
	case PreviousMonth:
		return "previous month"
	case CurrentYear:
		return "current year"
	case PreviousYear:
		return "previous year"
	case MonthToDate:
		return "month to date"
	case YearToDate:
		return "year to date"
	case QuarterToDate:
		return "quarter to date"
	case Year:
		return "year"
	case Month:
		return "month"
	case Quarter:
		return "quarter"
	case Day:
		return "day"
	}

	return "unknown"
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Relative reports whether the kind is anchored on the current moment.
func (k Kind) Relative() bool {
	return k >= Today && k <= QuarterToDate
}

// ToDate reports whether the period ends at the current moment instead of
// its natural end.
func (k Kind) ToDate() bool {
	return k == MonthToDate || k == YearToDate || k == QuarterToDate
}

// grammar is matched in order against the case-folded token; the first match wins.
var grammar = []struct {
	kind    Kind
	pattern *regexp.Regexp
}{
	{Today, regexp.MustCompile(`^today$`)},
	{Yesterday, regexp.MustCompile(`^(?:yesterday|yday)$`)},
	{CurrentMonth, regexp.MustCompile(`^current-month$`)},
	{PreviousMonth, regexp.MustCompile(`^previous-month$`)},
	{CurrentYear, regexp.MustCompile(`^current-year$`)},
	{PreviousYear, regexp.MustCompile(`^previous-year$`)},
	{MonthToDate, regexp.MustCompile(`^mtd$`)},
	{YearToDate, regexp.MustCompile(`^ytd$`)},
	{QuarterToDate, regexp.MustCompile(`^qtd$`)},
	{Year, regexp.MustCompile(`^\d{4}$`)},
	{Month, regexp.MustCompile(`^\d{4}-\d{2}$`)},
	{Quarter, regexp.MustCompile(`^\d{4}-q\d$`)},
	{Day, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)},
}

func match(folded string) Kind {
	for _, g := range grammar {
		if g.pattern.MatchString(folded) {
			return g.kind
		}
	}
	return Unknown
}
