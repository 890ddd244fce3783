package period

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/carlmjohnson/be"
)

func format(t time.Time) string {
	return t.Format(TimestampLayout)
}

func TestResolveFixedPeriods(t *testing.T) {
	tests := []struct {
		name        string
		token       string
		offset      string
		expectStart string
		expectEnd   string
	}{
		{
			name:        "year",
			token:       "2014",
			expectStart: "2014-01-01T00:00:00.000+00:00",
			expectEnd:   "2014-12-31T23:59:59.999+00:00",
		},
		{
			name:        "year with offset",
			token:       "2014",
			offset:      "+0700",
			expectStart: "2014-01-01T00:00:00.000+07:00",
			expectEnd:   "2014-12-31T23:59:59.999+07:00",
		},
		{
			name:        "january",
			token:       "2014-01",
			expectStart: "2014-01-01T00:00:00.000+00:00",
			expectEnd:   "2014-01-31T23:59:59.999+00:00",
		},
		{
			name:        "february",
			token:       "2014-02",
			expectStart: "2014-02-01T00:00:00.000+00:00",
			expectEnd:   "2014-02-28T23:59:59.999+00:00",
		},
		{
			name:        "february in a leap year",
			token:       "2012-02",
			expectStart: "2012-02-01T00:00:00.000+00:00",
			expectEnd:   "2012-02-29T23:59:59.999+00:00",
		},
		{
			name:        "april",
			token:       "2014-04",
			expectStart: "2014-04-01T00:00:00.000+00:00",
			expectEnd:   "2014-04-30T23:59:59.999+00:00",
		},
		{
			name:        "august",
			token:       "2014-08",
			expectStart: "2014-08-01T00:00:00.000+00:00",
			expectEnd:   "2014-08-31T23:59:59.999+00:00",
		},
		{
			name:        "december",
			token:       "2014-12",
			expectStart: "2014-12-01T00:00:00.000+00:00",
			expectEnd:   "2014-12-31T23:59:59.999+00:00",
		},
		{
			name:        "month with short offset",
			token:       "2014-01",
			offset:      "+7",
			expectStart: "2014-01-01T00:00:00.000+07:00",
			expectEnd:   "2014-01-31T23:59:59.999+07:00",
		},
		{
			name:        "first day of year",
			token:       "2014-01-01",
			expectStart: "2014-01-01T00:00:00.000+00:00",
			expectEnd:   "2014-01-01T23:59:59.999+00:00",
		},
		{
			name:        "last day of year",
			token:       "2014-12-31",
			expectStart: "2014-12-31T00:00:00.000+00:00",
			expectEnd:   "2014-12-31T23:59:59.999+00:00",
		},
		{
			name:        "leap day",
			token:       "2012-02-29",
			expectStart: "2012-02-29T00:00:00.000+00:00",
			expectEnd:   "2012-02-29T23:59:59.999+00:00",
		},
		{
			name:        "day with short offset",
			token:       "2014-01-01",
			offset:      "+7",
			expectStart: "2014-01-01T00:00:00.000+07:00",
			expectEnd:   "2014-01-01T23:59:59.999+07:00",
		},
		{
			name:        "first quarter",
			token:       "2015-Q1",
			expectStart: "2015-01-01T00:00:00.000+00:00",
			expectEnd:   "2015-03-31T23:59:59.999+00:00",
		},
		{
			name:        "first quarter with negative offset",
			token:       "2015-Q1",
			offset:      "-0300",
			expectStart: "2015-01-01T00:00:00.000-03:00",
			expectEnd:   "2015-03-31T23:59:59.999-03:00",
		},
		{
			name:        "second quarter",
			token:       "2015-Q2",
			expectStart: "2015-04-01T00:00:00.000+00:00",
			expectEnd:   "2015-06-30T23:59:59.999+00:00",
		},
		{
			name:        "third quarter",
			token:       "2015-Q3",
			expectStart: "2015-07-01T00:00:00.000+00:00",
			expectEnd:   "2015-09-30T23:59:59.999+00:00",
		},
		{
			name:        "fourth quarter lowercase",
			token:       "2015-q4",
			expectStart: "2015-10-01T00:00:00.000+00:00",
			expectEnd:   "2015-12-31T23:59:59.999+00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := Resolve(tt.token, tt.offset)
			be.NilErr(t, err)
			be.Equal(t, tt.expectStart, format(start))
			be.Equal(t, tt.expectEnd, format(end))
		})
	}
}

func TestResolveEndOfDayPrecision(t *testing.T) {
	_, end, err := Resolve("2014-08-19", "")
	be.NilErr(t, err)
	be.Equal(t, 999*int(time.Millisecond), end.Nanosecond())
	be.Equal(t, 23, end.Hour())
	be.Equal(t, 59, end.Minute())
	be.Equal(t, 59, end.Second())
}

func TestResolveInvalidPeriod(t *testing.T) {
	tokens := []string{
		"2014-01-01-01",
		"123213",
		"",
		"2014-1",
		"14-01-01",
		" 2014",
		"2014 ",
		"wtd",
		"2014-W01",
		"last-month",
		"2015-Q12",
	}

	for _, token := range tokens {
		t.Run(token, func(t *testing.T) {
			_, _, err := Resolve(token, "")
			be.True(t, errors.Is(err, ErrInvalidPeriod))
			be.False(t, errors.Is(err, ErrInvalidDate))

			var parseErr *ParseError
			be.True(t, errors.As(err, &parseErr))
			be.Equal(t, token, parseErr.Token)
		})
	}
}

func TestResolveInvalidDate(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		offset string
	}{
		{name: "month thirteen", token: "2014-13-01"},
		{name: "day forty one", token: "2014-12-41"},
		{name: "day forty one with bad offset", token: "2014-12-41", offset: "+2400"},
		{name: "february thirtieth", token: "2014-02-30"},
		{name: "february twenty ninth outside leap year", token: "2014-02-29"},
		{name: "month zero", token: "2014-00"},
		{name: "month thirteen alone", token: "2014-13"},
		{name: "day zero", token: "2014-01-00"},
		{name: "quarter zero", token: "2015-Q0"},
		{name: "quarter five", token: "2015-Q5"},
		{name: "valid year bad offset", token: "2014", offset: "+2400"},
		{name: "relative token bad offset", token: "today", offset: "+2400"},
		{name: "garbage offset", token: "2014", offset: "seven"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Resolve(tt.token, tt.offset)
			be.True(t, errors.Is(err, ErrInvalidDate))
			be.False(t, errors.Is(err, ErrInvalidPeriod))
		})
	}
}

func TestResolveShapeCheckedBeforeOffset(t *testing.T) {
	_, _, err := Resolve("2014-01-01-01", "+2400")
	be.True(t, errors.Is(err, ErrInvalidPeriod))
}

func TestResolveDefaultOffset(t *testing.T) {
	for _, offset := range []string{"", "+00:00", "+0000", "Z", "+0"} {
		t.Run(offset, func(t *testing.T) {
			start, end, err := Resolve("2014", offset)
			be.NilErr(t, err)

			_, startOffset := start.Zone()
			_, endOffset := end.Zone()
			be.Equal(t, 0, startOffset)
			be.Equal(t, 0, endOffset)
			be.Equal(t, "2014-01-01T00:00:00.000+00:00", format(start))
		})
	}
}

func TestResolveRoundTrip(t *testing.T) {
	for _, token := range []string{"2014", "2012-02", "2014-12", "2015-Q3", "2014-08-19", "2000-02-29"} {
		t.Run(token, func(t *testing.T) {
			rng, err := ResolveRange(token, "-0530")
			be.NilErr(t, err)
			be.Equal(t, token, rng.Label())
		})
	}
}

func TestResolveKinds(t *testing.T) {
	r := NewResolver(WithClock(FixedClock(time.Date(2014, 8, 19, 12, 0, 0, 0, time.UTC))))

	tests := []struct {
		token string
		kind  Kind
	}{
		{"today", Today},
		{"Yesterday", Yesterday},
		{"yday", Yesterday},
		{"current-month", CurrentMonth},
		{"previous-month", PreviousMonth},
		{"current-year", CurrentYear},
		{"previous-year", PreviousYear},
		{"MTD", MonthToDate},
		{"ytd", YearToDate},
		{"qtd", QuarterToDate},
		{"2014", Year},
		{"2014-08", Month},
		{"2014-Q3", Quarter},
		{"2014-08-19", Day},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			rng, err := r.ResolveRange(tt.token, "")
			be.NilErr(t, err)
			be.Equal(t, tt.kind, rng.Kind)
			be.True(t, !rng.End.Before(rng.Start))
		})
	}
}

func TestTryResolve(t *testing.T) {
	start, end, ok := TryResolve("2014-08", "")
	be.True(t, ok)
	be.Equal(t, "2014-08-01T00:00:00.000+00:00", format(start))
	be.Equal(t, "2014-08-31T23:59:59.999+00:00", format(end))

	start, end, ok = TryResolve("2014-01-01-01", "")
	be.False(t, ok)
	be.True(t, start.IsZero())
	be.True(t, end.IsZero())

	_, _, ok = TryResolve("2014-13-01", "")
	be.False(t, ok)
}

func TestTryResolveRange(t *testing.T) {
	rng, ok := TryResolveRange("2015-Q2", "+7")
	be.True(t, ok)
	be.Equal(t, "2015-04-01T00:00:00.000+07:00", format(rng.Start))

	rng, ok = TryResolveRange("2014-12-41", "+2400")
	be.False(t, ok)
	be.Equal(t, Range{}, rng)
}

func TestResolveWith(t *testing.T) {
	r := NewResolver(WithClock(FixedClock(time.Date(2014, 8, 19, 12, 0, 0, 0, time.UTC))))

	t.Run("default substitutes empty token", func(t *testing.T) {
		rng, err := r.ResolveWith("", Options{Default: "current-month", Offset: "+0200"})
		be.NilErr(t, err)
		be.Equal(t, CurrentMonth, rng.Kind)
		be.Equal(t, "2014-08-01T00:00:00.000+02:00", format(rng.Start))
		be.Equal(t, "2014-08-31T23:59:59.999+02:00", format(rng.End))
	})

	t.Run("token wins over default", func(t *testing.T) {
		rng, err := r.ResolveWith("2013", Options{Default: "current-month"})
		be.NilErr(t, err)
		be.Equal(t, "2013", rng.Label())
	})

	t.Run("empty token without default", func(t *testing.T) {
		_, err := r.ResolveWith("", Options{})
		be.True(t, errors.Is(err, ErrInvalidPeriod))
	})
}

func TestParseErrorMessage(t *testing.T) {
	_, _, err := Resolve("nope", "")
	be.Equal(t, `resolving period "nope": invalid date period`, err.Error())

	_, _, err = Resolve("2014", "+2400")
	be.True(t, strings.Contains(err.Error(), `at offset "+2400"`))
}
