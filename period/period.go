// Package period resolves date period tokens such as "2014", "2014-08",
// "2015-Q1", "today" or "mtd" into a start and end instant at a fixed UTC offset.
//
//	start, end, err := period.Resolve("2014", "+0700")
//	// start: 2014-01-01T00:00:00.000+07:00
//	// end:   2014-12-31T23:59:59.999+07:00
//
// Fixed periods end at 23:59:59.999 on their last day. The to-date periods
// (mtd, ytd, qtd) end at the moment of resolution.
package period

import (
	"strings"
	"time"
)

// Options carries the offset to resolve at and a token to use when the input
// token is empty.
type Options struct {
	Offset  string `toml:"offset" json:"offset"`
	Default string `toml:"default" json:"default"`
}

// Resolver resolves period tokens against a Clock. The zero value is not
// usable; use NewResolver. A Resolver is safe for concurrent use.
type Resolver struct {
	clock Clock
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock anchors relative periods on c instead of the system clock.
func WithClock(c Clock) Option {
	return func(r *Resolver) {
		r.clock = c
	}
}

// NewResolver creates a Resolver using the system clock unless overridden.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{clock: SystemClock}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// resolve is the single implementation behind every entry point.
func (r *Resolver) resolve(token, offset string) (Range, error) {
	folded := strings.ToLower(token)

	kind := match(folded)
	if kind == Unknown {
		return Range{}, &ParseError{Token: token, Offset: offset, Err: ErrInvalidPeriod}
	}

	loc, err := ParseOffset(offset)
	if err != nil {
		return Range{}, &ParseError{Token: token, Offset: offset, Err: err}
	}

	var rng Range
	if kind.Relative() {
		// sampled once so start and end agree
		current := r.clock.Now().In(loc)
		rng = resolveRelative(kind, current)
	} else {
		rng, err = resolveFixed(kind, folded, loc)
		if err != nil {
			return Range{}, &ParseError{Token: token, Offset: offset, Err: err}
		}
	}

	rng.Kind = kind
	return rng, nil
}

// Resolve returns the start and end of the period named by token at offset.
// Failures wrap ErrInvalidPeriod or ErrInvalidDate.
func (r *Resolver) Resolve(token, offset string) (time.Time, time.Time, error) {
	rng, err := r.resolve(token, offset)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return rng.Start, rng.End, nil
}

// TryResolve is Resolve with any failure reported as ok == false.
func (r *Resolver) TryResolve(token, offset string) (start, end time.Time, ok bool) {
	start, end, err := r.Resolve(token, offset)
	return start, end, err == nil
}

// ResolveRange returns the period named by token as an inclusive Range.
func (r *Resolver) ResolveRange(token, offset string) (Range, error) {
	return r.resolve(token, offset)
}

// TryResolveRange is ResolveRange with any failure reported as ok == false.
func (r *Resolver) TryResolveRange(token, offset string) (Range, bool) {
	rng, err := r.resolve(token, offset)
	return rng, err == nil
}

// ResolveWith resolves token at opts.Offset, substituting opts.Default when
// token is empty.
func (r *Resolver) ResolveWith(token string, opts Options) (Range, error) {
	if token == "" {
		token = opts.Default
	}
	return r.resolve(token, opts.Offset)
}

var defaultResolver = NewResolver()

// Resolve resolves token with the system clock. See Resolver.Resolve.
func Resolve(token, offset string) (time.Time, time.Time, error) {
	return defaultResolver.Resolve(token, offset)
}

// TryResolve resolves token with the system clock. See Resolver.TryResolve.
func TryResolve(token, offset string) (time.Time, time.Time, bool) {
	return defaultResolver.TryResolve(token, offset)
}

// ResolveRange resolves token with the system clock. See Resolver.ResolveRange.
func ResolveRange(token, offset string) (Range, error) {
	return defaultResolver.ResolveRange(token, offset)
}

// TryResolveRange resolves token with the system clock. See Resolver.TryResolveRange.
func TryResolveRange(token, offset string) (Range, bool) {
	return defaultResolver.TryResolveRange(token, offset)
}

// ResolveWith resolves token with the system clock. See Resolver.ResolveWith.
func ResolveWith(token string, opts Options) (Range, error) {
	return defaultResolver.ResolveWith(token, opts)
}
