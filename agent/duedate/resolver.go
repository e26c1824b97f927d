package duedate

import (
	"strings"
	"time"
)

const defaultHour = 9

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// literalLayouts are tried in order by the second resolution rule.
// First match wins.
var literalLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 3:04 PM",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006 3:04 PM",
	"01/02/2006",
	"January 2, 2006 3:04 PM",
	"January 2, 2006",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006",
	"2 January 2006",
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithNowFunc overrides the clock, for tests.
func WithNowFunc(now func() time.Time) ResolverOption {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// Resolver turns free-text due-date expressions into absolute timestamps
// in a single fixed zone. Resolution order:
//  1. exact (trimmed, case-insensitive) weekday name -> next occurrence of
//     that weekday at 09:00 local; today counts as offset zero
//  2. strict literal parse against literalLayouts, time-of-day kept as-is
//  3. tomorrow at 09:00 local
//
// Unparseable text is never an error; rule 3 always applies.
type Resolver struct {
	loc *time.Location
	now func() time.Time
}

func NewResolver(loc *time.Location, opts ...ResolverOption) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	r := &Resolver{
		loc: loc,
		now: time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Resolver) Resolve(text string) time.Time {
	now := r.now().In(r.loc)
	trimmed := strings.TrimSpace(text)

	if target, ok := weekdays[strings.ToLower(trimmed)]; ok {
		diff := (int(target) - int(now.Weekday()) + 7) % 7
		day := now.AddDate(0, 0, diff)
		return time.Date(day.Year(), day.Month(), day.Day(), defaultHour, 0, 0, 0, r.loc)
	}

	if parsed, ok := r.parseLiteral(trimmed); ok {
		return parsed.In(r.loc)
	}

	day := now.AddDate(0, 0, 1)
	return time.Date(day.Year(), day.Month(), day.Day(), defaultHour, 0, 0, 0, r.loc)
}

func (r *Resolver) parseLiteral(text string) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range literalLayouts {
		if parsed, err := time.ParseInLocation(layout, text, r.loc); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
