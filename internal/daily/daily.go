// Package daily maps calendar dates to puzzle words. Selection is a
// pure function of the day index and the configured salt: day index →
// salted rolling hash → seedrand → index into the answer list. Every
// player on the same calendar day gets the same word; changing the
// salt remaps the whole sequence, which is the supported way to reset
// it.
package daily

import (
	"strconv"
	"time"

	"quintle/internal/seedrand"
)

// Epoch is puzzle day zero. Day indices are whole-day offsets from it.
var Epoch = time.Date(2021, time.June, 19, 0, 0, 0, 0, time.UTC)

// Puzzle is one day's answer.
type Puzzle struct {
	Word     string `json:"word"`
	DayIndex int    `json:"dayIndex"`
	Date     string `json:"date"` // YYYY-MM-DD
}

// Countdown is the time remaining until the next puzzle unlocks.
// Hours and Minutes floor the remainder; Millis is the raw value.
type Countdown struct {
	Hours   int   `json:"hours"`
	Minutes int   `json:"minutes"`
	Millis  int64 `json:"millis"`
}

// Stats is today's puzzle plus the countdown to tomorrow's.
type Stats struct {
	Puzzle
	NextIn Countdown `json:"nextIn"`
}

// Selector picks the word of the day from an ordered answer list.
type Selector struct {
	answers []string
	salt    string
	now     func() time.Time
}

// Option configures a Selector.
type Option func(*Selector)

// WithClock overrides the wall clock, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Selector) { s.now = now }
}

// NewSelector builds a Selector over answers. The answer list is not
// copied and must not be mutated after construction.
func NewSelector(answers []string, salt string, opts ...Option) *Selector {
	s := &Selector{answers: answers, salt: salt, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DateKey returns t's civil date as YYYY-MM-DD in t's own location.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// DayIndexFor returns the whole-day offset from Epoch to t's civil
// date. The date is read in t's location and anchored to UTC midnight
// before differencing, so the index depends only on the calendar date
// the player sees, never on their UTC offset. Dates before Epoch
// yield negative indices.
func DayIndexFor(t time.Time) int {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(day.Sub(Epoch) / (24 * time.Hour))
}

// SeedFor derives the generator seed for a day index: a 32-bit
// rolling hash of salt + "_" + index, absolute value. Stable across
// platforms because the accumulation is done in int32.
func (s *Selector) SeedFor(dayIndex int) int {
	var h int32
	for _, b := range []byte(s.salt + "_" + strconv.Itoa(dayIndex)) {
		h = h*31 + int32(b)
	}
	n := int(h)
	if n < 0 {
		n = -n
	}
	return n
}

// WordFor returns the puzzle for a day index. Pure: the same index
// always yields the same word for a given answer list and salt.
func (s *Selector) WordFor(dayIndex int) Puzzle {
	p := Puzzle{
		DayIndex: dayIndex,
		Date:     DateKey(Epoch.AddDate(0, 0, dayIndex)),
	}
	if len(s.answers) == 0 {
		return p
	}
	idx := int(seedrand.Next(s.SeedFor(dayIndex)) * float64(len(s.answers)))
	if idx >= len(s.answers) {
		idx = len(s.answers) - 1
	}
	p.Word = s.answers[idx]
	return p
}

// TodaysWord returns the puzzle for the current clock reading.
func (s *Selector) TodaysWord() Puzzle {
	return s.WordFor(DayIndexFor(s.now()))
}

// DayStats returns today's puzzle and the countdown to the next local
// midnight.
func (s *Selector) DayStats() Stats {
	now := s.now()
	y, m, d := now.Date()
	next := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	rem := next.Sub(now)
	return Stats{
		Puzzle: s.WordFor(DayIndexFor(now)),
		NextIn: Countdown{
			Hours:   int(rem / time.Hour),
			Minutes: int(rem % time.Hour / time.Minute),
			Millis:  rem.Milliseconds(),
		},
	}
}
