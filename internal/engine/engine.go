package engine

import (
	"time"

	"github.com/google/uuid"
)

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant. Tests use it to pin "today".
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// Engine applies every progression rule to one user's State. It performs no
// I/O and is not safe for concurrent use: a Session owns it for the duration
// of one invocation.
type Engine struct {
	st    *State
	clock Clock
	loc   *time.Location

	newID    func() string
	activity []Activity
}

// New wraps st. A nil clock means the wall clock; a nil loc means the local
// time zone decides where one day ends and the next begins.
func New(st *State, clock Clock, loc *time.Location) *Engine {
	if st == nil {
		st = NewState()
	}
	if clock == nil {
		clock = RealClock{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &Engine{
		st:    st,
		clock: clock,
		loc:   loc,
		newID: uuid.NewString,
	}
}

// State exposes the live state for read-only views.
func (e *Engine) State() *State { return e.st }

func (e *Engine) Location() *time.Location { return e.loc }

// Now is the current instant in the engine's day-boundary location.
func (e *Engine) Now() time.Time { return e.clock.Now().In(e.loc) }

// Today is the current calendar date.
func (e *Engine) Today() time.Time { return Date(e.Now()) }

func (e *Engine) Yesterday() time.Time { return e.Today().AddDate(0, 0, -1) }

// DueInstant combines a goal's due date with its due time, or with the last
// second of the day when no time is set, in loc.
func DueInstant(g Goal, loc *time.Location) time.Time {
	y, m, d := g.Due.Date()
	if g.DueTime != "" {
		if hh, mm, err := ParseClock(g.DueTime); err == nil {
			return time.Date(y, m, d, hh, mm, 0, 0, loc)
		}
	}
	return time.Date(y, m, d, 23, 59, 59, 0, loc)
}
