package engine

import (
	"fmt"
	"time"
)

// Exporter turns a frozen state into a yearly report artifact.
type Exporter interface {
	Export(snapshot *State, year int) ([]byte, error)
}

// RolloverPolicy decides when the year closes: on Dec 31 at or after
// CutoffHour in Location.
type RolloverPolicy struct {
	Location   *time.Location
	CutoffHour int
}

// Due reports the year to close at now, if any. A year already recorded in
// LastResetYear is never closed again.
func (p RolloverPolicy) Due(now time.Time, st *State) (int, bool) {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	t := now.In(loc)
	if t.Month() != time.December || t.Day() != 31 || t.Hour() < p.CutoffHour {
		return 0, false
	}
	if st.LastResetYear != nil && *st.LastResetYear == t.Year() {
		return 0, false
	}
	return t.Year(), true
}

// Rollover is a prepared year close. Nothing in the engine has changed yet:
// Snapshot is a frozen copy of the closing year, Report the exported
// artifact and Reset the state the new year starts from.
type Rollover struct {
	Year     int
	Snapshot *State
	Report   []byte
	Reset    *State
}

// PrepareRollover exports the closing year when the policy says it is due.
// It returns nil when no rollover is due. On an export error the state is
// left as it was.
func (e *Engine) PrepareRollover(p RolloverPolicy, ex Exporter) (*Rollover, error) {
	year, ok := p.Due(e.clock.Now(), e.st)
	if !ok {
		return nil, nil
	}
	snap := e.st.Clone()
	report, err := ex.Export(snap, year)
	if err != nil {
		return nil, fmt.Errorf("export %d report: %w", year, err)
	}
	return &Rollover{
		Year:     year,
		Snapshot: snap,
		Report:   report,
		Reset:    ResetForYear(year),
	}, nil
}

// ApplyRollover switches the engine to the reset state of r.
func (e *Engine) ApplyRollover(r *Rollover) {
	e.st = r.Reset
	e.record(ActivityYearRollover, "", fmt.Sprintf("%d", r.Year), 0)
}

// ResetForYear is the state after closing year: empty collections and
// ledgers, zeroed progress, the year marked processed and its report
// announced.
func ResetForYear(year int) *State {
	st := NewState()
	st.LastResetYear = &year
	st.PendingReportYear = year
	return st
}
