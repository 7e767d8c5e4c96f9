package engine

import (
	"fmt"
	"math"
)

// UpdateStat adds delta to one stat, rounding to 2 decimals and clamping at 0.
func (e *Engine) UpdateStat(s Stat, delta float64) error {
	if !s.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownStat, s)
	}
	e.st.Stats[s] = max(0, round2(e.st.Stats[s]+delta))
	return nil
}

// mustUpdateStat is for internal callers whose stat was validated when the
// entity was built; an invalid one there is a defect.
func (e *Engine) mustUpdateStat(s Stat, delta float64) {
	if err := e.UpdateStat(s, delta); err != nil {
		panic(err)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
