package engine

import (
	"errors"
	"fmt"
)

// checkInvariants reports every way st breaks the ledger rules. A non-nil
// result is a defect in the engine, not bad user input.
func checkInvariants(st *State) error {
	var errs []error
	if want := LevelForXP(st.XP); st.Level != want {
		errs = append(errs, fmt.Errorf("level %d for %d xp, want %d", st.Level, st.XP, want))
	}
	for _, s := range AllStats {
		v, ok := st.Stats[s]
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("stat %s missing", s))
		case v < 0:
			errs = append(errs, fmt.Errorf("stat %s negative: %v", s, v))
		case v != round2(v):
			errs = append(errs, fmt.Errorf("stat %s not rounded: %v", s, v))
		}
	}
	for _, g := range st.Goals {
		if g.Done && g.Failed {
			errs = append(errs, fmt.Errorf("goal %s both done and failed", g.ID))
		}
		if g.Recurrence.IsRecurring() && g.Closed() {
			errs = append(errs, fmt.Errorf("recurring goal %s closed", g.ID))
		}
	}
	for _, h := range st.Habits {
		for d := range h.Completions {
			if _, ok := h.Failures[d]; ok {
				errs = append(errs, fmt.Errorf("habit %s both done and failed on %s", h.ID, d))
			}
		}
	}
	for _, b := range st.BigGoals {
		if b.Done && b.Failed {
			errs = append(errs, fmt.Errorf("big goal %s both done and failed", b.ID))
		}
	}
	return errors.Join(errs...)
}
