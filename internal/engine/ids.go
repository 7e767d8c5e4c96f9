package engine

import "strings"

// resolveID finds the index of the entity whose id equals ref or, failing
// that, starts with it. A prefix that matches several ids is rejected.
func resolveID(kind, ref string, ids []string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, InvalidInputError{Field: kind + " id", Reason: "empty"}
	}
	found, matches := -1, 0
	for i, id := range ids {
		if id == ref {
			return i, nil
		}
		if strings.HasPrefix(id, ref) {
			found = i
			matches++
		}
	}
	switch matches {
	case 0:
		return -1, NotFoundError{Kind: kind, ID: ref}
	case 1:
		return found, nil
	default:
		return -1, AmbiguousIDError{Kind: kind, Prefix: ref, Matches: matches}
	}
}

func (e *Engine) goalIndex(ref string) (int, error) {
	ids := make([]string, len(e.st.Goals))
	for i := range e.st.Goals {
		ids[i] = e.st.Goals[i].ID
	}
	return resolveID("goal", ref, ids)
}

func (e *Engine) habitIndex(ref string) (int, error) {
	ids := make([]string, len(e.st.Habits))
	for i := range e.st.Habits {
		ids[i] = e.st.Habits[i].ID
	}
	return resolveID("habit", ref, ids)
}

func (e *Engine) bigGoalIndex(ref string) (int, error) {
	ids := make([]string, len(e.st.BigGoals))
	for i := range e.st.BigGoals {
		ids[i] = e.st.BigGoals[i].ID
	}
	return resolveID("big goal", ref, ids)
}

// ShortID is the abbreviated id shown in listings.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
