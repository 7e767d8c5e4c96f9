package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated is returned when no user identity is available; the
	// engine neither mutates nor persists without one.
	ErrUnauthenticated = errors.New("not signed in (run `lq login <user>`)")

	ErrUnknownStat = errors.New("unknown stat")
	ErrGoalClosed  = errors.New("goal is already closed")

	ErrBigGoalClosed = errors.New("big goal is already closed")
)

// NotFoundError reports an id (or id prefix) that matched no entity.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// AmbiguousIDError reports an id prefix that matched more than one entity.
type AmbiguousIDError struct {
	Kind    string
	Prefix  string
	Matches int
}

func (e AmbiguousIDError) Error() string {
	return fmt.Sprintf("%s id prefix %q is ambiguous (%d matches)", e.Kind, e.Prefix, e.Matches)
}

// InvalidInputError is returned for user input rejected at the boundary.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// errNothingToSave lets a Mutate callback skip the save when it changed
// nothing.
var errNothingToSave = errors.New("nothing to save")
