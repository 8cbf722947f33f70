package engine

import "fmt"

// UnknownHabitError reports a completion request for a habit id that is
// not in the catalog. No state mutation happens when it is returned.
type UnknownHabitError struct {
	ID int
}

func (e UnknownHabitError) Error() string {
	return fmt.Sprintf("unknown habit %d", e.ID)
}

// InvalidUsernameError reports a login attempt with a blank username. The
// persistence provider is never contacted in that case.
type InvalidUsernameError struct{}

func (e InvalidUsernameError) Error() string {
	return "username is required"
}

// PersistenceError wraps a storage failure. The in-memory state stays
// valid for the rest of the session; the caller decides whether to retry
// or keep going local-only.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("persistence unavailable (%s): %v", e.Op, e.Err)
}

func (e PersistenceError) Unwrap() error {
	return e.Err
}
