package storage

import "fmt"

// Error wraps a backend failure with the operation that produced it and,
// when the backend reported one, its error code (e.g. a postgres SQLSTATE).
type Error struct {
	Op   string
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("storage: %s (code %s): %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
