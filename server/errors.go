package server

import "fmt"

// ErrUnknownEntity defines unknown entity error.
type ErrUnknownEntity struct {
	ID string
}

// Error formats output.
func (e *ErrUnknownEntity) Error() string {
	return fmt.Sprintf("entity %s is unknown", e.ID)
}

// ErrBadRequest defines generic server error.
type ErrBadRequest struct {
}

// Error formats output.
func (e *ErrBadRequest) Error() string {
	return "bad request"
}
