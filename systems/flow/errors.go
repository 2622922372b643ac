package flow

import "fmt"

// ErrFlowNotFound defines unknown or expired flow.
type ErrFlowNotFound struct {
	ID string
}

// Error formats output.
func (e *ErrFlowNotFound) Error() string {
	return fmt.Sprintf("flow %s not found", e.ID)
}

// ErrFlowFinished defines flow which already created an entry.
type ErrFlowFinished struct {
	ID string
}

// Error formats output.
func (e *ErrFlowFinished) Error() string {
	return fmt.Sprintf("flow %s is already finished", e.ID)
}
