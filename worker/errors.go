package worker

import "fmt"

// ErrEntryLoaded defines entry which is already managed by the worker.
type ErrEntryLoaded struct {
	ID string
}

// Error formats output.
func (e *ErrEntryLoaded) Error() string {
	return fmt.Sprintf("entry %s is already loaded", e.ID)
}
