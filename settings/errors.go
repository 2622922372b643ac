package settings

import "fmt"

// ErrDuplicateEntry defines entry with already used name.
type ErrDuplicateEntry struct {
	ID string
}

// Error formats output.
func (e *ErrDuplicateEntry) Error() string {
	return fmt.Sprintf("entry %s already exists", e.ID)
}

// ErrInvalidEntry defines entry which failed validation.
type ErrInvalidEntry struct {
	ID string
}

// Error formats output.
func (e *ErrInvalidEntry) Error() string {
	return fmt.Sprintf("entry %s is invalid", e.ID)
}
