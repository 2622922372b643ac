package coordinator

import "fmt"

// ErrEntryNotReady defines entry which failed the first refresh.
// Server retries such entries later.
type ErrEntryNotReady struct {
	EntryID string
	Cause   error
}

// Error formats output.
func (e *ErrEntryNotReady) Error() string {
	return fmt.Sprintf("entry %s is not ready: %s", e.EntryID, e.Cause)
}

// ErrMinerNotFound defines miner which didn't respond during resolving.
type ErrMinerNotFound struct {
	IP string
}

// Error formats output.
func (e *ErrMinerNotFound) Error() string {
	return fmt.Sprintf("unable to connect to miner %s", e.IP)
}
