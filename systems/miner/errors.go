package miner

import "fmt"

// ErrUnreachable defines a miner which didn't answer on any interface.
type ErrUnreachable struct {
	IP string
}

// Error formats output.
func (e *ErrUnreachable) Error() string {
	return fmt.Sprintf("miner %s is unreachable", e.IP)
}

// ErrNoData defines a miner which answered but didn't report any telemetry.
type ErrNoData struct {
	IP string
}

// Error formats output.
func (e *ErrNoData) Error() string {
	return fmt.Sprintf("miner %s didn't report any telemetry", e.IP)
}

// ErrUnexpectedStatus defines non-successful web interface response.
type ErrUnexpectedStatus struct {
	Endpoint string
	Status   int
}

// Error formats output.
func (e *ErrUnexpectedStatus) Error() string {
	return fmt.Sprintf("%s responded with status %d", e.Endpoint, e.Status)
}

// ErrNoHostname defines a miner without known hostname.
type ErrNoHostname struct {
}

// Error formats output.
func (*ErrNoHostname) Error() string {
	return "hostname is unknown"
}
