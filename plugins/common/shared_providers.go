// Package common contains shared data available for all minerhub systems.
package common

// ISecretProvider defines secrets provider which will be passed to every system.
type ISecretProvider interface {
	Get(string) (string, error)
	Set(name string, data string) error
}

// ILoggerProvider defines logger provider which will be passed to every system.
type ILoggerProvider interface {
	Debug(msg string, fields ...string)
	Info(msg string, fields ...string)
	Warn(msg string, fields ...string)
	Error(msg string, err error, fields ...string)
	Fatal(msg string, err error, fields ...string)
}

// MsgEntityUpdate contains data with updated entity's state.
type MsgEntityUpdate struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	EntryID   string   `json:"entry"`
	Value     *float64 `json:"value"`
	Unit      string   `json:"unit,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

// IFanOutProvider defines interface used for distributing
// entity updates even across all system.
type IFanOutProvider interface {
	SubscribeEntityUpdates() (int64, chan *MsgEntityUpdate)
	UnSubscribeEntityUpdates(int64)
}
