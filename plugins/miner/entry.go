package miner

// Config entry data keys.
const (
	// ConfIP describes miner IP.
	ConfIP = "ip"
	// ConfRPCPassword describes RPC interface password.
	ConfRPCPassword = "rpc_password"
	// ConfWebUsername describes web interface username.
	ConfWebUsername = "web_username"
	// ConfWebPassword describes web interface password.
	ConfWebPassword = "web_password"
	// ConfSSHUsername describes SSH interface username.
	ConfSSHUsername = "ssh_username"
	// ConfSSHPassword describes SSH interface password.
	ConfSSHPassword = "ssh_password"
	// ConfTitle describes entry title.
	ConfTitle = "title"
)

// Domain is an identifiers' namespace of all miner devices.
const Domain = "miner"

// SecretKeys contains entry fields which are kept in the secret store.
var SecretKeys = []string{ConfRPCPassword, ConfWebPassword, ConfSSHPassword}

// ConfigEntry describes a single configured miner.
type ConfigEntry struct {
	ID    string            `yaml:"name" validate:"required"`
	Title string            `yaml:"title"`
	Data  map[string]string `yaml:"data"`
}

// Credentials extracts interface credentials from entry data.
func (e *ConfigEntry) Credentials() *EntryCredentials {
	return &EntryCredentials{
		WebUsername: e.Data[ConfWebUsername],
		WebPassword: e.optional(ConfWebPassword),
		SSHUsername: e.Data[ConfSSHUsername],
		SSHPassword: e.optional(ConfSSHPassword),
	}
}

// Returns entry field or nil if it's absent.
func (e *ConfigEntry) optional(key string) *string {
	v, ok := e.Data[key]
	if !ok {
		return nil
	}

	return &v
}

// IP returns miner IP address.
func (e *ConfigEntry) IP() string {
	return e.Data[ConfIP]
}

// IsSecretKey checks whether entry field should be kept in the secret store.
func IsSecretKey(key string) bool {
	for _, v := range SecretKeys {
		if v == key {
			return true
		}
	}

	return false
}
