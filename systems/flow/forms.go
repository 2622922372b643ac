package flow

import (
	"github.com/go-home-io/minerhub/plugins/miner"
)

// Flow steps.
const (
	// StepUser asks for miner IP.
	StepUser = "user"
	// StepLogin asks for interfaces credentials.
	StepLogin = "login"
	// StepTitle asks for entry title.
	StepTitle = "title"
)

// Result types.
const (
	// ResultForm asks client to submit a form.
	ResultForm = "form"
	// ResultCreateEntry reports created entry.
	ResultCreateEntry = "create_entry"
)

// Field types.
const (
	// FieldString is a plain text input.
	FieldString = "string"
	// FieldPassword is a masked text input.
	FieldPassword = "password"
)

// Error keys and messages.
const (
	// ErrorBase is a form level error key.
	ErrorBase = "base"
	// ErrorRequired is reported for empty required fields.
	ErrorRequired = "required"
	// ErrorCannotConnect is reported when miner doesn't respond.
	ErrorCannotConnect = "Unable to connect to Miner, is IP correct?"
)

// Field describes a single form input.
type Field struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Required     bool   `json:"required"`
	Default      string `json:"default"`
	Autocomplete string `json:"autocomplete,omitempty"`
}

// Result is returned by every flow step.
type Result struct {
	FlowID string             `json:"flow_id"`
	Type   string             `json:"type"`
	StepID string             `json:"step_id,omitempty"`
	Fields []*Field           `json:"data_schema,omitempty"`
	Errors map[string]string  `json:"errors,omitempty"`
	Title  string             `json:"title,omitempty"`
	Entry  *miner.ConfigEntry `json:"entry,omitempty"`
}

// Returns value from input or a default one.
func valueOr(input map[string]string, key string, def string) string {
	if v, ok := input[key]; ok {
		return v
	}

	return def
}

// Form of the user step.
func userFields(input map[string]string) []*Field {
	return []*Field{{
		Name:     miner.ConfIP,
		Type:     FieldString,
		Required: true,
		Default:  valueOr(input, miner.ConfIP, ""),
	}}
}

// Form of the login step, depends on interfaces exposed by miner.
func loginFields(m miner.IMiner, input map[string]string) []*Field {
	fields := make([]*Field, 0)

	if rpc := m.RPC(); nil != rpc && nil != rpc.Password {
		fields = append(fields, passwordField(miner.ConfRPCPassword, input, rpc.PasswordOrEmpty()))
	}

	if web := m.Web(); nil != web {
		fields = append(fields,
			&Field{
				Name:     miner.ConfWebUsername,
				Type:     FieldString,
				Required: true,
				Default:  valueOr(input, miner.ConfWebUsername, web.Username),
			},
			passwordField(miner.ConfWebPassword, input, web.PasswordOrEmpty()))
	}

	if ssh := m.SSH(); nil != ssh {
		fields = append(fields,
			&Field{
				Name:     miner.ConfSSHUsername,
				Type:     FieldString,
				Required: true,
				Default:  valueOr(input, miner.ConfSSHUsername, ssh.Username),
			},
			passwordField(miner.ConfSSHPassword, input, ssh.PasswordOrEmpty()))
	}

	return fields
}

func passwordField(name string, input map[string]string, def string) *Field {
	return &Field{
		Name:         name,
		Type:         FieldPassword,
		Default:      valueOr(input, name, def),
		Autocomplete: "current-password",
	}
}

// Form of the title step.
func titleFields(title string, input map[string]string) []*Field {
	return []*Field{{
		Name:     miner.ConfTitle,
		Type:     FieldString,
		Required: true,
		Default:  valueOr(input, miner.ConfTitle, title),
	}}
}

// Applies submitted input to the form.
// Missing fields get defaults, empty required fields are reported.
func apply(fields []*Field, input map[string]string) (map[string]string, map[string]string) {
	data := make(map[string]string, len(fields))
	errs := make(map[string]string)
	for _, f := range fields {
		v, ok := input[f.Name]
		if !ok {
			v = f.Default
		}

		if f.Required && "" == v {
			errs[f.Name] = ErrorRequired
			continue
		}

		data[f.Name] = v
	}

	return data, errs
}
