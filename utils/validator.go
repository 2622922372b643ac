package utils

import (
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/creasty/defaults"
	"github.com/go-home-io/minerhub/plugins/common"
	"github.com/go-home-io/minerhub/providers"
	"gopkg.in/go-playground/validator.v9"
)

// Validator implementation.
type validatorProvider struct {
	sync.Mutex
	validator *validator.Validate
	logger    common.ILoggerProvider
}

// NewValidator constructs a new validator.
func NewValidator(logger common.ILoggerProvider) providers.IValidatorProvider {
	val := &validatorProvider{
		logger: logger,
	}
	v := validator.New()
	loadNewValidator(v, logger, "port", port)
	loadNewValidator(v, logger, "host", host)
	loadNewValidator(v, logger, "ipv4port", ipv4port)

	val.validator = v
	return val
}

// SetLogger updates the logger.
// Logger is loaded after the first init, so it has to be re-assigned.
func (v *validatorProvider) SetLogger(logger common.ILoggerProvider) {
	v.logger = logger
}

// Validate sets defaults and validates a config object.
func (v *validatorProvider) Validate(object interface{}) bool {
	v.Lock()
	defer v.Unlock()

	err := defaults.Set(object)

	if err != nil {
		v.logger.Error("Failed to set default field values", err)
		return false
	}

	err = v.validator.Struct(object)
	if err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			v.logger.Error("Failed to validate object", err)
			return false
		}

		for _, e := range errs {
			v.logger.Warn("Validation error", common.LogFieldToken, e.Field())
		}

		return false
	}
	return true
}

// Port type validation.
func port(fl validator.FieldLevel) bool {
	return isPort(fl.Field().Int())
}

// Miner host validation: IPv4 address or a plain host name.
func host(fl validator.FieldLevel) bool {
	return IsValidHost(fl.Field().String())
}

// Ipv4:port type validation.
func ipv4port(fl validator.FieldLevel) bool {
	parts := strings.Split(fl.Field().String(), ":")
	if len(parts) > 2 {
		return false
	}

	ip := net.ParseIP(parts[0])
	if ip == nil || ip.To4() == nil {
		return false
	}

	if 2 == len(parts) {
		port, err := strconv.Atoi(parts[1])
		if err != nil {
			return false
		}

		return isPort(int64(port))
	}

	return true
}

// IsValidHost checks whether value could be used as a miner address.
func IsValidHost(val string) bool {
	val = strings.TrimSpace(val)
	if "" == val || strings.ContainsAny(val, " /:\\") {
		return false
	}

	if ip := net.ParseIP(val); ip != nil {
		return ip.To4() != nil
	}

	for _, r := range val {
		if !(r == '.' || r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}

	return true
}

// Validates whether value could be used as a port.
func isPort(val int64) bool {
	return val > 0 && val <= 65535
}

// Attempt to register a new validator
func loadNewValidator(validator *validator.Validate, logger common.ILoggerProvider,
	name string, function validator.Func) {
	if err := validator.RegisterValidation(name, function); err != nil {
		logger.Error("Failed to register validator type", err, "type", name)
	}
}
