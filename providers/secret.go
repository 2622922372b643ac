package providers

import "github.com/go-home-io/minerhub/plugins/common"

// IInternalSecret defines internal secret provider wrapper.
type IInternalSecret interface {
	common.ISecretProvider
	UpdateLogger(logger common.ILoggerProvider)
}
