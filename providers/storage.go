package providers

import (
	"github.com/go-home-io/minerhub/plugins/common"
)

// IStorageProvider defines entity state history storage provider.
type IStorageProvider interface {
	State(*common.MsgEntityUpdate)
	History(string) map[int64]*float64
}
