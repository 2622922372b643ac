package providers

import "github.com/go-home-io/minerhub/plugins/common"

// IInternalFanOutProvider defines internal interface for the fan-out channel.
// It extends regular IFanOutProvider which is available for all systems.
type IInternalFanOutProvider interface {
	common.IFanOutProvider

	ChannelInEntityUpdates() chan *common.MsgEntityUpdate
	Stop()
}
