package providers

import (
	"context"

	"github.com/go-home-io/minerhub/plugins/miner"
)

// IMinerFactory defines miner resolver logic.
// Nil miner without an error means that nothing answered on the IP.
type IMinerFactory interface {
	GetMiner(ctx context.Context, ip string) (miner.IMiner, error)
}

// IDiscoveryProvider defines local networks miners discovery.
type IDiscoveryProvider interface {
	HasDevices(ctx context.Context) bool
	Discover(ctx context.Context) []string
}

// IEntryStoreProvider defines config entries persistence.
type IEntryStoreProvider interface {
	Save(entry *miner.ConfigEntry) error
}
