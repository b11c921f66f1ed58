package ports

import (
	"github.com/oraswap-network/oraswap-daemon/pkg/oraclefeed"
	"github.com/oraswap-network/oraswap-daemon/pkg/pricing"
)

// OracleSource serves the latest known oracle price per feed id. The zero
// OraclePrice means the feed has no usable price yet.
type OracleSource interface {
	LatestPrice(feedID string) (pricing.OraclePrice, bool)

	Start() error
	Stop()
}

// OracleFeeder streams price updates from an external oracle. It mirrors
// the shape of the feeder services in pkg/oraclefeed.
type OracleFeeder interface {
	SubscribeFeeds(feedIDs []string) error
	UnsubscribeFeeds(feedIDs []string) error

	Start() error
	Stop()

	FeedChan() chan oraclefeed.PriceFeed
}
