package oracle

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/oraswap-network/oraswap-daemon/internal/core/ports"
	"github.com/oraswap-network/oraswap-daemon/pkg/oraclefeed"
	"github.com/oraswap-network/oraswap-daemon/pkg/pricing"
)

// source keeps the latest price per feed id, fed by an OracleFeeder running
// in the background. Reads never block on the feeder.
type source struct {
	feeder oraclefeed.OracleFeeder

	latestMtx *sync.RWMutex
	latest    map[string]pricing.OraclePrice
}

// NewSource returns an OracleSource backed by the given feeder. The feeder
// must already be subscribed to the feeds of interest.
func NewSource(feeder oraclefeed.OracleFeeder) ports.OracleSource {
	return &source{
		feeder:    feeder,
		latestMtx: &sync.RWMutex{},
		latest:    make(map[string]pricing.OraclePrice),
	}
}

func (s *source) LatestPrice(feedID string) (pricing.OraclePrice, bool) {
	s.latestMtx.RLock()
	defer s.latestMtx.RUnlock()

	price, ok := s.latest[feedID]
	return price, ok
}

func (s *source) Start() error {
	go s.consume()

	if err := s.feeder.Start(); err != nil {
		return err
	}
	return nil
}

func (s *source) Stop() {
	s.feeder.Stop()
}

func (s *source) consume() {
	for feed := range s.feeder.FeedChan() {
		if feed.Price.Price.Sign() <= 0 {
			log.Warnf("discarding non-positive price for feed %s", feed.FeedID)
			continue
		}

		s.latestMtx.Lock()
		s.latest[feed.FeedID] = pricing.OraclePrice{
			Price:      feed.Price.Price,
			Confidence: feed.Price.Confidence,
		}
		s.latestMtx.Unlock()
	}
}
