package mockfeeder

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oraswap-network/oraswap-daemon/pkg/oraclefeed"
)

// service replays a static set of prices at a fixed interval. Confidence
// zero is allowed, tests use it for exact mid-price quoting.
type service struct {
	interval time.Duration

	pricesMtx *sync.RWMutex
	prices    map[string]oraclefeed.Price

	feedIDsMtx *sync.RWMutex
	feedIDs    map[string]struct{}

	chLock   *sync.Mutex
	feedChan chan oraclefeed.PriceFeed
	quitChan chan struct{}
}

func NewService(
	prices map[string]oraclefeed.Price, interval time.Duration,
) oraclefeed.OracleFeeder {
	cloned := make(map[string]oraclefeed.Price, len(prices))
	for id, price := range prices {
		cloned[id] = price
	}

	return &service{
		interval:   interval,
		pricesMtx:  &sync.RWMutex{},
		prices:     cloned,
		feedIDsMtx: &sync.RWMutex{},
		feedIDs:    make(map[string]struct{}),
		chLock:     &sync.Mutex{},
		feedChan:   make(chan oraclefeed.PriceFeed),
		quitChan:   make(chan struct{}, 1),
	}
}

func (s *service) SubscribeFeeds(feedIDs []string) error {
	s.feedIDsMtx.Lock()
	defer s.feedIDsMtx.Unlock()

	for _, id := range feedIDs {
		s.feedIDs[id] = struct{}{}
	}
	return nil
}

func (s *service) UnsubscribeFeeds(feedIDs []string) error {
	s.feedIDsMtx.Lock()
	defer s.feedIDsMtx.Unlock()

	for _, id := range feedIDs {
		delete(s.feedIDs, id)
	}
	return nil
}

func (s *service) Start() error {
	ticker := time.NewTicker(s.interval)
	for {
		select {
		case <-s.quitChan:
			ticker.Stop()
			s.closeChannels()
			return nil
		case <-ticker.C:
			s.emit()
		}
	}
}

func (s *service) Stop() {
	s.quitChan <- struct{}{}
}

func (s *service) FeedChan() chan oraclefeed.PriceFeed {
	return s.feedChan
}

// SetPrice overrides a feed price, eg. to simulate a market move mid-test.
func (s *service) SetPrice(feedID string, price decimal.Decimal) {
	s.pricesMtx.Lock()
	defer s.pricesMtx.Unlock()

	s.prices[feedID] = oraclefeed.Price{Price: price}
}

func (s *service) emit() {
	s.chLock.Lock()
	defer s.chLock.Unlock()

	for _, id := range s.subscribedIDs() {
		price, ok := s.getPrice(id)
		if !ok {
			continue
		}
		s.feedChan <- oraclefeed.PriceFeed{FeedID: id, Price: price}
	}
}

func (s *service) closeChannels() {
	s.chLock.Lock()
	defer s.chLock.Unlock()

	close(s.feedChan)
	close(s.quitChan)
}

func (s *service) subscribedIDs() []string {
	s.feedIDsMtx.RLock()
	defer s.feedIDsMtx.RUnlock()

	ids := make([]string, 0, len(s.feedIDs))
	for id := range s.feedIDs {
		ids = append(ids, id)
	}
	return ids
}

func (s *service) getPrice(feedID string) (oraclefeed.Price, bool) {
	s.pricesMtx.RLock()
	defer s.pricesMtx.RUnlock()

	price, ok := s.prices[feedID]
	return price, ok
}
