package pythhttpfeeder

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"

	"github.com/oraswap-network/oraswap-daemon/pkg/circuitbreaker"
	"github.com/oraswap-network/oraswap-daemon/pkg/oraclefeed"
)

const (
	// PythHTTPURL is the base url of the Pyth Hermes REST service, used as a
	// polling fallback when streaming is not available.
	PythHTTPURL = "https://hermes.pyth.network/api/latest_price_feeds"

	// maxRequestsPerSecond caps the polling rate against the remote service.
	maxRequestsPerSecond = 10
)

type service struct {
	endpoint   string
	pollTicker *time.Ticker
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	limiter    ratelimit.Limiter

	feedIDsMtx *sync.RWMutex
	feedIDs    map[string]struct{}

	chLock   *sync.Mutex
	feedChan chan oraclefeed.PriceFeed

	quitChan chan struct{}
}

func NewService(args ...interface{}) (oraclefeed.OracleFeeder, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("invalid number of args")
	}

	interval, ok := args[0].(int)
	if !ok {
		return nil, fmt.Errorf("unknown interval arg type")
	}

	return &service{
		endpoint:   PythHTTPURL,
		pollTicker: time.NewTicker(time.Duration(interval) * time.Millisecond),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		breaker:    circuitbreaker.NewCircuitBreaker("pyth-http"),
		limiter:    ratelimit.New(maxRequestsPerSecond),
		feedIDsMtx: &sync.RWMutex{},
		feedIDs:    make(map[string]struct{}),
		chLock:     &sync.Mutex{},
		feedChan:   make(chan oraclefeed.PriceFeed),
		quitChan:   make(chan struct{}, 1),
	}, nil
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
	for {
		select {
		case <-s.quitChan:
			s.pollTicker.Stop()
			s.closeChannels()
			return nil
		case <-s.pollTicker.C:
			feeds, err := s.poll()
			if err != nil {
				log.WithError(err).Warn("failed to poll oracle prices")
				continue
			}
			s.writeToFeedChan(feeds)
		}
	}
}

func (s *service) Stop() {
	s.quitChan <- struct{}{}
}

func (s *service) FeedChan() chan oraclefeed.PriceFeed {
	return s.feedChan
}

func (s *service) poll() ([]oraclefeed.PriceFeed, error) {
	feedIDs := s.getFeedIDs()
	if len(feedIDs) == 0 {
		return nil, nil
	}

	s.limiter.Take()

	resp, err := s.breaker.Execute(func() (interface{}, error) {
		return s.fetch(feedIDs)
	})
	if err != nil {
		return nil, err
	}

	return parseFeeds(resp.([]byte)), nil
}

func (s *service) fetch(feedIDs []string) ([]byte, error) {
	query := url.Values{}
	for _, id := range feedIDs {
		query.Add("ids[]", id)
	}

	resp, err := s.httpClient.Get(
		fmt.Sprintf("%s?%s", s.endpoint, query.Encode()),
	)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return ioutil.ReadAll(resp.Body)
}

type feedMsg struct {
	ID    string `json:"id"`
	Price struct {
		Price       string `json:"price"`
		Conf        string `json:"conf"`
		Expo        int32  `json:"expo"`
		PublishTime int64  `json:"publish_time"`
	} `json:"price"`
}

func parseFeeds(body []byte) []oraclefeed.PriceFeed {
	var msgs []feedMsg
	if err := json.Unmarshal(body, &msgs); err != nil {
		return nil
	}

	feeds := make([]oraclefeed.PriceFeed, 0, len(msgs))
	for _, msg := range msgs {
		price, err := decimal.NewFromString(msg.Price.Price)
		if err != nil || price.Sign() <= 0 {
			continue
		}
		conf, err := decimal.NewFromString(msg.Price.Conf)
		if err != nil || conf.Sign() < 0 {
			continue
		}

		feeds = append(feeds, oraclefeed.PriceFeed{
			FeedID: msg.ID,
			Price: oraclefeed.Price{
				Price:      price.Shift(msg.Price.Expo),
				Confidence: conf.Shift(msg.Price.Expo),
			},
		})
	}
	return feeds
}

func (s *service) writeToFeedChan(feeds []oraclefeed.PriceFeed) {
	s.chLock.Lock()
	defer s.chLock.Unlock()

	for _, feed := range feeds {
		s.feedChan <- feed
	}
}

func (s *service) closeChannels() {
	s.chLock.Lock()
	defer s.chLock.Unlock()

	close(s.feedChan)
	close(s.quitChan)
}

func (s *service) getFeedIDs() []string {
	s.feedIDsMtx.RLock()
	defer s.feedIDsMtx.RUnlock()

	ids := make([]string, 0, len(s.feedIDs))
	for id := range s.feedIDs {
		ids = append(ids, id)
	}
	return ids
}
