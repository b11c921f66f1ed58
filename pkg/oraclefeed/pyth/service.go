package pythfeeder

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/oraswap-network/oraswap-daemon/pkg/oraclefeed"
)

const (
	// PythWebSocketURL is the base url to open a streaming connection with
	// the Pyth Hermes service.
	PythWebSocketURL = "hermes.pyth.network/ws"
)

type service struct {
	conn        *websocket.Conn
	writeTicker *time.Ticker

	feedIDsMtx *sync.RWMutex
	feedIDs    map[string]struct{}

	latestFeedsByIDMtx *sync.RWMutex
	latestFeedsByID    map[string]oraclefeed.PriceFeed

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
	writeTicker := time.NewTicker(time.Duration(interval) * time.Millisecond)

	conn, err := connect()
	if err != nil {
		return nil, err
	}

	return &service{
		writeTicker:        writeTicker,
		feedIDsMtx:         &sync.RWMutex{},
		feedIDs:            make(map[string]struct{}),
		latestFeedsByIDMtx: &sync.RWMutex{},
		latestFeedsByID:    make(map[string]oraclefeed.PriceFeed),
		chLock:             &sync.Mutex{},
		feedChan:           make(chan oraclefeed.PriceFeed),
		quitChan:           make(chan struct{}, 1),
		conn:               conn,
	}, nil
}

func (s *service) SubscribeFeeds(feedIDs []string) error {
	if err := s.subscribe(feedIDs); err != nil {
		return err
	}

	s.addFeeds(feedIDs)
	return nil
}

func (s *service) UnsubscribeFeeds(feedIDs []string) error {
	if err := s.unsubscribe(feedIDs); err != nil {
		return err
	}

	s.removeFeeds(feedIDs)
	return nil
}

func (s *service) Start() error {
	mustReconnect, err := s.start()
	for mustReconnect {
		log.WithError(err).Warn("connection dropped unexpectedly. Trying to reconnect...")

		conn, err := connect()
		if err != nil {
			return err
		}
		s.conn = conn

		if err := s.subscribe(s.getFeedIDs()); err != nil {
			return err
		}

		log.Debug("connection and subscriptions re-established. Restarting...")
		mustReconnect, err = s.start()
	}

	return err
}

func (s *service) Stop() {
	s.quitChan <- struct{}{}
}

func (s *service) FeedChan() chan oraclefeed.PriceFeed {
	return s.feedChan
}

func (s *service) start() (mustReconnect bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			mustReconnect = true
		}
	}()

	go func() {
		for range s.writeTicker.C {
			s.writeToFeedChan()
		}
	}()

	for {
		select {
		case <-s.quitChan:
			s.writeTicker.Stop()
			s.closeChannels()
			err = s.conn.Close()
			return false, err
		default:
			// A dropped connection sometimes panics inside ReadMessage
			// instead of returning an UnexpectedCloseError. The deferred
			// recover covers both paths to signal that the connection must
			// be re-established.
			_, message, err := s.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					panic(err)
				}
			}

			priceFeed := s.parseFeed(message)
			if priceFeed == nil {
				continue
			}

			s.writePriceFeed(priceFeed.FeedID, *priceFeed)
		}
	}
}

func (s *service) writeToFeedChan() {
	s.chLock.Lock()
	defer s.chLock.Unlock()

	priceFeeds := s.readPriceFeeds()
	for _, priceFeed := range priceFeeds {
		s.feedChan <- priceFeed
	}
}

func (s *service) closeChannels() {
	s.chLock.Lock()
	defer s.chLock.Unlock()

	close(s.feedChan)
	close(s.quitChan)
}

type priceUpdateMsg struct {
	Type      string `json:"type"`
	PriceFeed struct {
		ID    string `json:"id"`
		Price struct {
			Price       string `json:"price"`
			Conf        string `json:"conf"`
			Expo        int32  `json:"expo"`
			PublishTime int64  `json:"publish_time"`
		} `json:"price"`
	} `json:"price_feed"`
}

func (s *service) parseFeed(msg []byte) *oraclefeed.PriceFeed {
	var update priceUpdateMsg
	if err := json.Unmarshal(msg, &update); err != nil {
		return nil
	}
	if update.Type != "price_update" {
		return nil
	}
	if !s.hasFeed(update.PriceFeed.ID) {
		return nil
	}

	price, conf, ok := parsePrice(
		update.PriceFeed.Price.Price,
		update.PriceFeed.Price.Conf,
		update.PriceFeed.Price.Expo,
	)
	if !ok {
		return nil
	}

	return &oraclefeed.PriceFeed{
		FeedID: update.PriceFeed.ID,
		Price: oraclefeed.Price{
			Price:      price,
			Confidence: conf,
		},
	}
}

// parsePrice rescales the integer price and confidence by the exponent.
func parsePrice(priceStr, confStr string, expo int32) (price, conf decimal.Decimal, ok bool) {
	rawPrice, err := decimal.NewFromString(priceStr)
	if err != nil || rawPrice.Sign() <= 0 {
		return
	}
	rawConf, err := decimal.NewFromString(confStr)
	if err != nil || rawConf.Sign() < 0 {
		return
	}

	price = rawPrice.Shift(expo)
	conf = rawConf.Shift(expo)
	ok = true
	return
}

func (s *service) subscribe(feedIDs []string) error {
	msg := map[string]interface{}{
		"type": "subscribe",
		"ids":  feedIDs,
	}

	buf, _ := json.Marshal(msg)
	if err := s.conn.WriteMessage(websocket.TextMessage, buf); err != nil {
		return fmt.Errorf("cannot subscribe to given feeds: %s", err)
	}

	return nil
}

func (s *service) unsubscribe(feedIDs []string) error {
	msg := map[string]interface{}{
		"type": "unsubscribe",
		"ids":  feedIDs,
	}

	if err := s.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("cannot unsubscribe to given feeds: %s", err)
	}

	return nil
}

func connect() (*websocket.Conn, error) {
	url := fmt.Sprintf("wss://%s", PythWebSocketURL)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}

	return conn, nil
}

func (s *service) addFeeds(feedIDs []string) {
	s.feedIDsMtx.Lock()
	defer s.feedIDsMtx.Unlock()

	for _, id := range feedIDs {
		s.feedIDs[id] = struct{}{}
	}
}

func (s *service) removeFeeds(feedIDs []string) {
	s.feedIDsMtx.Lock()
	defer s.feedIDsMtx.Unlock()

	for _, id := range feedIDs {
		delete(s.feedIDs, id)
	}

	s.latestFeedsByIDMtx.Lock()
	defer s.latestFeedsByIDMtx.Unlock()

	for _, id := range feedIDs {
		delete(s.latestFeedsByID, id)
	}
}

func (s *service) hasFeed(feedID string) bool {
	s.feedIDsMtx.RLock()
	defer s.feedIDsMtx.RUnlock()

	_, ok := s.feedIDs[feedID]
	return ok
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

func (s *service) readPriceFeeds() []oraclefeed.PriceFeed {
	s.latestFeedsByIDMtx.RLock()
	defer s.latestFeedsByIDMtx.RUnlock()

	feeds := make([]oraclefeed.PriceFeed, 0, len(s.latestFeedsByID))
	for _, priceFeed := range s.latestFeedsByID {
		feeds = append(feeds, priceFeed)
	}
	return feeds
}

func (s *service) writePriceFeed(feedID string, priceFeed oraclefeed.PriceFeed) {
	s.latestFeedsByIDMtx.Lock()
	defer s.latestFeedsByIDMtx.Unlock()

	if feedID == "" {
		return
	}

	s.latestFeedsByID[feedID] = priceFeed
}
