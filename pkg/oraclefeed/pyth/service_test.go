package pythfeeder

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oraswap-network/oraswap-daemon/pkg/oraclefeed"
)

func newTestService() *service {
	return &service{
		feedIDsMtx:         &sync.RWMutex{},
		feedIDs:            map[string]struct{}{"sol-usd": {}},
		latestFeedsByIDMtx: &sync.RWMutex{},
		latestFeedsByID:    make(map[string]oraclefeed.PriceFeed),
		chLock:             &sync.Mutex{},
	}
}

func TestParseFeed(t *testing.T) {
	s := newTestService()

	msg := []byte(`{
		"type": "price_update",
		"price_feed": {
			"id": "sol-usd",
			"price": {
				"price": "15012345678",
				"conf": "7500000",
				"expo": -8,
				"publish_time": 1700000000
			}
		}
	}`)

	feed := s.parseFeed(msg)
	require.NotNil(t, feed)

	assert.Equal(t, "sol-usd", feed.FeedID)
	assert.True(t, feed.Price.Price.Equal(decimal.RequireFromString("150.12345678")))
	assert.True(t, feed.Price.Confidence.Equal(decimal.RequireFromString("0.075")))
}

func TestParseFeedIgnored(t *testing.T) {
	s := newTestService()

	tests := []struct {
		name string
		msg  string
	}{
		{"not json", `not-json`},
		{"wrong type", `{"type":"response","status":"success"}`},
		{
			"unsubscribed feed",
			`{"type":"price_update","price_feed":{"id":"btc-usd","price":{"price":"1","conf":"0","expo":0}}}`,
		},
		{
			"non positive price",
			`{"type":"price_update","price_feed":{"id":"sol-usd","price":{"price":"0","conf":"0","expo":0}}}`,
		},
		{
			"negative confidence",
			`{"type":"price_update","price_feed":{"id":"sol-usd","price":{"price":"1","conf":"-1","expo":0}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, s.parseFeed([]byte(tt.msg)))
		})
	}
}

func TestParsePrice(t *testing.T) {
	price, conf, ok := parsePrice("2000000000", "1000000", -8)
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromInt(20)))
	assert.True(t, conf.Equal(decimal.RequireFromString("0.01")))

	_, _, ok = parsePrice("abc", "0", 0)
	assert.False(t, ok)
}

func TestLatestFeedOverwrites(t *testing.T) {
	s := newTestService()

	s.writePriceFeed("sol-usd", oraclefeed.PriceFeed{
		FeedID: "sol-usd",
		Price:  oraclefeed.Price{Price: decimal.NewFromInt(100)},
	})
	s.writePriceFeed("sol-usd", oraclefeed.PriceFeed{
		FeedID: "sol-usd",
		Price:  oraclefeed.Price{Price: decimal.NewFromInt(101)},
	})

	feeds := s.readPriceFeeds()
	require.Len(t, feeds, 1)
	assert.True(t, feeds[0].Price.Price.Equal(decimal.NewFromInt(101)))
}
