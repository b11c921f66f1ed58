package oracle

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oraswap-network/oraswap-daemon/pkg/oraclefeed"
	mockfeeder "github.com/oraswap-network/oraswap-daemon/pkg/oraclefeed/mock"
)

func TestSourceServesLatestPrice(t *testing.T) {
	feeder := mockfeeder.NewService(map[string]oraclefeed.Price{
		"sol-usd": {
			Price:      decimal.NewFromInt(150),
			Confidence: decimal.RequireFromString("0.1"),
		},
	}, 10*time.Millisecond)
	require.NoError(t, feeder.SubscribeFeeds([]string{"sol-usd"}))

	src := NewSource(feeder)

	done := make(chan error, 1)
	go func() { done <- src.Start() }()

	require.Eventually(t, func() bool {
		_, ok := src.LatestPrice("sol-usd")
		return ok
	}, time.Second, 10*time.Millisecond)

	price, ok := src.LatestPrice("sol-usd")
	require.True(t, ok)
	assert.True(t, price.Price.Equal(decimal.NewFromInt(150)))
	assert.True(t, price.Confidence.Equal(decimal.RequireFromString("0.1")))

	_, ok = src.LatestPrice("unknown")
	assert.False(t, ok)

	src.Stop()
	require.NoError(t, <-done)
}
