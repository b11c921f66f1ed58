package mockfeeder

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oraswap-network/oraswap-daemon/pkg/oraclefeed"
)

func TestMockFeederEmitsSubscribedFeeds(t *testing.T) {
	feeder := NewService(map[string]oraclefeed.Price{
		"sol-usd":  {Price: decimal.NewFromInt(150)},
		"usdc-usd": {Price: decimal.NewFromInt(1)},
	}, 10*time.Millisecond)

	require.NoError(t, feeder.SubscribeFeeds([]string{"sol-usd"}))

	done := make(chan error, 1)
	go func() { done <- feeder.Start() }()

	select {
	case feed := <-feeder.FeedChan():
		assert.Equal(t, "sol-usd", feed.FeedID)
		assert.True(t, feed.Price.Price.Equal(decimal.NewFromInt(150)))
	case <-time.After(time.Second):
		t.Fatal("no feed received")
	}

	// Drain until the channel is closed so Stop never blocks on a pending
	// emit.
	go func() {
		for range feeder.FeedChan() {
		}
	}()

	feeder.Stop()
	require.NoError(t, <-done)
}

func TestMockFeederUnsubscribe(t *testing.T) {
	feeder := NewService(map[string]oraclefeed.Price{
		"sol-usd": {Price: decimal.NewFromInt(150)},
	}, 10*time.Millisecond)

	require.NoError(t, feeder.SubscribeFeeds([]string{"sol-usd"}))
	require.NoError(t, feeder.UnsubscribeFeeds([]string{"sol-usd"}))

	done := make(chan error, 1)
	go func() { done <- feeder.Start() }()

	select {
	case feed := <-feeder.FeedChan():
		t.Fatalf("unexpected feed %v", feed)
	case <-time.After(100 * time.Millisecond):
	}

	feeder.Stop()
	require.NoError(t, <-done)
}
