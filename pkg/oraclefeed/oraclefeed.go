package oraclefeed

import (
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

var (
	WebSocketCloseErrors = []int{
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseProtocolError,
		websocket.CloseUnsupportedData,
		websocket.CloseNoStatusReceived,
		websocket.CloseAbnormalClosure,
		websocket.CloseInvalidFramePayloadData,
		websocket.ClosePolicyViolation,
		websocket.CloseMessageTooBig,
		websocket.CloseMandatoryExtension,
		websocket.CloseInternalServerErr,
		websocket.CloseServiceRestart,
		websocket.CloseTryAgainLater,
		websocket.CloseTLSHandshake,
	}
)

// OracleFeeder streams (price, confidence) updates for a set of oracle
// feeds.
type OracleFeeder interface {
	SubscribeFeeds(feedIDs []string) error
	UnsubscribeFeeds(feedIDs []string) error

	Start() error
	Stop()

	FeedChan() chan PriceFeed
}

// PriceFeed is one update for one feed.
type PriceFeed struct {
	FeedID string
	Price  Price
}

// Price is an oracle price with its confidence interval, both at human
// scale.
type Price struct {
	Price      decimal.Decimal
	Confidence decimal.Decimal
}
