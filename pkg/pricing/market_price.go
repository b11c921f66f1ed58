package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/oraswap-network/oraswap-daemon/pkg/mathutil"
)

// OraclePrice is a (price, confidence) pair from an oracle source. Price is
// strictly positive for a defined quote; mock sources may set the confidence
// to zero.
type OraclePrice struct {
	Price      decimal.Decimal
	Confidence decimal.Decimal
}

// IsZero reports whether the price is undefined.
func (p OraclePrice) IsZero() bool {
	return p.Price.Sign() <= 0
}

// MarketPrice is the mid/low/high triple of the base token price expressed
// in quote tokens. The zero value means the market price is undefined.
type MarketPrice struct {
	Mid  decimal.Decimal
	Low  decimal.Decimal
	High decimal.Decimal
}

// IsZero reports whether the triple is undefined.
func (m MarketPrice) IsZero() bool {
	return m.Mid.Sign() <= 0
}

// hasBounds reports whether the adverse bounds are usable.
func (m MarketPrice) hasBounds() bool {
	return m.Low.Sign() > 0 && m.High.Sign() > 0
}

// NewMarketPrice derives the triple from the two oracle legs:
//
//	mid  = base.price / quote.price
//	high = (base.price + base.conf) / (quote.price - quote.conf)
//	low  = (base.price - base.conf) / (quote.price + quote.conf)
//
// If either leg is undefined the whole triple is undefined.
func NewMarketPrice(base, quote OraclePrice) MarketPrice {
	if base.IsZero() || quote.IsZero() {
		return MarketPrice{}
	}

	mid, err := mathutil.Div(base.Price, quote.Price, mathutil.RoundHalfEven)
	if err != nil {
		return MarketPrice{}
	}

	mp := MarketPrice{Mid: mid}

	highDen := quote.Price.Sub(quote.Confidence)
	if highDen.Sign() > 0 {
		if high, err := mathutil.Div(
			base.Price.Add(base.Confidence), highDen, mathutil.RoundHalfEven,
		); err == nil {
			mp.High = high
		}
	}
	lowNum := base.Price.Sub(base.Confidence)
	if lowNum.Sign() > 0 {
		if low, err := mathutil.Div(
			lowNum, quote.Price.Add(quote.Confidence), mathutil.RoundHalfEven,
		); err == nil {
			mp.Low = low
		}
	}
	return mp
}

// pick returns the price the engine quotes with: the bound adverse to the
// trader per direction when confidence intervals are enabled and available,
// the mid otherwise. A base seller is paid at the low bound; a quote seller
// buys base at the high bound.
func (m MarketPrice) pick(direction SwapDirection, useConfidence bool) decimal.Decimal {
	if !useConfidence || !m.hasBounds() {
		return m.Mid
	}
	if direction == SellBase {
		return m.Low
	}
	return m.High
}
