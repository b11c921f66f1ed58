package pricing

import "errors"

var (
	// ErrInvalidAmount is returned on non-numeric or negative input amounts.
	ErrInvalidAmount = errors.New("amount must be a non-negative decimal string")
	// ErrInvalidTokenPair is returned when the traded mints do not match the
	// pool's base and quote mints.
	ErrInvalidTokenPair = errors.New("token pair does not match pool mints")
	// ErrInvalidSwapType is returned when the pool's swap-type tag is
	// neither normal nor stable.
	ErrInvalidSwapType = errors.New("unknown swap type")
	// ErrInvalidSwapDirection is returned when a direction tag is neither
	// sell-base nor sell-quote.
	ErrInvalidSwapDirection = errors.New("unknown swap direction")
	// ErrOracleUnavailable is returned when the market price triple is
	// undefined. Callers display it as "no quote available".
	ErrOracleUnavailable = errors.New("oracle price unavailable")
	// ErrInternalInvariant signals a post-condition violation. It indicates
	// a mismatch between specification and implementation and must not be
	// recovered.
	ErrInternalInvariant = errors.New("internal invariant violation")
)
