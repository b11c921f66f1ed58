package ports

// SwapTxRequest carries everything needed to assemble a swap instruction:
// the pool and trader accounts plus the quoted bounds at on-chain scale. No
// pricing happens past this point.
type SwapTxRequest struct {
	PoolAddress  string
	TraderWallet string
	FromMint     string
	ToMint       string
	AmountIn     uint64
	MinAmountOut uint64
}

// TxBuilder serializes unsigned swap instructions. Signing and submission
// are out of scope of the daemon.
type TxBuilder interface {
	BuildSwapTx(req SwapTxRequest) ([]byte, error)
}
