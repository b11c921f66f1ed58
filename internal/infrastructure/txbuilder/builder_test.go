package txbuilder

import (
	"encoding/binary"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oraswap-network/oraswap-daemon/internal/core/ports"
)

const (
	poolAddress  = "9W959DqEETiGZocYWCQPaJ6sBmUzgfxXfqGeTEdp3aQP"
	traderWallet = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	solMint      = "So11111111111111111111111111111111111111112"
	usdcMint     = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

func TestBuildSwapTx(t *testing.T) {
	b := NewTxBuilder()

	tx, err := b.BuildSwapTx(ports.SwapTxRequest{
		PoolAddress:  poolAddress,
		TraderWallet: traderWallet,
		FromMint:     solMint,
		ToMint:       usdcMint,
		AmountIn:     1_000_000,
		MinAmountOut: 1_990_000,
	})
	require.NoError(t, err)

	// tag + 4 keys + 2 u64 amounts
	require.Len(t, tx, 1+4*32+16)
	assert.Equal(t, byte(1), tx[0])

	poolKey, _ := base58.Decode(poolAddress)
	assert.Equal(t, poolKey, tx[1:33])

	amountIn := binary.LittleEndian.Uint64(tx[129:137])
	minOut := binary.LittleEndian.Uint64(tx[137:145])
	assert.Equal(t, uint64(1_000_000), amountIn)
	assert.Equal(t, uint64(1_990_000), minOut)
}

func TestBuildSwapTxInvalid(t *testing.T) {
	b := NewTxBuilder()

	_, err := b.BuildSwapTx(ports.SwapTxRequest{
		PoolAddress:  poolAddress,
		TraderWallet: traderWallet,
		FromMint:     solMint,
		ToMint:       usdcMint,
	})
	assert.Equal(t, ErrZeroAmount, err)

	_, err = b.BuildSwapTx(ports.SwapTxRequest{
		PoolAddress:  "bogus",
		TraderWallet: traderWallet,
		FromMint:     solMint,
		ToMint:       usdcMint,
		AmountIn:     1,
	})
	assert.ErrorIs(t, err, ErrInvalidAccount)
}
