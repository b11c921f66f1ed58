package txbuilder

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/oraswap-network/oraswap-daemon/internal/core/ports"
)

// swapInstructionTag is the discriminator of the swap instruction in the
// on-chain program's instruction set.
const swapInstructionTag byte = 1

var (
	// ErrInvalidAccount ...
	ErrInvalidAccount = errors.New("account must be a base58 32-byte key")
	// ErrZeroAmount ...
	ErrZeroAmount = errors.New("amount in must be positive")
)

type builder struct{}

// NewTxBuilder returns a TxBuilder serializing unsigned swap instructions:
// a one-byte tag, the four account keys and the two little-endian u64
// amounts. The layout mirrors the program's borsh-free instruction data.
func NewTxBuilder() ports.TxBuilder {
	return &builder{}
}

func (b *builder) BuildSwapTx(req ports.SwapTxRequest) ([]byte, error) {
	if req.AmountIn == 0 {
		return nil, ErrZeroAmount
	}

	buf := new(bytes.Buffer)
	buf.WriteByte(swapInstructionTag)

	for _, account := range []struct {
		name string
		addr string
	}{
		{"pool", req.PoolAddress},
		{"trader", req.TraderWallet},
		{"from mint", req.FromMint},
		{"to mint", req.ToMint},
	} {
		key, err := decodeKey(account.addr)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", account.name, err)
		}
		buf.Write(key)
	}

	amounts := make([]byte, 16)
	binary.LittleEndian.PutUint64(amounts[:8], req.AmountIn)
	binary.LittleEndian.PutUint64(amounts[8:], req.MinAmountOut)
	buf.Write(amounts)

	return buf.Bytes(), nil
}

func decodeKey(addr string) ([]byte, error) {
	key, err := base58.Decode(addr)
	if err != nil {
		return nil, ErrInvalidAccount
	}
	if len(key) != 32 {
		return nil, ErrInvalidAccount
	}
	return key, nil
}
