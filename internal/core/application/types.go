package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

var decimalOne = decimal.NewFromInt(1)

var quotesServed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "oraswap",
	Name:      "quotes_served_total",
	Help:      "Number of previews served, per pool and quote direction.",
}, []string{"pool", "kind"})

// PoolDetails is the catalog listing view of a pool.
type PoolDetails struct {
	Address   string
	Name      string
	SwapType  string
	BaseMint  string
	QuoteMint string
}

// WithdrawalPreviewRequest asks for the per-token split of redeeming the
// given share amounts against a pool.
type WithdrawalPreviewRequest struct {
	PoolAddress string
	BaseShare   uint64
	QuoteShare  uint64
}

// DepositPreviewRequest asks for the minimum shares minted by depositing
// the given human-scale amounts.
type DepositPreviewRequest struct {
	PoolAddress    string
	BaseAmount     string
	QuoteAmount    string
	MinCoefficient string
}
