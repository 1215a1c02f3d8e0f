package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketPrice represents one row of the profitability price feed
type MarketPrice struct {
	AssetClass     string          `json:"asset_class"`
	Ticker         string          `json:"ticker"`
	CurrentPrice   decimal.Decimal `json:"current_price"`
	LastMonthPrice decimal.Decimal `json:"last_month_price"`
}

// CalculatedReturn represents the monthly return derived for one holding
// that matched a price feed row
type CalculatedReturn struct {
	Ticker           string          `json:"ticker"`
	CurrentPrice     decimal.Decimal `json:"current_price"`
	LastMonthPrice   decimal.Decimal `json:"last_month_price"`
	MonthlyReturnPct decimal.Decimal `json:"monthly_return_pct"`
	PositionValue    decimal.Decimal `json:"position_value"`
}

// PriceEvent represents a Kafka event carrying a batch of price snapshots
type PriceEvent struct {
	EventType string        `json:"event_type"`
	Prices    []MarketPrice `json:"prices"`
	AsOf      string        `json:"as_of"`
	Timestamp time.Time     `json:"timestamp"`
}
