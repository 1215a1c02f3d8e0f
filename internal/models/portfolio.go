package models

import "github.com/shopspring/decimal"

// Asset class constants
const (
	AssetClassStocks      = "Stocks"
	AssetClassFixedIncome = "Fixed_Income"
	AssetClassFunds       = "Funds"
)

// Risk profile constants
const (
	ProfileConservative = "Conservative"
	ProfileModerate     = "Moderate"
	ProfileAggressive   = "Aggressive"
)

// House view constants
const (
	HouseViewBullish = "Bullish"
	HouseViewBearish = "Bearish"
	HouseViewNeutral = "Neutral"
)

// Asset represents a single holding in the client's portfolio
type Asset struct {
	Ticker     string           `json:"ticker"`
	Value      decimal.Decimal  `json:"value"`
	AssetClass string           `json:"asset_class"`
	ReturnPct  *decimal.Decimal `json:"return_pct,omitempty"`
}

// Portfolio represents the client's portfolio with derived aggregates
type Portfolio struct {
	ClientName       string          `json:"client_name,omitempty"`
	Assets           []Asset         `json:"assets"`
	TotalValue       decimal.Decimal `json:"total_value"`
	EquityValue      decimal.Decimal `json:"equity_value"`
	EquityPct        decimal.Decimal `json:"equity_pct"`
	FixedIncomeValue decimal.Decimal `json:"fixed_income_value"`
	FixedIncomePct   decimal.Decimal `json:"fixed_income_pct"`
}

// PortfolioValidation holds the result of portfolio consistency checks
type PortfolioValidation struct {
	IsValid       bool            `json:"is_valid"`
	AllocationSum decimal.Decimal `json:"allocation_sum"`
	Issues        []string        `json:"issues"`
}

// RiskProfile represents the client's risk constraints
type RiskProfile struct {
	ProfileType    string          `json:"profile_type"`
	MaxEquityPct   decimal.Decimal `json:"max_equity_pct"`
	DriftTolerance decimal.Decimal `json:"drift_tolerance"`
}
