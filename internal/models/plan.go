package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActionType identifies a rebalancing recommendation category
type ActionType string

// Rebalancing action constants
const (
	ActionHardSell ActionType = "HARD_SELL"
	ActionSoftSell ActionType = "SOFT_SELL"
	ActionTrim     ActionType = "TRIM"
	ActionHold     ActionType = "HOLD"
)

// Priority returns the sort ordinal for an action type. Lower sorts first.
func (a ActionType) Priority() int {
	switch a {
	case ActionHardSell:
		return 0
	case ActionSoftSell:
		return 1
	case ActionTrim:
		return 2
	case ActionHold:
		return 3
	}
	return 4
}

// RebalancingAction represents the recommendation for a single equity holding
type RebalancingAction struct {
	Ticker             string          `json:"ticker"`
	Action             ActionType      `json:"action"`
	SizePct            decimal.Decimal `json:"size_pct"`
	CurrentValue       decimal.Decimal `json:"current_value"`
	SuggestedSellValue decimal.Decimal `json:"suggested_sell_value"`
	Rationale          string          `json:"rationale"`
}

// RebalancingPlan is the complete, ordered rebalancing recommendation.
// Field names are a cross-language contract consumed by the drafting stage.
type RebalancingPlan struct {
	RebalanceNeeded  bool                `json:"rebalance_needed"`
	CurrentEquityPct decimal.Decimal     `json:"current_equity_pct"`
	TargetEquityPct  decimal.Decimal     `json:"target_equity_pct"`
	Actions          []RebalancingAction `json:"actions"`
	TotalSellValue   decimal.Decimal     `json:"total_sell_value"`
	Summary          string              `json:"summary"`
}

// PlanEvent represents a Kafka event published after a plan is generated
type PlanEvent struct {
	EventType string           `json:"event_type"`
	ClientID  string           `json:"client_id"`
	Plan      *RebalancingPlan `json:"plan,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}
