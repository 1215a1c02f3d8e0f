package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Default rule table, matching the advisory desk's standing policy.
var (
	defaultHardSellThreshold = decimal.NewFromInt(-20)
	defaultHardSellSize      = decimal.NewFromInt(50)
	defaultTrimThreshold     = decimal.NewFromInt(25)
	defaultTrimSize          = decimal.NewFromInt(25)
	defaultSoftSellThreshold = decimal.NewFromInt(-10)
	defaultSoftSellSize      = decimal.NewFromInt(30)
)

// Default rationale text per rule
const (
	defaultHardSellRationale = "Asset down more than 20%. Partial sell recommended to protect capital."
	defaultTrimRationale     = "Asset with strong appreciation (+25%). Partial profit taking recommended."
	defaultSoftSellRationale = "Unfavorable macro scenario combined with negative performance. Position reduction recommended."
	holdRationale            = "Position within parameters. Keep current allocation."
)

// Rule configures a single rebalancing trigger
type Rule struct {
	Threshold decimal.Decimal
	SizePct   decimal.Decimal
	Rationale string
}

// RuleConfig is the full rule table for the engine. It is passed in at
// construction and must not be mutated during evaluation.
type RuleConfig struct {
	HardSell Rule
	Trim     Rule
	SoftSell Rule
}

// DefaultRuleConfig returns the standing rule table: hard sell below -20%
// at 50%, trim above +25% at 25%, soft sell below -10% at 30% under a
// bearish house view.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		HardSell: Rule{Threshold: defaultHardSellThreshold, SizePct: defaultHardSellSize, Rationale: defaultHardSellRationale},
		Trim:     Rule{Threshold: defaultTrimThreshold, SizePct: defaultTrimSize, Rationale: defaultTrimRationale},
		SoftSell: Rule{Threshold: defaultSoftSellThreshold, SizePct: defaultSoftSellSize, Rationale: defaultSoftSellRationale},
	}
}

// Validate checks that the rule table is usable. A broken table is a
// configuration error and must stop plan generation entirely.
func (c RuleConfig) Validate() error {
	for name, rule := range map[string]Rule{
		"hard_sell": c.HardSell,
		"trim":      c.Trim,
		"soft_sell": c.SoftSell,
	} {
		if rule.SizePct.IsNegative() || rule.SizePct.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("rule %s: size_pct %s outside [0, 100]", name, rule.SizePct)
		}
		if rule.Rationale == "" {
			return fmt.Errorf("rule %s: rationale must not be empty", name)
		}
	}
	return nil
}
