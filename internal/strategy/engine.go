// Package strategy implements the deterministic rebalancing rule engine.
// No LLM calls, no randomness, no clock: two runs over identical inputs
// produce byte-identical plans.
//
// Decisions use MONTHLY returns from the price feed, not the all-time
// returns quoted in the portfolio document.
package strategy

import (
	"fmt"
	"log"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/marcosvbalencar/portfolio-advisor/internal/models"
)

// Engine applies the rebalancing rule table to a portfolio
type Engine struct {
	rules RuleConfig
}

// NewEngine creates an Engine with the given rule table, failing fast on a
// structurally invalid configuration.
func NewEngine(rules RuleConfig) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rule configuration: %w", err)
	}
	return &Engine{rules: rules}, nil
}

// BuildPlan produces the rebalancing plan for a portfolio. Only equity
// holdings are evaluated; holdings without a calculated return are skipped
// entirely rather than defaulted to HOLD.
func (e *Engine) BuildPlan(
	portfolio *models.Portfolio,
	risk models.RiskProfile,
	houseView string,
	returns []models.CalculatedReturn,
) *models.RebalancingPlan {
	monthlyReturns := make(map[string]decimal.Decimal, len(returns))
	for _, cr := range returns {
		monthlyReturns[cr.Ticker] = cr.MonthlyReturnPct
	}

	threshold := risk.MaxEquityPct.Add(risk.DriftTolerance)
	rebalanceNeeded := portfolio.EquityPct.GreaterThan(threshold)
	if rebalanceNeeded {
		log.Printf("allocation breach: %s%% > %s%%", portfolio.EquityPct.StringFixed(1), threshold.StringFixed(1))
	}

	actions := e.applySecurityRules(portfolio.Assets, houseView, monthlyReturns)

	totalSellValue := decimal.Zero
	for _, a := range actions {
		if a.Action != models.ActionHold {
			totalSellValue = totalSellValue.Add(a.SuggestedSellValue)
		}
	}

	sort.SliceStable(actions, func(i, j int) bool {
		pi, pj := actions[i].Action.Priority(), actions[j].Action.Priority()
		if pi != pj {
			return pi < pj
		}
		return actions[i].SizePct.Abs().GreaterThan(actions[j].SizePct.Abs())
	})

	summary := buildSummary(actions, totalSellValue, rebalanceNeeded,
		portfolio.EquityPct, risk.MaxEquityPct, risk.DriftTolerance)

	return &models.RebalancingPlan{
		RebalanceNeeded:  rebalanceNeeded,
		CurrentEquityPct: portfolio.EquityPct,
		TargetEquityPct:  risk.MaxEquityPct,
		Actions:          actions,
		TotalSellValue:   totalSellValue,
		Summary:          summary,
	}
}

func (e *Engine) applySecurityRules(
	assets []models.Asset,
	houseView string,
	monthlyReturns map[string]decimal.Decimal,
) []models.RebalancingAction {
	actions := []models.RebalancingAction{}

	for _, asset := range assets {
		if asset.AssetClass != models.AssetClassStocks {
			continue
		}

		monthlyReturn, ok := monthlyReturns[asset.Ticker]
		if !ok {
			log.Printf("%s: no monthly return data, skipping", asset.Ticker)
			continue
		}

		action, sizePct, rationale := e.evaluate(monthlyReturn, houseView)

		suggestedSell := decimal.Zero
		if sizePct.IsPositive() {
			suggestedSell = asset.Value.Mul(sizePct).Div(oneHundred)
		}

		actions = append(actions, models.RebalancingAction{
			Ticker:             asset.Ticker,
			Action:             action,
			SizePct:            sizePct,
			CurrentValue:       asset.Value,
			SuggestedSellValue: suggestedSell,
			Rationale:          fmt.Sprintf("%s (Monthly return: %s%%)", rationale, signedFixed(monthlyReturn, 1)),
		})
	}

	return actions
}

// evaluate applies the rule table in strict priority order; the first
// matching rule wins. All comparisons are strict, so a return exactly on a
// threshold falls through to the next rule.
func (e *Engine) evaluate(returnPct decimal.Decimal, houseView string) (models.ActionType, decimal.Decimal, string) {
	if returnPct.LessThan(e.rules.HardSell.Threshold) {
		return models.ActionHardSell, e.rules.HardSell.SizePct, e.rules.HardSell.Rationale
	}
	if returnPct.GreaterThan(e.rules.Trim.Threshold) {
		return models.ActionTrim, e.rules.Trim.SizePct, e.rules.Trim.Rationale
	}
	if houseView == models.HouseViewBearish && returnPct.LessThan(e.rules.SoftSell.Threshold) {
		return models.ActionSoftSell, e.rules.SoftSell.SizePct, e.rules.SoftSell.Rationale
	}
	return models.ActionHold, decimal.Zero, holdRationale
}
