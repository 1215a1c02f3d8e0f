// Package ingestion holds the deterministic tail of document ingestion:
// portfolio aggregation, consistency validation, and label normalization.
// The free-text extraction itself happens upstream.
package ingestion

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/marcosvbalencar/portfolio-advisor/internal/models"
)

var oneHundred = decimal.NewFromInt(100)

// Fixed-income asset class labels seen in extracted portfolios
var fixedIncomeClasses = map[string]bool{
	models.AssetClassFixedIncome: true,
	"Fixed Income":               true,
	"Renda Fixa":                 true,
	"CDB":                        true,
}

// Allocation sum sanity bounds, in percent
var (
	allocationSumMin = decimal.NewFromInt(95)
	allocationSumMax = decimal.NewFromInt(105)
)

// Aggregate derives portfolio totals and allocation percentages from the
// extracted asset list. When the extracted total is missing or zero, the
// sum of asset values is used instead.
func Aggregate(clientName string, assets []models.Asset, extractedTotal decimal.Decimal) *models.Portfolio {
	equityValue := decimal.Zero
	fixedIncomeValue := decimal.Zero
	assetSum := decimal.Zero

	for _, a := range assets {
		assetSum = assetSum.Add(a.Value)
		switch {
		case a.AssetClass == models.AssetClassStocks:
			equityValue = equityValue.Add(a.Value)
		case fixedIncomeClasses[a.AssetClass]:
			fixedIncomeValue = fixedIncomeValue.Add(a.Value)
		}
	}

	totalValue := extractedTotal
	if !totalValue.IsPositive() {
		totalValue = assetSum
	}

	equityPct := decimal.Zero
	fixedIncomePct := decimal.Zero
	if totalValue.IsPositive() {
		equityPct = equityValue.Div(totalValue).Mul(oneHundred)
		fixedIncomePct = fixedIncomeValue.Div(totalValue).Mul(oneHundred)
	}

	return &models.Portfolio{
		ClientName:       clientName,
		Assets:           assets,
		TotalValue:       totalValue,
		EquityValue:      equityValue,
		EquityPct:        equityPct,
		FixedIncomeValue: fixedIncomeValue,
		FixedIncomePct:   fixedIncomePct,
	}
}

// Validate checks the aggregated portfolio for internal consistency. Issues
// are collected for reporting; they never abort the pipeline.
func Validate(p *models.Portfolio) models.PortfolioValidation {
	issues := []string{}

	allocationSum := decimal.Zero
	if p.TotalValue.IsPositive() {
		assetSum := decimal.Zero
		for _, a := range p.Assets {
			assetSum = assetSum.Add(a.Value)
		}
		allocationSum = assetSum.Div(p.TotalValue).Mul(oneHundred)
	}

	if allocationSum.LessThan(allocationSumMin) || allocationSum.GreaterThan(allocationSumMax) {
		issues = append(issues, fmt.Sprintf(
			"asset values sum to %s%% of total value (expected 95-105%%)",
			allocationSum.StringFixed(1)))
	}

	for _, a := range p.Assets {
		if !a.Value.IsPositive() {
			issues = append(issues, fmt.Sprintf("asset %s has non-positive value %s", a.Ticker, a.Value))
		}
	}

	return models.PortfolioValidation{
		IsValid:       len(issues) == 0,
		AllocationSum: allocationSum,
		Issues:        issues,
	}
}

// DefaultMaxEquityPct returns the standing equity limit for a risk profile.
func DefaultMaxEquityPct(profileType string) decimal.Decimal {
	switch profileType {
	case models.ProfileConservative:
		return decimal.NewFromInt(20)
	case models.ProfileAggressive:
		return decimal.NewFromInt(70)
	}
	return decimal.NewFromInt(40)
}

// DefaultDriftTolerance is the standing drift allowance above the equity
// limit before a rebalance is flagged.
func DefaultDriftTolerance() decimal.Decimal {
	return decimal.NewFromInt(5)
}
