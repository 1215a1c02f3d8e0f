package strategy

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/marcosvbalencar/portfolio-advisor/internal/models"
)

var oneHundred = decimal.NewFromInt(100)

// buildSummary composes the plan summary sentence. The category order
// (HARD_SELL, SOFT_SELL, TRIM) and the overall structure are a contract
// consumed by the letter drafting stage.
func buildSummary(
	actions []models.RebalancingAction,
	totalSellValue decimal.Decimal,
	rebalanceNeeded bool,
	currentEquityPct, maxEquityPct, driftTolerance decimal.Decimal,
) string {
	counts := make(map[models.ActionType]int)
	for _, a := range actions {
		if a.Action != models.ActionHold {
			counts[a.Action]++
		}
	}

	var summary string
	if len(counts) == 0 {
		summary = "No rebalancing actions needed at the moment."
	} else {
		var parts []string
		if n := counts[models.ActionHardSell]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d urgent sell(s)", n))
		}
		if n := counts[models.ActionSoftSell]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d macro scenario reduction(s)", n))
		}
		if n := counts[models.ActionTrim]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d profit realization(s)", n))
		}
		summary = fmt.Sprintf("Recommended rebalancing: %s. Total suggested sell value: R$ %s",
			strings.Join(parts, ", "), formatAmount(totalSellValue))
	}

	if rebalanceNeeded {
		summary = fmt.Sprintf("[ALERT] Equity allocation (%s%%) exceeds limit (%s%% + %s%% tolerance). %s",
			currentEquityPct.StringFixed(1), maxEquityPct.StringFixed(1),
			driftTolerance.StringFixed(1), summary)
	}

	return summary
}

// signedFixed renders a decimal with an explicit sign, e.g. "+8.9" / "-16.4".
func signedFixed(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	if !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	return s
}

// formatAmount renders a monetary amount with two decimals and thousands
// separators, e.g. "48,000.00".
func formatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
