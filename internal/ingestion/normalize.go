package ingestion

import (
	"strings"

	"github.com/marcosvbalencar/portfolio-advisor/internal/models"
)

var profileTypes = map[string]string{
	"conservative": models.ProfileConservative,
	"moderate":     models.ProfileModerate,
	"aggressive":   models.ProfileAggressive,
}

// Keywords in macro research text that indicate a bearish stance when the
// extracted view label is unusable.
var bearishIndicators = []string{"slipping", "thin ice", "worried", "risk", "uncertainty"}

// NormalizeProfileType maps a raw profile label to one of the canonical
// profile types, defaulting to Moderate.
func NormalizeProfileType(profile string) string {
	if p, ok := profileTypes[strings.ToLower(strings.TrimSpace(profile))]; ok {
		return p
	}
	return models.ProfileModerate
}

// NormalizeHouseView maps a raw house view label to Bullish, Bearish or
// Neutral. An unrecognized label falls back to scanning the macro text for
// bearish cues, then to Neutral.
func NormalizeHouseView(view, macroText string) string {
	switch strings.ToLower(strings.TrimSpace(view)) {
	case "bullish":
		return models.HouseViewBullish
	case "bearish":
		return models.HouseViewBearish
	case "neutral":
		return models.HouseViewNeutral
	}

	lower := strings.ToLower(macroText)
	for _, term := range bearishIndicators {
		if strings.Contains(lower, term) {
			return models.HouseViewBearish
		}
	}
	return models.HouseViewNeutral
}
