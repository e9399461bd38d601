package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// NoBailAmount is the sentinel for hold-without-bail records. It sorts above
// any real dollar amount.
const NoBailAmount = 999999999

var moneyPattern = regexp.MustCompile(`\$[\d,]+\.?\d*`)

// ParseBailAmount converts free-text bail into a comparable numeric value.
// It never fails: unparsable input yields 0.
//
// Special cases, checked before any currency match:
//   - "NO BAIL" / "HOLD WITHOUT BAIL" anywhere in the text -> NoBailAmount
//   - "RELEASED" / "NO BAIL INFORMATION" -> 0
func ParseBailAmount(text string) float64 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}

	upper := strings.ToUpper(trimmed)
	if strings.Contains(upper, "RELEASED") || strings.Contains(upper, "NO BAIL INFORMATION") {
		return 0
	}
	if strings.Contains(upper, "NO BAIL") || strings.Contains(upper, "HOLD WITHOUT BAIL") {
		return NoBailAmount
	}

	match := moneyPattern.FindString(text)
	if match == "" {
		return 0
	}
	cleaned := strings.ReplaceAll(strings.TrimPrefix(match, "$"), ",", "")
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || amount < 0 {
		return 0
	}
	return amount
}
