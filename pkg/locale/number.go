package locale

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const maxDecimals = 9

// FormatNumber renders value with "." as the thousands separator and "," as
// the decimal separator, always emitting exactly decimals fraction digits.
func FormatNumber(value float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	if decimals > maxDecimals {
		decimals = maxDecimals
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}
	out := humanize.FormatFloat("#.###,"+strings.Repeat("#", decimals), value)
	if strings.HasPrefix(out, "-") && strings.Trim(out, "-0.,") == "" {
		return out[1:]
	}
	return out
}

// ParseNumber converts a locale formatted number ("1.234,56", "+12,50%",
// "−3,00") into a plain machine parseable string ("1234.56", "12.50",
// "-3.00"). The second return value is false when the input is not numeric.
func ParseNumber(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return "", false
	}

	negative := false
	switch {
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "−"):
		negative = true
		s = strings.TrimPrefix(s, "−")
	}

	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	if s == "" {
		return "", false
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return "", false
	}
	if negative {
		s = "-" + s
	}
	return s, true
}

func floorTo(value float64, decimals int) float64 {
	step := math.Pow10(decimals)
	return math.Floor(value*step) / step
}
