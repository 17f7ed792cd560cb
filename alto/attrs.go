package alto

import (
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// parseNumber parses numeric attribute value. Malformed values are logged and
// reported as not ok, callers decide what default to use.
func parseNumber(name, value string, log *zap.Logger) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		log.Warn("Invalid numeric attribute value", zap.String("attr", name), zap.String("value", value))
		return 0, false
	}
	return v, true
}

// numberOrZero is parseNumber with zero substituted on failure.
func numberOrZero(name, value string, log *zap.Logger) float64 {
	v, _ := parseNumber(name, value, log)
	return v
}
