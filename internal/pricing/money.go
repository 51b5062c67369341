package pricing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// moneyRun matches the first integer-or-decimal numeric run in a money
// string, after thousands separators have been stripped.
var moneyRun = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParseMoney extracts a numeric value from a human-readable money string
// like "$8,500", "about 9500.50", or "8500-11000" (first run wins). Returns
// false when the string carries no numeric run or the value is not finite.
func ParseMoney(s string) (float64, bool) {
	cleaned := strings.ReplaceAll(s, ",", "")
	run := moneyRun.FindString(cleaned)
	if run == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(run, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
