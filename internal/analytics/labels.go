package analytics

import (
	"math"
	"strconv"
)

var magnitudes = []struct {
	factor float64
	suffix string
}{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// bucketLabel renders a bucket as "1B-10B" or "100B+".
func bucketLabel(lower, upper float64) string {
	if math.IsInf(upper, 1) {
		return shortAmount(lower) + "+"
	}
	return shortAmount(lower) + "-" + shortAmount(upper)
}

func shortAmount(v float64) string {
	for _, m := range magnitudes {
		if math.Abs(v) >= m.factor {
			return strconv.FormatFloat(roundTo(v/m.factor, 2), 'f', -1, 64) + m.suffix
		}
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func roundTo(v float64, prec int) float64 {
	p := math.Pow10(prec)
	return math.Round(v*p) / p
}
