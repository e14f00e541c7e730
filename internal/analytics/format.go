package analytics

import (
	"math"
	"strconv"
	"strings"
)

// fixed formats v with the given decimals, rounding half away from zero
func fixed(v float64, decimals int) string {
	scale := math.Pow(10, float64(decimals))
	rounded := math.Floor(math.Abs(v)*scale+0.5) / scale
	if v < 0 && rounded != 0 {
		rounded = -rounded
	}
	return strconv.FormatFloat(rounded, 'f', decimals, 64)
}

// thousands formats a rounded value with comma group separators
func thousands(v float64) string {
	n := int64(math.Floor(math.Abs(v) + 0.5))
	digits := strconv.FormatInt(n, 10)

	var b strings.Builder
	if v < 0 && n != 0 {
		b.WriteByte('-')
	}
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String()
}

// signedPercent renders a trend as "+4.2%" or "-3.0%"
func signedPercent(v float64) string {
	s := fixed(v, 1)
	if v > 0 && s != "0.0" {
		s = "+" + s
	}
	return s + "%"
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// percentChange compares current against a baseline, 0 when the baseline is not positive
func percentChange(current, baseline float64) float64 {
	if baseline > 0 {
		return (current - baseline) / baseline * 100
	}
	return 0
}
