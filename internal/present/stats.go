package present

import (
	"math"
	"sort"

	"oandarates/internal/domain"
)

// HistoryStats summarizes an instrument's rate history. Non-numeric
// records are skipped, matching the display pipeline.
type HistoryStats struct {
	Count       int     `json:"count"`
	MeanLong    float64 `json:"mean_long_rate"`
	MedianLong  float64 `json:"median_long_rate"`
	StdDevLong  float64 `json:"std_dev_long_rate"`
	MeanShort   float64 `json:"mean_short_rate"`
	MedianShort float64 `json:"median_short_rate"`
	StdDevShort float64 `json:"std_dev_short_rate"`
}

func computeStats(points []domain.HistoryPoint) HistoryStats {
	longs := make([]float64, 0, len(points))
	shorts := make([]float64, 0, len(points))
	for _, pt := range points {
		if v, ok := pt.LongRate.Float64(); ok {
			longs = append(longs, v)
		}
		if v, ok := pt.ShortRate.Float64(); ok {
			shorts = append(shorts, v)
		}
	}

	return HistoryStats{
		Count:       len(points),
		MeanLong:    mean(longs),
		MedianLong:  median(longs),
		StdDevLong:  stdDev(longs),
		MeanShort:   mean(shorts),
		MedianShort: median(shorts),
		StdDevShort: stdDev(shorts),
	}
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

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// stdDev is the sample standard deviation (n-1 denominator).
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
