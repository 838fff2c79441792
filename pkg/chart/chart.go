package chart

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Point is one entry of a chart series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05.000Z"}

func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// GroupCount counts items per key. Empty keys are reported as "Unknown".
func GroupCount[T any](items []T, key func(T) string) []Point {
	counts := map[string]decimal.Decimal{}
	for _, item := range items {
		k := labelOf(key(item))
		counts[k] = counts[k].Add(decimal.NewFromInt(1))
	}
	return sorted(counts)
}

func GroupSum[T any](items []T, key func(T) string, value func(T) float64) []Point {
	sums := map[string]decimal.Decimal{}
	for _, item := range items {
		k := labelOf(key(item))
		sums[k] = sums[k].Add(decimal.NewFromFloat(value(item)))
	}
	return sorted(sums)
}

// Monthly sums value per YYYY-MM bucket. Items with unparsable dates are skipped.
func Monthly[T any](items []T, date func(T) string, value func(T) float64) []Point {
	sums := map[string]decimal.Decimal{}
	for _, item := range items {
		t, ok := ParseDate(date(item))
		if !ok {
			continue
		}
		k := t.Format("2006-01")
		sums[k] = sums[k].Add(decimal.NewFromFloat(value(item)))
	}
	return sorted(sums)
}

// MonthlyAverage averages value per YYYY-MM bucket.
func MonthlyAverage[T any](items []T, date func(T) string, value func(T) float64) []Point {
	buckets := map[string][]float64{}
	for _, item := range items {
		t, ok := ParseDate(date(item))
		if !ok {
			continue
		}
		k := t.Format("2006-01")
		buckets[k] = append(buckets[k], value(item))
	}

	avgs := make(map[string]decimal.Decimal, len(buckets))
	for k, vs := range buckets {
		avgs[k] = decimal.NewFromFloat(Average(vs))
	}
	return sorted(avgs)
}

func Sum[T any](items []T, value func(T) float64) float64 {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(value(item)))
	}
	return total.Round(2).InexactFloat64()
}

// Average is the mean of values rounded to two places; zero for no values.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.Div(decimal.NewFromInt(int64(len(values)))).Round(2).InexactFloat64()
}

// Percent returns part/whole as a percentage rounded to two places.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(whole))).
		Round(2).InexactFloat64()
}

// Lookup returns the value for label in points, or zero.
func Lookup(points []Point, label string) float64 {
	for _, p := range points {
		if p.Label == label {
			return p.Value
		}
	}
	return 0
}

func labelOf(k string) string {
	if strings.TrimSpace(k) == "" {
		return "Unknown"
	}
	return k
}

func sorted(m map[string]decimal.Decimal) []Point {
	points := make([]Point, 0, len(m))
	for k, v := range m {
		points = append(points, Point{Label: k, Value: v.Round(2).InexactFloat64()})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Label < points[j].Label })
	return points
}
