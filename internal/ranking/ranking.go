package ranking

import (
	"fmt"
	"strings"

	"cintel/internal/metricindex"
)

// Direction selects ascending or descending order.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts "asc" or "desc"; an empty string means Desc.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc":
		return Desc, nil
	case "asc":
		return Asc, nil
	}
	return "", fmt.Errorf("ranking: unknown direction %q", s)
}

// CompanyAggregate is a per-query view of one company and its latest metrics.
type CompanyAggregate struct {
	CompanyID   string  `json:"company_id"`
	CompanyName string  `json:"company_name"`
	Category    string  `json:"category,omitempty"`
	Revenue     float64 `json:"revenue"`
	MarketCap   float64 `json:"market_cap"`
	NetProfit   float64 `json:"net_profit"`
	Rank        int     `json:"rank"`
}

// Metric returns the aggregate's value for the metric type.
func (a CompanyAggregate) Metric(mt metricindex.MetricType) float64 {
	switch mt {
	case metricindex.MarketCap:
		return a.MarketCap
	case metricindex.NetProfit:
		return a.NetProfit
	default:
		return a.Revenue
	}
}

// MergeSort returns a stably sorted copy of items ordered by key.
// Elements with equal keys keep their input order in both directions.
func MergeSort[T any](items []T, key func(T) float64, dir Direction) []T {
	out := make([]T, len(items))
	copy(out, items)
	if len(out) < 2 {
		return out
	}

	before := func(a, b T) bool {
		if dir == Asc {
			return key(a) <= key(b)
		}
		return key(a) >= key(b)
	}

	buf := make([]T, len(out))
	mergeSort(out, buf, before)
	return out
}

func mergeSort[T any](items, buf []T, before func(a, b T) bool) {
	if len(items) < 2 {
		return
	}
	mid := len(items) / 2
	mergeSort(items[:mid], buf[:mid], before)
	mergeSort(items[mid:], buf[mid:], before)

	copy(buf, items)
	left, right := buf[:mid], buf[mid:len(items)]
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		// taking from the left on ties keeps the sort stable
		if before(left[i], right[j]) {
			items[k] = left[i]
			i++
		} else {
			items[k] = right[j]
			j++
		}
		k++
	}
	k += copy(items[k:], left[i:])
	copy(items[k:], right[j:])
}

// SortAggregates orders aggregates by the chosen metric.
func SortAggregates(list []CompanyAggregate, key metricindex.MetricType, dir Direction) []CompanyAggregate {
	return MergeSort(list, func(a CompanyAggregate) float64 { return a.Metric(key) }, dir)
}

// AssignDenseRanks returns a copy of list with Rank set to 1..n in slice order.
func AssignDenseRanks(list []CompanyAggregate) []CompanyAggregate {
	out := make([]CompanyAggregate, len(list))
	for i, a := range list {
		a.Rank = i + 1
		out[i] = a
	}
	return out
}
