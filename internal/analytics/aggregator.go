package analytics

import (
	"math"
	"strings"

	"cintel/internal/metricindex"
	"cintel/internal/ranking"
)

// DefaultSearchLimit caps AdvancedSearch when no limit is requested.
const DefaultSearchLimit = 50

// Options tunes the summary statistics.
type Options struct {
	// MarketCapBuckets are ascending boundaries; n boundaries yield n+1 buckets.
	MarketCapBuckets []float64
	BillionThreshold float64
}

// DefaultOptions returns the fixed dashboard boundaries.
func DefaultOptions() Options {
	return Options{
		MarketCapBuckets: []float64{1e9, 1e10, 1e11},
		BillionThreshold: 1e9,
	}
}

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Filters drives AdvancedSearch.
type Filters struct {
	RevenueRange   *Range
	MarketCapRange *Range
	Category       string
	SortBy         metricindex.MetricType
	Direction      ranking.Direction
	Limit          int
}

// Bucket is one market-cap distribution bin covering [Min, Max).
// Max is nil for the open-ended top bucket.
type Bucket struct {
	Label string   `json:"label"`
	Min   float64  `json:"min"`
	Max   *float64 `json:"max,omitempty"`
	Count int      `json:"count"`
}

// Summary is the dashboard overview computed over a snapshot.
type Summary struct {
	TotalCompanies        int                       `json:"total_companies"`
	AverageRevenue        float64                   `json:"average_revenue"`
	AverageMarketCap      float64                   `json:"average_market_cap"`
	TopPerformer          *ranking.CompanyAggregate `json:"top_performer,omitempty"`
	CompaniesAboveBillion int                       `json:"companies_above_billion"`
	MarketCapDistribution []Bucket                  `json:"market_cap_distribution"`
}

// Aggregator composes metric index queries into dashboard views.
type Aggregator struct {
	set  *metricindex.Set
	opts Options
}

// NewAggregator wraps a built index set. Zero options select DefaultOptions;
// an explicit zero BillionThreshold is kept.
func NewAggregator(set *metricindex.Set, opts Options) *Aggregator {
	if opts.MarketCapBuckets == nil && opts.BillionThreshold == 0 {
		opts = DefaultOptions()
	}
	if len(opts.MarketCapBuckets) == 0 {
		opts.MarketCapBuckets = DefaultOptions().MarketCapBuckets
	}
	return &Aggregator{set: set, opts: opts}
}

// TopPerformers ranks the largest values of one metric. Every row carries the
// latest values of the other metrics for the same company.
func (a *Aggregator) TopPerformers(mt metricindex.MetricType, limit int) []ranking.CompanyAggregate {
	tree := a.set.Index(mt)
	if tree == nil {
		return []ranking.CompanyAggregate{}
	}

	nodes := tree.TopK(limit)
	out := make([]ranking.CompanyAggregate, 0, len(nodes))
	for _, n := range nodes {
		agg, ok := a.aggregate(n.CompanyID)
		if !ok {
			continue
		}
		setMetric(&agg, mt, n.Value)
		out = append(out, agg)
	}
	return ranking.AssignDenseRanks(out)
}

// AdvancedSearch screens companies by metric ranges and category, then ranks them.
func (a *Aggregator) AdvancedSearch(f Filters) []ranking.CompanyAggregate {
	var candidates []string
	switch {
	case f.RevenueRange != nil && f.MarketCapRange != nil:
		byCap := make(map[string]struct{})
		for _, id := range companyIDs(a.set.Index(metricindex.MarketCap).FindInRange(f.MarketCapRange.Min, f.MarketCapRange.Max)) {
			byCap[id] = struct{}{}
		}
		for _, id := range companyIDs(a.set.Index(metricindex.Revenue).FindInRange(f.RevenueRange.Min, f.RevenueRange.Max)) {
			if _, ok := byCap[id]; ok {
				candidates = append(candidates, id)
			}
		}
	case f.RevenueRange != nil:
		candidates = companyIDs(a.set.Index(metricindex.Revenue).FindInRange(f.RevenueRange.Min, f.RevenueRange.Max))
	case f.MarketCapRange != nil:
		candidates = companyIDs(a.set.Index(metricindex.MarketCap).FindInRange(f.MarketCapRange.Min, f.MarketCapRange.Max))
	default:
		candidates = companyIDs(a.set.Index(metricindex.Revenue).SortedNodes())
	}

	category := strings.TrimSpace(f.Category)
	list := make([]ranking.CompanyAggregate, 0, len(candidates))
	for _, id := range candidates {
		agg, ok := a.aggregate(id)
		if !ok {
			continue
		}
		if category != "" && !strings.EqualFold(agg.Category, category) {
			continue
		}
		list = append(list, agg)
	}

	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = metricindex.Revenue
	}
	dir := f.Direction
	if dir == "" {
		dir = ranking.Desc
	}
	ranked := ranking.AssignDenseRanks(ranking.SortAggregates(list, sortBy, dir))

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// CompaniesAboveThreshold returns the metric nodes strictly above threshold.
func (a *Aggregator) CompaniesAboveThreshold(mt metricindex.MetricType, threshold float64) []metricindex.Node {
	tree := a.set.Index(mt)
	if tree == nil {
		return []metricindex.Node{}
	}
	return tree.FindAboveThreshold(threshold)
}

// Summary computes the dashboard overview.
func (a *Aggregator) Summary() Summary {
	revenue := a.set.Index(metricindex.Revenue).SortedNodes()
	caps := a.set.Index(metricindex.MarketCap).SortedNodes()

	s := Summary{
		TotalCompanies:        a.set.NumCompanies(),
		AverageRevenue:        mean(revenue),
		AverageMarketCap:      mean(caps),
		MarketCapDistribution: a.buckets(caps),
	}

	if top := a.TopPerformers(metricindex.Revenue, 1); len(top) > 0 {
		s.TopPerformer = &top[0]
	}

	above := make(map[string]struct{})
	for _, n := range a.set.Index(metricindex.Revenue).FindAboveThreshold(a.opts.BillionThreshold) {
		above[n.CompanyID] = struct{}{}
	}
	s.CompaniesAboveBillion = len(above)

	return s
}

func (a *Aggregator) buckets(nodes []metricindex.Node) []Bucket {
	bounds := a.opts.MarketCapBuckets
	out := make([]Bucket, 0, len(bounds)+1)
	lower := 0.0
	for _, b := range bounds {
		upper := b
		out = append(out, Bucket{Label: bucketLabel(lower, upper), Min: lower, Max: &upper})
		lower = b
	}
	out = append(out, Bucket{Label: bucketLabel(lower, math.Inf(1)), Min: lower})

	for _, n := range nodes {
		idx := len(bounds)
		for i, b := range bounds {
			if n.Value < b {
				idx = i
				break
			}
		}
		out[idx].Count++
	}
	return out
}

func (a *Aggregator) aggregate(companyID string) (ranking.CompanyAggregate, bool) {
	c, ok := a.set.Company(companyID)
	if !ok {
		return ranking.CompanyAggregate{}, false
	}
	agg := ranking.CompanyAggregate{
		CompanyID:   c.ID,
		CompanyName: c.Name,
		Category:    c.Category,
	}
	for _, mt := range metricindex.AllMetricTypes {
		if v, ok := a.set.Latest(companyID, mt); ok {
			setMetric(&agg, mt, v)
		}
	}
	return agg, true
}

func setMetric(agg *ranking.CompanyAggregate, mt metricindex.MetricType, v float64) {
	switch mt {
	case metricindex.Revenue:
		agg.Revenue = v
	case metricindex.MarketCap:
		agg.MarketCap = v
	case metricindex.NetProfit:
		agg.NetProfit = v
	}
}

// companyIDs dedupes company ids preserving first occurrence.
func companyIDs(nodes []metricindex.Node) []string {
	seen := make(map[string]struct{}, len(nodes))
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if _, ok := seen[n.CompanyID]; ok {
			continue
		}
		seen[n.CompanyID] = struct{}{}
		out = append(out, n.CompanyID)
	}
	return out
}

func mean(nodes []metricindex.Node) float64 {
	if len(nodes) == 0 {
		return 0
	}
	var total float64
	for _, n := range nodes {
		total += n.Value
	}
	return total / float64(len(nodes))
}
