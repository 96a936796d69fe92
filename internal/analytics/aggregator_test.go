package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cintel/internal/metricindex"
	"cintel/internal/ranking"
)

func rec(id string, year, quarter int, mt metricindex.MetricType, value float64) metricindex.MetricRecord {
	return metricindex.MetricRecord{
		CompanyID:     id,
		PeriodYear:    year,
		PeriodQuarter: quarter,
		Type:          mt,
		Value:         decimal.NewFromFloat(value),
	}
}

func fixture(t *testing.T) *Aggregator {
	t.Helper()
	companies := []metricindex.Company{
		{ID: "acme", Name: "Acme Corp", Category: "saas"},
		{ID: "beta", Name: "Beta Inc", Category: "fintech"},
		{ID: "gamma", Name: "Gamma", Category: "saas"},
		{ID: "delta", Name: "Delta", Category: "hardware"},
	}
	records := []metricindex.MetricRecord{
		rec("acme", 2024, 4, metricindex.Revenue, 4e9),
		rec("acme", 2025, 1, metricindex.Revenue, 5e9),
		rec("acme", 2025, 1, metricindex.MarketCap, 2e11),
		rec("acme", 2025, 1, metricindex.NetProfit, 6e8),
		rec("beta", 2025, 1, metricindex.Revenue, 9e8),
		rec("beta", 2025, 1, metricindex.MarketCap, 5e9),
		rec("beta", 2025, 1, metricindex.NetProfit, -1e8),
		rec("gamma", 2025, 1, metricindex.Revenue, 1e9),
		rec("gamma", 2025, 1, metricindex.MarketCap, 5e10),
		rec("delta", 2025, 1, metricindex.Revenue, 9e8),
		rec("delta", 2025, 1, metricindex.MarketCap, 4e8),
	}
	set, err := metricindex.Build(companies, records)
	require.NoError(t, err)
	return NewAggregator(set, DefaultOptions())
}

func names(list []ranking.CompanyAggregate) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.CompanyID)
	}
	return out
}

func TestTopPerformersCarryOtherMetrics(t *testing.T) {
	agg := fixture(t)

	top := agg.TopPerformers(metricindex.Revenue, 2)
	require.Len(t, top, 2)

	assert.Equal(t, "acme", top[0].CompanyID)
	assert.Equal(t, 5e9, top[0].Revenue)
	assert.Equal(t, 2e11, top[0].MarketCap)
	assert.Equal(t, 6e8, top[0].NetProfit)
	assert.Equal(t, 1, top[0].Rank)

	// the older acme period is still an index entry of its own
	assert.Equal(t, "acme", top[1].CompanyID)
	assert.Equal(t, 4e9, top[1].Revenue)
	assert.Equal(t, 2, top[1].Rank)
}

func TestTopPerformersSkipsUnknownCompanies(t *testing.T) {
	set, err := metricindex.Build(
		[]metricindex.Company{{ID: "acme", Name: "Acme"}},
		[]metricindex.MetricRecord{
			rec("acme", 2025, 1, metricindex.Revenue, 10),
			rec("ghost", 2025, 1, metricindex.Revenue, 99),
		},
	)
	require.NoError(t, err)
	agg := NewAggregator(set, DefaultOptions())

	top := agg.TopPerformers(metricindex.Revenue, 2)

	require.Len(t, top, 1)
	assert.Equal(t, "acme", top[0].CompanyID)
	assert.Equal(t, 1, top[0].Rank)
	assert.Empty(t, agg.TopPerformers(metricindex.MetricType("ebitda"), 3))
}

func TestAdvancedSearchRevenueRange(t *testing.T) {
	agg := fixture(t)

	got := agg.AdvancedSearch(Filters{
		RevenueRange: &Range{Min: 9e8, Max: 1e9},
		SortBy:       metricindex.MarketCap,
		Direction:    ranking.Desc,
	})

	assert.Equal(t, []string{"gamma", "beta", "delta"}, names(got))
	for i, a := range got {
		assert.Equal(t, i+1, a.Rank)
	}
}

func TestAdvancedSearchIntersectsRanges(t *testing.T) {
	agg := fixture(t)

	got := agg.AdvancedSearch(Filters{
		RevenueRange:   &Range{Min: 0, Max: 2e9},
		MarketCapRange: &Range{Min: 1e9, Max: 1e11},
	})

	assert.ElementsMatch(t, []string{"beta", "gamma"}, names(got))
}

func TestAdvancedSearchCategoryAndLimit(t *testing.T) {
	agg := fixture(t)

	got := agg.AdvancedSearch(Filters{Category: "SaaS", Limit: 1})

	require.Len(t, got, 1)
	assert.Equal(t, "acme", got[0].CompanyID)
}

func TestAdvancedSearchWithoutRangesUsesFullSet(t *testing.T) {
	agg := fixture(t)

	got := agg.AdvancedSearch(Filters{SortBy: metricindex.Revenue, Direction: ranking.Asc})

	// beta and delta tie; the ascending revenue index yields beta first
	assert.Equal(t, []string{"beta", "delta", "gamma", "acme"}, names(got))
}

func TestAdvancedSearchRanksAreDeterministic(t *testing.T) {
	agg := fixture(t)
	f := Filters{MarketCapRange: &Range{Min: 0, Max: 1e12}, SortBy: metricindex.NetProfit}

	assert.Equal(t, agg.AdvancedSearch(f), agg.AdvancedSearch(f))
}

func TestCompaniesAboveThreshold(t *testing.T) {
	agg := fixture(t)

	nodes := agg.CompaniesAboveThreshold(metricindex.Revenue, 1e9)

	var ids []string
	for _, n := range nodes {
		ids = append(ids, n.CompanyID)
	}
	assert.ElementsMatch(t, []string{"acme", "acme"}, ids)
}

func TestSummary(t *testing.T) {
	agg := fixture(t)

	s := agg.Summary()

	assert.Equal(t, 4, s.TotalCompanies)
	assert.InDelta(t, (4e9+5e9+9e8+1e9+9e8)/5, s.AverageRevenue, 1)
	assert.InDelta(t, (2e11+5e9+5e10+4e8)/4, s.AverageMarketCap, 1)
	require.NotNil(t, s.TopPerformer)
	assert.Equal(t, "acme", s.TopPerformer.CompanyID)
	// gamma reports exactly 1e9 and is not above the threshold
	assert.Equal(t, 1, s.CompaniesAboveBillion)

	require.Len(t, s.MarketCapDistribution, 4)
	labels := make([]string, 0, 4)
	for _, b := range s.MarketCapDistribution {
		labels = append(labels, b.Label)
		assert.Equal(t, 1, b.Count, b.Label)
	}
	assert.Equal(t, []string{"0-1B", "1B-10B", "10B-100B", "100B+"}, labels)
	assert.Nil(t, s.MarketCapDistribution[3].Max)
}

func TestSummaryCountsEveryPeriod(t *testing.T) {
	set, err := metricindex.Build(
		[]metricindex.Company{{ID: "acme", Name: "Acme"}},
		[]metricindex.MetricRecord{
			rec("acme", 2024, 4, metricindex.MarketCap, 9e9),
			rec("acme", 2025, 1, metricindex.MarketCap, 2e10),
			rec("acme", 2025, 1, metricindex.Revenue, 2e9),
			rec("acme", 2025, 2, metricindex.Revenue, 3e9),
		},
	)
	require.NoError(t, err)

	s := NewAggregator(set, Options{}).Summary()

	assert.Equal(t, 1, s.TotalCompanies)
	assert.Equal(t, 1, s.CompaniesAboveBillion)
	assert.InDelta(t, 2.5e9, s.AverageRevenue, 1)
	assert.Equal(t, 1, s.MarketCapDistribution[1].Count)
	assert.Equal(t, 1, s.MarketCapDistribution[2].Count)
}

func TestSummaryEmptySnapshot(t *testing.T) {
	set, err := metricindex.Build(nil, nil)
	require.NoError(t, err)

	s := NewAggregator(set, DefaultOptions()).Summary()

	assert.Zero(t, s.TotalCompanies)
	assert.Zero(t, s.AverageRevenue)
	assert.Nil(t, s.TopPerformer)
	assert.Len(t, s.MarketCapDistribution, 4)
}

func TestCustomBuckets(t *testing.T) {
	set, err := metricindex.Build(
		[]metricindex.Company{{ID: "a", Name: "A"}},
		[]metricindex.MetricRecord{
			rec("a", 2025, 1, metricindex.MarketCap, -5),
			rec("a", 2025, 2, metricindex.MarketCap, 5e6),
		},
	)
	require.NoError(t, err)

	s := NewAggregator(set, Options{MarketCapBuckets: []float64{1e6}}).Summary()

	require.Len(t, s.MarketCapDistribution, 2)
	assert.Equal(t, "0-1M", s.MarketCapDistribution[0].Label)
	assert.Equal(t, 1, s.MarketCapDistribution[0].Count)
	assert.Equal(t, 1, s.MarketCapDistribution[1].Count)
}

func TestZeroBillionThresholdIsKept(t *testing.T) {
	set, err := metricindex.Build(
		[]metricindex.Company{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}},
		[]metricindex.MetricRecord{
			rec("a", 2025, 1, metricindex.Revenue, 5e6),
			rec("b", 2025, 1, metricindex.Revenue, -1e6),
		},
	)
	require.NoError(t, err)

	s := NewAggregator(set, Options{MarketCapBuckets: []float64{1e9}, BillionThreshold: 0}).Summary()

	assert.Equal(t, 1, s.CompaniesAboveBillion)
}
