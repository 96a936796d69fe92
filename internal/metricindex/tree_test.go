package metricindex

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var q1 = Period{Year: 2025, Quarter: 1}

func buildTree(values ...float64) *Tree {
	t := &Tree{}
	for i, v := range values {
		t.Insert(v, string(rune('a'+i)), q1, Revenue)
	}
	return t
}

func values(nodes []Node) []float64 {
	out := make([]float64, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Value)
	}
	return out
}

func TestSortedNodesAscending(t *testing.T) {
	tree := buildTree(50, 20, 80, 10, 30)

	assert.Equal(t, []float64{10, 20, 30, 50, 80}, values(tree.SortedNodes()))
	assert.Equal(t, 5, tree.Len())
}

func TestEmptyTree(t *testing.T) {
	var tree Tree

	assert.Empty(t, tree.SortedNodes())
	assert.Empty(t, tree.FindInRange(0, 100))
	assert.Empty(t, tree.TopK(3))
	assert.Empty(t, tree.FindAboveThreshold(-1))
	assert.NotNil(t, tree.FindInRange(0, 100))
}

func TestFindInRange(t *testing.T) {
	tree := buildTree(50, 20, 80, 10, 30, 50, 80, -5)

	tests := []struct {
		name     string
		min, max float64
		want     []float64
	}{
		{name: "inclusive bounds", min: 20, max: 50, want: []float64{20, 30, 50, 50}},
		{name: "duplicates at max", min: 80, max: 80, want: []float64{80, 80}},
		{name: "negative values", min: -10, max: 0, want: []float64{-5}},
		{name: "no match", min: 81, max: 1000, want: []float64{}},
		{name: "inverted range", min: 10, max: 5, want: []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := values(tree.FindInRange(tt.min, tt.max))
			sort.Float64s(got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindInRangeMatchesFilter(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tree := &Tree{}
	for i := 0; i < 500; i++ {
		tree.Insert(float64(rng.Intn(200)-50), "c", q1, MarketCap)
	}

	for i := 0; i < 50; i++ {
		lo := float64(rng.Intn(200) - 50)
		hi := lo + float64(rng.Intn(60))

		var want []float64
		for _, n := range tree.SortedNodes() {
			if n.Value >= lo && n.Value <= hi {
				want = append(want, n.Value)
			}
		}
		got := values(tree.FindInRange(lo, hi))
		sort.Float64s(got)
		require.Equal(t, len(want), len(got), "range [%v,%v]", lo, hi)
		if len(want) > 0 {
			assert.Equal(t, want, got)
		}
	}
}

func TestTopK(t *testing.T) {
	tree := buildTree(50, 20, 80, 10, 30)

	assert.Equal(t, []float64{80, 50, 30}, values(tree.TopK(3)))
	assert.Equal(t, []float64{80, 50, 30, 20, 10}, values(tree.TopK(10)))
	assert.Empty(t, tree.TopK(0))
	assert.Empty(t, tree.TopK(-2))
}

func TestFindAboveThresholdIsStrict(t *testing.T) {
	tree := buildTree(1e9, 5e8, 2e9, 1e9, 3e10)

	got := values(tree.FindAboveThreshold(1e9))
	sort.Float64s(got)
	assert.Equal(t, []float64{2e9, 3e10}, got)
}

func TestSortedInsertionDegradesButStaysCorrect(t *testing.T) {
	tree := &Tree{}
	for i := 0; i < 1000; i++ {
		tree.Insert(float64(i), "c", q1, NetProfit)
	}

	top := tree.TopK(2)
	require.Len(t, top, 2)
	assert.Equal(t, 999.0, top[0].Value)
	assert.Len(t, tree.FindAboveThreshold(989), 10)
}

func TestQueryResultsAreCopies(t *testing.T) {
	tree := buildTree(10, 20)

	nodes := tree.SortedNodes()
	nodes[0].Value = 999

	assert.Equal(t, []float64{10, 20}, values(tree.SortedNodes()))
}
