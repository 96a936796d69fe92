package metricindex

import (
	"errors"
	"fmt"
)

// Set owns one Tree per metric type together with the company directory of
// the snapshot it was built from. A Set is never modified after Build.
type Set struct {
	trees     map[MetricType]*Tree
	companies map[string]Company
	order     []string
	latest    map[string]map[MetricType]latestValue
	records   int
}

type latestValue struct {
	period Period
	value  float64
}

// Build constructs a Set from a full snapshot. Records must reference a known
// metric type; company references are resolved lazily at query time.
func Build(companies []Company, records []MetricRecord) (*Set, error) {
	s := &Set{
		trees:     make(map[MetricType]*Tree, len(AllMetricTypes)),
		companies: make(map[string]Company, len(companies)),
		order:     make([]string, 0, len(companies)),
		latest:    make(map[string]map[MetricType]latestValue),
	}
	for _, mt := range AllMetricTypes {
		s.trees[mt] = &Tree{}
	}

	for _, c := range companies {
		if c.ID == "" {
			return nil, errors.New("metricindex: company without id")
		}
		if _, ok := s.companies[c.ID]; !ok {
			s.order = append(s.order, c.ID)
		}
		s.companies[c.ID] = c
	}

	for i, r := range records {
		tree, ok := s.trees[r.Type]
		if !ok {
			return nil, fmt.Errorf("metricindex: record %d: unknown metric type %q", i, r.Type)
		}
		value := r.Value.InexactFloat64()
		period := r.Period()
		tree.Insert(value, r.CompanyID, period, r.Type)
		s.records++

		byType, ok := s.latest[r.CompanyID]
		if !ok {
			byType = make(map[MetricType]latestValue, len(AllMetricTypes))
			s.latest[r.CompanyID] = byType
		}
		// later records for the same period replace earlier ones
		if cur, ok := byType[r.Type]; !ok || !period.Before(cur.period) {
			byType[r.Type] = latestValue{period: period, value: value}
		}
	}

	return s, nil
}

// Index returns the tree for the metric type, or nil for an unknown type.
func (s *Set) Index(mt MetricType) *Tree {
	return s.trees[mt]
}

// Company resolves a company id.
func (s *Set) Company(id string) (Company, bool) {
	c, ok := s.companies[id]
	return c, ok
}

// NumCompanies returns the number of distinct companies in the snapshot.
func (s *Set) NumCompanies() int { return len(s.order) }

// NumRecords returns the number of indexed metric records.
func (s *Set) NumRecords() int { return s.records }

// Latest returns the value of the most recent period reported for the company.
func (s *Set) Latest(companyID string, mt MetricType) (float64, bool) {
	v, ok := s.latest[companyID][mt]
	return v.value, ok
}
