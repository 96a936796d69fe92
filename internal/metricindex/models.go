package metricindex

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MetricType names one of the indexed financial metrics.
type MetricType string

// Indexed metric types.
const (
	// Revenue is reported quarterly revenue.
	Revenue MetricType = "revenue"
	// MarketCap is market capitalisation at the end of the quarter.
	MarketCap MetricType = "market_cap"
	// NetProfit is quarterly net profit; it may be negative.
	NetProfit MetricType = "net_profit"
)

// AllMetricTypes lists the indexed metrics in their canonical order.
var AllMetricTypes = []MetricType{Revenue, MarketCap, NetProfit}

// ParseMetricType resolves user input such as "marketCap" or "net-profit".
func ParseMetricType(s string) (MetricType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	switch key {
	case "revenue":
		return Revenue, nil
	case "marketcap", "mcap":
		return MarketCap, nil
	case "netprofit", "profit":
		return NetProfit, nil
	}
	return "", fmt.Errorf("metricindex: unknown metric type %q", s)
}

// Period identifies a reporting quarter.
type Period struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"`
}

// Before reports whether p precedes other.
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Quarter < other.Quarter
}

// String formats the period as "2025Q1".
func (p Period) String() string {
	return fmt.Sprintf("%dQ%d", p.Year, p.Quarter)
}

// Node is the value projection of an index entry returned by every query.
type Node struct {
	Value     float64    `json:"value"`
	CompanyID string     `json:"company_id"`
	Period    Period     `json:"period"`
	Type      MetricType `json:"metric_type"`
}

// Company is a tracked competitor as supplied by the data layer.
type Company struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Category string `json:"category,omitempty"`
	Type     string `json:"type,omitempty"`
	LogoURL  string `json:"logo_url,omitempty"`
}

// MetricRecord is one reported value for a (company, period, metric type).
type MetricRecord struct {
	CompanyID     string          `json:"company_id" validate:"required"`
	PeriodYear    int             `json:"period_year" validate:"required,gt=0"`
	PeriodQuarter int             `json:"period_quarter" validate:"min=1,max=4"`
	Type          MetricType      `json:"metric_type" validate:"oneof=revenue market_cap net_profit"`
	Value         decimal.Decimal `json:"value"`
}

// Period returns the reporting period of the record.
func (r MetricRecord) Period() Period {
	return Period{Year: r.PeriodYear, Quarter: r.PeriodQuarter}
}
