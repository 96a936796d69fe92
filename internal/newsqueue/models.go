package newsqueue

import "time"

// Item is a news or report entry about a tracked company.
type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title" validate:"required"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
	Category  string    `json:"category,omitempty"`
	Source    string    `json:"source,omitempty"`
	URL       string    `json:"url,omitempty"`
	CompanyID string    `json:"company_id,omitempty"`
}

// Entry is a queued item together with the score it was enqueued with.
type Entry struct {
	Item         Item    `json:"item"`
	Priority     float64 `json:"priority"`
	RecencyScore float64 `json:"recency_score"`
}

// Category is a coarse news classification.
type Category string

// Known news categories; anything unrecognised is CategoryGeneral.
const (
	CategoryFinancial   Category = "financial"
	CategoryProduct     Category = "product"
	CategoryPartnership Category = "partnership"
	CategoryLeadership  Category = "leadership"
	CategoryLegal       Category = "legal"
	CategoryGeneral     Category = "general"
)

// Impact estimates how much an item matters to competitive positioning.
type Impact string

// Impact levels.
const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)
