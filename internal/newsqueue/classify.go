package newsqueue

import "strings"

var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryFinancial, []string{"revenue", "earnings", "profit", "funding", "investment", "ipo", "valuation", "quarterly", "acquisition", "acquire", "stock"}},
	{CategoryProduct, []string{"launch", "product", "release", "feature", "update", "platform", "beta"}},
	{CategoryPartnership, []string{"partnership", "partner", "collaboration", "alliance", "joint venture"}},
	{CategoryLeadership, []string{"ceo", "cto", "cfo", "appoint", "hire", "executive", "resign"}},
	{CategoryLegal, []string{"lawsuit", "regulator", "settlement", "antitrust", "penalty", "investigation"}},
}

var impactKeywords = []struct {
	impact   Impact
	keywords []string
}{
	{ImpactHigh, []string{"acquisition", "merger", "ipo", "bankruptcy", "lawsuit", "layoffs", "breaking", "record"}},
	{ImpactMedium, []string{"launch", "partnership", "funding", "expansion", "hire", "earnings", "growth"}},
}

// CategorizeNews classifies an item. An explicit known category wins,
// otherwise the first keyword set found in the title or content decides.
func CategorizeNews(item Item) Category {
	explicit := Category(strings.ToLower(strings.TrimSpace(item.Category)))
	for _, c := range categoryKeywords {
		if c.category == explicit {
			return explicit
		}
	}
	if explicit == CategoryGeneral {
		return CategoryGeneral
	}

	text := strings.ToLower(item.Title + " " + item.Content)
	for _, c := range categoryKeywords {
		if containsAny(text, c.keywords) {
			return c.category
		}
	}
	return CategoryGeneral
}

// CalculateNewsImpact estimates the impact level of an item from its text.
func CalculateNewsImpact(item Item) Impact {
	text := strings.ToLower(item.Title + " " + item.Content)
	for _, i := range impactKeywords {
		if containsAny(text, i.keywords) {
			return i.impact
		}
	}
	return ImpactLow
}
