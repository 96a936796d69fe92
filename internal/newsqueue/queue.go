package newsqueue

import (
	"math"
	"slices"
	"sort"
	"strings"
	"time"
)

const dayMillis = 24 * 60 * 60 * 1000

// Options tunes the composite priority.
type Options struct {
	// DecayWindowDays is the age at which the recency score reaches zero.
	DecayWindowDays float64
	RecencyWeight   float64
	KeywordBoost    float64
	BoostKeywords   []string
	// CategoryLevels maps a category to its priority level; others get 1.
	CategoryLevels map[Category]float64
}

// DefaultOptions returns the standard scoring constants.
func DefaultOptions() Options {
	return Options{
		DecayWindowDays: 100,
		RecencyWeight:   0.4,
		KeywordBoost:    20,
		BoostKeywords:   []string{"breaking", "urgent", "exclusive", "major", "significant"},
		CategoryLevels: map[Category]float64{
			CategoryFinancial: 3,
			CategoryProduct:   2,
		},
	}
}

// Queue keeps news entries ordered by descending priority. Entries with equal
// priority keep their insertion order. Queue is not safe for concurrent use.
type Queue struct {
	opts    Options
	entries []Entry

	// Now is the clock used for recency; defaults to time.Now.
	Now func() time.Time
}

// New returns an empty queue. A zero Options value selects DefaultOptions;
// otherwise fields are used as given, so a zero weight or boost disables that
// term. A non-positive decay window falls back to the default.
func New(opts Options) *Queue {
	if opts.isZero() {
		opts = DefaultOptions()
	}
	if opts.DecayWindowDays <= 0 {
		opts.DecayWindowDays = DefaultOptions().DecayWindowDays
	}
	return &Queue{opts: opts, Now: time.Now}
}

func (o Options) isZero() bool {
	return o.DecayWindowDays == 0 && o.RecencyWeight == 0 && o.KeywordBoost == 0 &&
		o.BoostKeywords == nil && o.CategoryLevels == nil
}

// Enqueue scores item and inserts it in priority order. A level of zero or
// less is treated as 1.
func (q *Queue) Enqueue(item Item, priorityLevel float64) Entry {
	if priorityLevel <= 0 {
		priorityLevel = 1
	}

	recency := q.recencyScore(item.Date)
	priority := recency * q.opts.RecencyWeight
	if containsAny(strings.ToLower(item.Title), q.opts.BoostKeywords) ||
		containsAny(strings.ToLower(item.Content), q.opts.BoostKeywords) {
		priority += q.opts.KeywordBoost
	}
	priority *= priorityLevel

	entry := Entry{Item: item, Priority: priority, RecencyScore: recency}
	idx := sort.Search(len(q.entries), func(i int) bool {
		return q.entries[i].Priority < priority
	})
	q.entries = slices.Insert(q.entries, idx, entry)
	return entry
}

// Dequeue removes and returns the highest-priority item.
func (q *Queue) Dequeue() (Item, bool) {
	if len(q.entries) == 0 {
		return Item{}, false
	}
	head := q.entries[0]
	q.entries[0] = Entry{}
	q.entries = q.entries[1:]
	return head.Item, true
}

// Front returns the highest-priority item without removing it.
func (q *Queue) Front() (Item, bool) {
	if len(q.entries) == 0 {
		return Item{}, false
	}
	return q.entries[0].Item, true
}

// Len returns the number of queued items.
func (q *Queue) Len() int { return len(q.entries) }

// SortedItems returns the queued items in priority order.
func (q *Queue) SortedItems() []Item {
	out := make([]Item, 0, len(q.entries))
	for _, e := range q.entries {
		out = append(out, e.Item)
	}
	return out
}

// Entries returns a copy of the queue including scores.
func (q *Queue) Entries() []Entry {
	return slices.Clone(q.entries)
}

// LevelFor returns the priority level of the item's category.
func (q *Queue) LevelFor(item Item) float64 {
	if level, ok := q.opts.CategoryLevels[CategorizeNews(item)]; ok && level > 0 {
		return level
	}
	return 1
}

// SortNewsByPriority ranks a batch of items with category-based levels.
func SortNewsByPriority(items []Item, opts Options) []Item {
	return SortNewsByPriorityAt(items, opts, time.Now())
}

// SortNewsByPriorityAt is SortNewsByPriority with a fixed clock.
func SortNewsByPriorityAt(items []Item, opts Options, now time.Time) []Item {
	q := New(opts)
	q.Now = func() time.Time { return now }
	for _, item := range items {
		q.Enqueue(item, q.LevelFor(item))
	}
	return q.SortedItems()
}

// recencyScore decays linearly from 100 for today to 0 at the window edge.
func (q *Queue) recencyScore(date time.Time) float64 {
	elapsed := q.Now().Sub(date).Milliseconds()
	days := math.Floor(float64(elapsed) / dayMillis)
	score := 100 - days*100/q.opts.DecayWindowDays
	return math.Max(0, math.Min(100, score))
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(text, k) {
			return true
		}
	}
	return false
}
