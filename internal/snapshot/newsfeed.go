package snapshot

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"cintel/internal/newsqueue"
)

// NewsFeed buffers streamed news items until the engine drains them.
type NewsFeed struct {
	mu    sync.Mutex
	items []newsqueue.Item
	now   func() time.Time
}

// NewNewsFeed constructs an empty feed.
func NewNewsFeed() *NewsFeed {
	return &NewsFeed{now: time.Now}
}

// Add buffers an item, generating an id and date when missing. An item with
// an id already buffered replaces the earlier copy.
func (f *NewsFeed) Add(item newsqueue.Item) (newsqueue.Item, error) {
	if err := validate.Struct(item); err != nil {
		return newsqueue.Item{}, fmt.Errorf("%w: news item: %v", ErrInvalidInput, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Date.IsZero() {
		item.Date = f.now().UTC()
	}

	for idx := range f.items {
		if f.items[idx].ID == item.ID {
			f.items[idx] = item
			return item, nil
		}
	}
	f.items = append(f.items, item)
	return item, nil
}

// Len returns the number of buffered items.
func (f *NewsFeed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// Drain returns and clears the buffered items in arrival order.
func (f *NewsFeed) Drain() []newsqueue.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.items
	f.items = nil
	return out
}

// PruneOlderThan drops buffered items dated before ts and returns how many were removed.
func (f *NewsFeed) PruneOlderThan(ts time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	filtered := f.items[:0]
	removed := 0
	for _, item := range f.items {
		if item.Date.Before(ts) {
			removed++
			continue
		}
		filtered = append(filtered, item)
	}
	f.items = filtered
	return removed
}

// LoadNewsFile decodes a JSON array of news items ordered by publication date.
func LoadNewsFile(path string) ([]newsqueue.Item, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read news file %s: %w", path, err)
	}
	items, err := decodeNewsItems(raw)
	if err != nil {
		return nil, fmt.Errorf("decode news file %s: %w", path, err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.Before(items[j].Date)
	})
	return items, nil
}
