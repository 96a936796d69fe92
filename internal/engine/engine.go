package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"cintel/internal/analytics"
	"cintel/internal/metricindex"
	"cintel/internal/newsqueue"
	"cintel/internal/ranking"
	"cintel/internal/snapshot"
	"cintel/internal/trie"
)

// ErrNotInitialized is returned by Current before the first build.
var ErrNotInitialized = errors.New("engine: index not initialized")

// State is one immutable generation of indexes built from a single snapshot.
type State struct {
	ID         string
	BuiltAt    time.Time
	Source     string
	Indexes    *metricindex.Set
	Aggregator *analytics.Aggregator
	Trie       *trie.Trie
}

// Options configures an Engine.
type Options struct {
	Analytics analytics.Options
	News      newsqueue.Options
	Logger    *log.Logger
	// Clock drives news recency; defaults to time.Now.
	Clock func() time.Time
}

// Engine owns the current index generation and the news queue. Readers always
// see a fully built State; Refresh builds a new one and swaps it in.
type Engine struct {
	source snapshot.Source
	opts   Options
	logger *log.Logger

	state     atomic.Pointer[State]
	group     singleflight.Group
	refreshMu sync.Mutex

	newsMu sync.Mutex
	news   *newsqueue.Queue
}

// New constructs an Engine reading snapshots from source.
func New(source snapshot.Source, opts Options) (*Engine, error) {
	if source == nil {
		return nil, errors.New("engine requires a snapshot source")
	}
	logger := opts.Logger
	if logger == nil {
		logger = &log.DefaultLogger
	}
	news := newsqueue.New(opts.News)
	if opts.Clock != nil {
		news.Now = opts.Clock
	}
	return &Engine{
		source: source,
		opts:   opts,
		logger: logger,
		news:   news,
	}, nil
}

// Current returns the latest state without building.
func (e *Engine) Current() (*State, error) {
	if st := e.state.Load(); st != nil {
		return st, nil
	}
	return nil, ErrNotInitialized
}

// State returns the current state, building it on first use. Concurrent first
// callers share a single build; a caller whose ctx ends stops waiting while the
// build carries on for the others.
func (e *Engine) State(ctx context.Context) (*State, error) {
	if st := e.state.Load(); st != nil {
		return st, nil
	}
	ch := e.group.DoChan("init", func() (any, error) {
		if st := e.state.Load(); st != nil {
			return st, nil
		}
		e.logger.Info().Str("source", e.source.Name()).Msg("Building indexes on first use")
		return e.Refresh(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*State), nil
	}
}

// Refresh loads a full snapshot, builds a new State and swaps it in. On error
// the previous State stays in place. Refreshes run one at a time.
func (e *Engine) Refresh(ctx context.Context) (*State, error) {
	e.refreshMu.Lock()
	defer e.refreshMu.Unlock()

	start := time.Now()
	st, err := e.build(ctx)
	refreshDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		refreshTotal.WithLabelValues("error").Inc()
		e.logger.Error().Err(err).Str("source", e.source.Name()).Msg("Index refresh failed")
		return nil, err
	}

	e.state.Store(st)
	refreshTotal.WithLabelValues("ok").Inc()
	for _, mt := range metricindex.AllMetricTypes {
		indexNodes.WithLabelValues(string(mt)).Set(float64(st.Indexes.Index(mt).Len()))
	}

	e.logger.Info().
		Str("state", st.ID).
		Int("companies", st.Indexes.NumCompanies()).
		Int("records", st.Indexes.NumRecords()).
		Int("names", st.Trie.Len()).
		Dur("duration", time.Since(start)).
		Msg("Indexes refreshed")
	return st, nil
}

func (e *Engine) build(ctx context.Context) (*State, error) {
	snap, err := e.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot from %s: %w", e.source.Name(), err)
	}

	st := &State{
		ID:      uuid.NewString(),
		BuiltAt: time.Now().UTC(),
		Source:  e.source.Name(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		set, err := metricindex.Build(snap.Companies, snap.Metrics)
		if err != nil {
			return err
		}
		st.Indexes = set
		st.Aggregator = analytics.NewAggregator(set, e.opts.Analytics)
		return nil
	})
	g.Go(func() error {
		st.Trie = trie.BuildFromCompanies(snap.SearchEntries())
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build indexes: %w", err)
	}
	return st, nil
}

// TopPerformers ranks companies by the largest values of one metric.
func (e *Engine) TopPerformers(ctx context.Context, mt metricindex.MetricType, limit int) ([]ranking.CompanyAggregate, error) {
	st, err := e.State(ctx)
	if err != nil {
		return nil, err
	}
	queriesTotal.WithLabelValues("top_performers").Inc()
	return st.Aggregator.TopPerformers(mt, limit), nil
}

// AdvancedSearch screens and ranks companies.
func (e *Engine) AdvancedSearch(ctx context.Context, f analytics.Filters) ([]ranking.CompanyAggregate, error) {
	st, err := e.State(ctx)
	if err != nil {
		return nil, err
	}
	queriesTotal.WithLabelValues("advanced_search").Inc()
	return st.Aggregator.AdvancedSearch(f), nil
}

// CompaniesAboveThreshold lists metric entries strictly above threshold.
func (e *Engine) CompaniesAboveThreshold(ctx context.Context, mt metricindex.MetricType, threshold float64) ([]metricindex.Node, error) {
	st, err := e.State(ctx)
	if err != nil {
		return nil, err
	}
	queriesTotal.WithLabelValues("above_threshold").Inc()
	return st.Aggregator.CompaniesAboveThreshold(mt, threshold), nil
}

// Analytics returns the dashboard summary.
func (e *Engine) Analytics(ctx context.Context) (analytics.Summary, error) {
	st, err := e.State(ctx)
	if err != nil {
		return analytics.Summary{}, err
	}
	queriesTotal.WithLabelValues("analytics").Inc()
	return st.Aggregator.Summary(), nil
}

// SearchCompanies autocompletes company names. A blank prefix matches nothing.
func (e *Engine) SearchCompanies(ctx context.Context, prefix string, limit int) ([]trie.SearchResult, error) {
	if strings.TrimSpace(prefix) == "" {
		return []trie.SearchResult{}, nil
	}
	st, err := e.State(ctx)
	if err != nil {
		return nil, err
	}
	queriesTotal.WithLabelValues("search_companies").Inc()
	return st.Trie.Search(prefix, limit), nil
}

// EnqueueNews scores an item with its category level and queues it.
func (e *Engine) EnqueueNews(item newsqueue.Item) newsqueue.Entry {
	e.newsMu.Lock()
	defer e.newsMu.Unlock()
	entry := e.news.Enqueue(item, e.news.LevelFor(item))
	newsQueueDepth.Set(float64(e.news.Len()))
	return entry
}

// NextNews removes and returns the highest-priority item.
func (e *Engine) NextNews() (newsqueue.Item, bool) {
	e.newsMu.Lock()
	defer e.newsMu.Unlock()
	item, ok := e.news.Dequeue()
	newsQueueDepth.Set(float64(e.news.Len()))
	return item, ok
}

// PeekNews returns the highest-priority item without removing it.
func (e *Engine) PeekNews() (newsqueue.Item, bool) {
	e.newsMu.Lock()
	defer e.newsMu.Unlock()
	return e.news.Front()
}

// RankedNews returns the queued entries in priority order.
func (e *Engine) RankedNews() []newsqueue.Entry {
	e.newsMu.Lock()
	defer e.newsMu.Unlock()
	return e.news.Entries()
}

// IngestFeed drains a news feed into the queue and returns how many items were queued.
func (e *Engine) IngestFeed(feed *snapshot.NewsFeed) int {
	items := feed.Drain()
	for _, item := range items {
		e.EnqueueNews(item)
	}
	return len(items)
}
