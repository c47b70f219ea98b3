package search

import (
	"context"
	"errors"
	"sync"
	"time"

	"order_desk/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var ErrNoFetcher = errors.New("product search is not configured")

const (
	DefaultPageSize = 25
	DefaultDelay    = time.Second
)

// Fetcher returns the full match set for a query in one call.
type Fetcher interface {
	SearchProducts(ctx context.Context, query string) ([]entities.Product, error)
}

type Options struct {
	PageSize int
	Delay    time.Duration
}

// VariantResult is one row of a product's variant breakdown.
type VariantResult struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Available int             `json:"available"`
	Price     decimal.Decimal `json:"price"`
	Thumbnail *string         `json:"thumbnail"`
}

// Result is a product as listed by the search box.
type Result struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Thumbnail *string         `json:"thumbnail"`
	Available int             `json:"available"`
	Price     decimal.Decimal `json:"price"`
	Variants  []VariantResult `json:"variants,omitempty"`
}

// Tag is a selected search result.
type Tag struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Search windows the results of the latest query into pages.
//
// Fetches and the load-more delay run without holding the lock. A result that
// belongs to a superseded query is dropped.
type Search struct {
	fetcher  Fetcher
	pageSize int
	delay    time.Duration

	mu       sync.Mutex
	gen      uint64
	query    string
	results  []entities.Product
	visible  int
	hasMore  bool
	loading  bool
	selected []Tag
}

func New(fetcher Fetcher, opts Options) *Search {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	return &Search{fetcher: fetcher, pageSize: opts.PageSize, delay: opts.Delay}
}

// Run restarts the result sequence for query, the empty query included. On error the
// result set is empty and the error is returned. superseded reports that a newer query
// was issued while this one was in flight; its results were discarded.
func (s *Search) Run(ctx context.Context, query string) (superseded bool, err error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.query = query
	s.loading = false
	s.mu.Unlock()

	var products []entities.Product
	if s.fetcher == nil {
		err = ErrNoFetcher
	} else {
		products, err = s.fetcher.SearchProducts(ctx, query)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return true, nil
	}
	if err != nil {
		s.results = nil
		s.visible = 0
		s.hasMore = false
		return false, err
	}
	s.results = products
	s.visible = min(len(products), s.pageSize)
	s.hasMore = len(products) > s.pageSize
	return false, nil
}

// LoadMore waits the configured delay, then reveals the next page or the remainder.
// It is a no-op when there is nothing more to show or a load is already running.
func (s *Search) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	if !s.hasMore || s.loading {
		s.mu.Unlock()
		return nil
	}
	gen := s.gen
	s.loading = true
	s.mu.Unlock()

	err := wait(ctx, s.delay)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return nil
	}
	s.loading = false
	if err != nil {
		return err
	}

	remaining := len(s.results) - s.visible
	if remaining >= s.pageSize {
		s.visible += s.pageSize
	} else {
		s.visible += remaining
	}
	if remaining <= s.pageSize {
		s.hasMore = false
	}
	return nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Search) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *Search) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}

func (s *Search) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Total is the size of the full match set.
func (s *Search) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

// Visible returns the revealed window.
func (s *Search) Visible() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visibleLocked()
}

func (s *Search) visibleLocked() []Result {
	out := make([]Result, 0, s.visible)
	for _, p := range s.results[:s.visible] {
		out = append(out, toResult(p))
	}
	return out
}

// Snapshot is a consistent copy of the search box state.
type Snapshot struct {
	Query    string
	Visible  []Result
	Total    int
	HasMore  bool
	Loading  bool
	Selected []Tag
}

// Snapshot reads every field under one lock, so the window and the total always
// belong to the same query.
func (s *Search) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Query:    s.query,
		Visible:  s.visibleLocked(),
		Total:    len(s.results),
		HasMore:  s.hasMore,
		Loading:  s.loading,
		Selected: append([]Tag(nil), s.selected...),
	}
}

func toResult(p entities.Product) Result {
	r := Result{
		ID:        p.ID,
		Title:     p.Title,
		Thumbnail: optional(p.FeaturedImageURL),
		Available: p.TotalInventory,
		Price:     p.MaxVariantPrice,
	}
	if len(p.Variants) > 1 {
		r.Variants = make([]VariantResult, 0, len(p.Variants))
		for _, v := range p.Variants {
			r.Variants = append(r.Variants, VariantResult{
				ID:        v.ID,
				Title:     v.Title,
				Available: v.InventoryQuantity,
				Price:     v.Price,
				Thumbnail: optional(v.ImageURL),
			})
		}
	}
	return r
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Select adds a product of the current result set to the tag list. Selecting a tag
// twice keeps one entry. It reports false for ids not in the result set.
func (s *Search) Select(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.selected {
		if t.ID == productID {
			return true
		}
	}
	for _, p := range s.results {
		if p.ID == productID {
			s.selected = append(s.selected, Tag{ID: p.ID, Title: p.Title})
			return true
		}
	}
	return false
}

// Deselect removes a tag. Removing an absent tag is a no-op.
func (s *Search) Deselect(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.selected[:0]
	for _, t := range s.selected {
		if t.ID != productID {
			kept = append(kept, t)
		}
	}
	s.selected = kept
}

func (s *Search) Selected() []Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Tag(nil), s.selected...)
}
