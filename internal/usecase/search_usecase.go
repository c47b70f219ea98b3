package usecase

import (
	"context"
	"errors"
	"order_desk/internal/domain/search"
	"strings"

	log "github.com/sirupsen/logrus"
)

var (
	ErrProductNotInResults = errors.New("product is not in the search results")
	ErrInvalidProductID    = errors.New("invalid product id")
)

const msgSearchFailure = "Failed to search products"

// ISearchUseCase exposes the product search box of a session.
//
//   - Search restarts the result list for a new query (the empty query included)
//   - LoadMore reveals the next page after the loading delay
//   - Select / Deselect maintain the tag list

type ISearchUseCase interface {
	Search(ctx context.Context, sessionID, query string) (SearchView, error)
	LoadMore(ctx context.Context, sessionID string) (SearchView, error)
	Get(ctx context.Context, sessionID string) (SearchView, error)
	Select(ctx context.Context, sessionID, productID string) (SearchView, error)
	Deselect(ctx context.Context, sessionID, productID string) (SearchView, error)
}

type SearchUseCase struct {
	registry *SessionRegistry
}

var _ ISearchUseCase = (*SearchUseCase)(nil)

func NewSearchUseCase(registry *SessionRegistry) *SearchUseCase {
	return &SearchUseCase{registry: registry}
}

// Search never fails on a catalog error: the result list is emptied and the session
// gets an error notice.
func (u *SearchUseCase) Search(ctx context.Context, sessionID, query string) (SearchView, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return SearchView{}, err
	}

	runSearch(ctx, s, query)
	return u.view(s), nil
}

// runSearch must be called without s.mu held.
func runSearch(ctx context.Context, s *session, query string) {
	superseded, err := s.search.Run(ctx, query)
	if err != nil {
		log.Printf("[desk][search] fetch failed session_id=%s query=%q err=%v", s.id, query, err)
		s.Notify(msgSearchFailure, NotificationError)
	} else if superseded {
		log.Debugf("[desk][search] stale result dropped session_id=%s query=%q", s.id, query)
	}
}

func (u *SearchUseCase) LoadMore(ctx context.Context, sessionID string) (SearchView, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return SearchView{}, err
	}
	if err := s.search.LoadMore(ctx); err != nil {
		log.Printf("[desk][search] load more interrupted session_id=%s err=%v", s.id, err)
		return SearchView{}, err
	}
	return u.view(s), nil
}

func (u *SearchUseCase) Get(ctx context.Context, sessionID string) (SearchView, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return SearchView{}, err
	}
	return u.view(s), nil
}

func (u *SearchUseCase) Select(ctx context.Context, sessionID, productID string) (SearchView, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return SearchView{}, err
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return SearchView{}, ErrInvalidProductID
	}
	if !s.search.Select(productID) {
		return SearchView{}, ErrProductNotInResults
	}
	return u.view(s), nil
}

func (u *SearchUseCase) Deselect(ctx context.Context, sessionID, productID string) (SearchView, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return SearchView{}, err
	}
	s.search.Deselect(strings.TrimSpace(productID))
	return u.view(s), nil
}

func (u *SearchUseCase) session(sessionID string) (*session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrInvalidSessionID
	}
	return u.registry.get(sessionID)
}

func (u *SearchUseCase) view(s *session) SearchView {
	s.mu.Lock()
	notifications := s.drainLocked()
	s.mu.Unlock()

	snap := s.search.Snapshot()
	return SearchView{
		Query:         snap.Query,
		Results:       snap.Visible,
		Total:         snap.Total,
		HasMore:       snap.HasMore,
		Loading:       snap.Loading,
		Selected:      snap.Selected,
		Notifications: notifications,
	}
}

// SearchView is the state of the product search box.
type SearchView struct {
	Query         string          `json:"query"`
	Results       []search.Result `json:"results"`
	Total         int             `json:"total"`
	HasMore       bool            `json:"has_more"`
	Loading       bool            `json:"loading"`
	Selected      []search.Tag    `json:"selected"`
	Notifications []Notification  `json:"notifications,omitempty"`
}
