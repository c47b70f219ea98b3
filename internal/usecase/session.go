package usecase

import (
	"errors"
	"order_desk/internal/domain/editing"
	"order_desk/internal/domain/entities"
	"order_desk/internal/domain/grouping"
	"order_desk/internal/domain/search"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrSessionNotFound = errors.New("session not found")

// NotificationKind is how a transient notice should be rendered.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a transient message for the operator.
type Notification struct {
	Message string           `json:"message"`
	Kind    NotificationKind `json:"kind"`
}

// Notifier receives the engine's notices. The hosting client decides how to show
// them.
type Notifier interface {
	Notify(message string, kind NotificationKind)
}

// session is the state of one desk screen. Every field except search is guarded by
// mu; search synchronizes itself so a slow fetch does not block edits.
type session struct {
	id        string
	createdAt time.Time

	mu            sync.Mutex
	grouping      *grouping.Grouping
	customerID    string
	store         *editing.Store
	notifications []Notification

	search *search.Search
}

var _ Notifier = (*session)(nil)

func newSession(g *grouping.Grouping, s *search.Search) *session {
	return &session{
		id:        uuid.NewString(),
		createdAt: time.Now().UTC(),
		grouping:  g,
		store:     editing.NewStore(),
		search:    s,
	}
}

// Notify queues a notice until the next view drains it.
func (s *session) Notify(message string, kind NotificationKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifyLocked(message, kind)
}

func (s *session) notifyLocked(message string, kind NotificationKind) {
	log.WithFields(log.Fields{"session_id": s.id, "kind": kind}).Info("[desk][session] notify " + message)
	s.notifications = append(s.notifications, Notification{Message: message, Kind: kind})
}

func (s *session) drainLocked() []Notification {
	out := s.notifications
	s.notifications = nil
	return out
}

// selectCustomerLocked selects customerID and that customer's first order.
func (s *session) selectCustomerLocked(customerID string) (*entities.Customer, error) {
	c, ok := s.grouping.Customers[customerID]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	s.customerID = c.ID
	if len(c.Orders) > 0 {
		s.store.SelectOrder(c.Orders[0])
	} else {
		s.store = editing.NewStore()
	}
	return c, nil
}

func (s *session) customerLocked() (*entities.Customer, bool) {
	c, ok := s.grouping.Customers[s.customerID]
	return c, ok
}

// SessionRegistry holds the live sessions of this process.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*session)}
}

func (r *SessionRegistry) put(s *session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.id] = s
}

func (r *SessionRegistry) get(id string) (*session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (r *SessionRegistry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
