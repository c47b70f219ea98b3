package usecase

import (
	"context"
	"errors"
	"fmt"
	"order_desk/internal/domain/editing"
	"order_desk/internal/domain/entities"
	"order_desk/internal/domain/grouping"
	"order_desk/internal/domain/pricing"
	"order_desk/internal/domain/search"
	"order_desk/internal/usecase/interfaces"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidSessionID  = errors.New("invalid session id")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrLineNotFound      = errors.New("line not found")
	ErrNoOrderSelected   = editing.ErrNoOrderSelected
	ErrSaveDisabled      = editing.ErrSaveDisabled
	ErrSaveFailed        = errors.New("failed to update draft order")
	ErrSnapshotLoad      = errors.New("failed to load draft orders")
	ErrRepoNotConfigured = errors.New("draft order repository not configured")
)

const (
	msgSaveSuccess = "Draft order updated successfully"
	msgSaveFailure = "Failed to update draft order"
)

// ISessionUseCase drives one desk screen:
//   - Open loads the open draft orders and selects the first customer and order
//   - SelectCustomer / SelectOrder switch the working order (edits are discarded)
//   - SetQuantity / DeleteLine edit the working copy; totals follow every change
//   - Save persists the full line set of the working copy

type ISessionUseCase interface {
	Open(ctx context.Context) (SessionView, error)
	Get(ctx context.Context, sessionID string) (SessionView, error)
	Close(ctx context.Context, sessionID string) error
	SelectCustomer(ctx context.Context, sessionID, customerID string) (SessionView, error)
	SelectOrder(ctx context.Context, sessionID, orderID string) (SessionView, error)
	SetQuantity(ctx context.Context, sessionID, productID, quantity string) (SessionView, error)
	DeleteLine(ctx context.Context, sessionID, productID string) (SessionView, error)
	Save(ctx context.Context, sessionID string) (SessionView, error)
}

// SessionOptions carries the display and search settings of new sessions.
type SessionOptions struct {
	Location       *time.Location
	SearchPageSize int
	SearchDelay    time.Duration
}

type SessionUseCase struct {
	registry *SessionRegistry
	orders   interfaces.IDraftOrderRepository
	images   interfaces.IImageRepository
	catalog  interfaces.IProductCatalog
	events   interfaces.IEventPublisher
	opts     SessionOptions
}

var _ ISessionUseCase = (*SessionUseCase)(nil)

func NewSessionUseCase(
	registry *SessionRegistry,
	orders interfaces.IDraftOrderRepository,
	images interfaces.IImageRepository,
	catalog interfaces.IProductCatalog,
	events interfaces.IEventPublisher,
	opts SessionOptions,
) *SessionUseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &SessionUseCase{
		registry: registry,
		orders:   orders,
		images:   images,
		catalog:  catalog,
		events:   events,
		opts:     opts,
	}
}

func (u *SessionUseCase) Open(ctx context.Context) (SessionView, error) {
	if u.orders == nil {
		return SessionView{}, ErrRepoNotConfigured
	}
	log.Printf("[desk][usecase] open session start")

	raw, err := u.orders.ListOpen(ctx)
	if err != nil {
		log.Printf("[desk][usecase] list open draft orders failed err=%v", err)
		return SessionView{}, fmt.Errorf("%w: %v", ErrSnapshotLoad, err)
	}

	g := grouping.Group(raw)
	u.applyImages(ctx, g)

	s := newSession(g, search.New(u.catalog, search.Options{
		PageSize: u.opts.SearchPageSize,
		Delay:    u.opts.SearchDelay,
	}))
	if first, ok := g.First(); ok {
		_, _ = s.selectCustomerLocked(first.ID)
	}
	// the search box opens on the first page of the whole catalog
	runSearch(ctx, s, "")
	u.registry.put(s)

	log.Printf("[desk][usecase] open session success session_id=%s orders=%d customers=%d", s.id, len(raw), len(g.Customers))

	s.mu.Lock()
	defer s.mu.Unlock()
	return u.viewLocked(s), nil
}

// applyImages resolves line images with a single batched lookup. A failed lookup
// leaves every line without an image.
func (u *SessionUseCase) applyImages(ctx context.Context, g *grouping.Grouping) {
	if u.images == nil || (len(g.ProductIDs) == 0 && len(g.VariantIDs) == 0) {
		g.ApplyImages(nil)
		return
	}
	set, err := u.images.LookupImages(ctx, g.ProductIDs, g.VariantIDs)
	if err != nil {
		log.Printf("[desk][usecase] image lookup failed products=%d variants=%d err=%v", len(g.ProductIDs), len(g.VariantIDs), err)
		g.ApplyImages(nil)
		return
	}
	g.ApplyImages(&set)
}

func (u *SessionUseCase) Get(ctx context.Context, sessionID string) (SessionView, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return u.viewLocked(s), nil
}

func (u *SessionUseCase) Close(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrInvalidSessionID
	}
	if !u.registry.remove(sessionID) {
		return ErrSessionNotFound
	}
	log.Printf("[desk][usecase] session closed session_id=%s", sessionID)
	return nil
}

func (u *SessionUseCase) SelectCustomer(ctx context.Context, sessionID, customerID string) (SessionView, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.selectCustomerLocked(strings.TrimSpace(customerID)); err != nil {
		return SessionView{}, err
	}
	return u.viewLocked(s), nil
}

func (u *SessionUseCase) SelectOrder(ctx context.Context, sessionID, orderID string) (SessionView, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customerLocked()
	if !ok {
		return SessionView{}, ErrCustomerNotFound
	}
	order, ok := c.FindOrder(strings.TrimSpace(orderID))
	if !ok {
		return SessionView{}, ErrOrderNotFound
	}
	s.store.SelectOrder(order)
	return u.viewLocked(s), nil
}

// SetQuantity applies raw quantity input. Input that is not a positive integer, or a
// product that is not on the order, is ignored without error.
func (u *SessionUseCase) SetQuantity(ctx context.Context, sessionID, productID, quantity string) (SessionView, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.SetQuantityText(strings.TrimSpace(productID), quantity) {
		log.Debugf("[desk][usecase] quantity ignored session_id=%s product_id=%s raw=%q", s.id, productID, quantity)
	}
	return u.viewLocked(s), nil
}

func (u *SessionUseCase) DeleteLine(ctx context.Context, sessionID, productID string) (SessionView, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteLine(strings.TrimSpace(productID)); err != nil {
		if errors.Is(err, editing.ErrUnknownProduct) {
			return SessionView{}, ErrLineNotFound
		}
		return SessionView{}, err
	}
	return u.viewLocked(s), nil
}

// Save persists the working copy. The session waits for the store; on failure it
// stays modified and an error notice carries the store's message.
func (u *SessionUseCase) Save(ctx context.Context, sessionID string) (SessionView, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	if u.orders == nil {
		return SessionView{}, ErrRepoNotConfigured
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.CanSave() {
		if _, ok := s.store.Order(); !ok {
			return SessionView{}, ErrNoOrderSelected
		}
		return SessionView{}, ErrSaveDisabled
	}

	patch, err := s.store.Save(ctx, u.orders)
	if err != nil {
		log.Printf("[desk][usecase] save failed session_id=%s order_id=%s err=%v", s.id, patch.OrderID, err)
		msg := strings.TrimSpace(err.Error())
		if msg == "" {
			msg = msgSaveFailure
		}
		s.notifyLocked(msg, NotificationError)
		return u.viewLocked(s), fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	saved, _ := s.store.Order()
	s.grouping.ReplaceOrder(s.customerID, saved)
	s.notifyLocked(msgSaveSuccess, NotificationSuccess)
	log.Printf("[desk][usecase] save success session_id=%s order_id=%s lines=%d", s.id, patch.OrderID, len(patch.Lines))

	u.publishUpdated(ctx, s, saved, patch)
	return u.viewLocked(s), nil
}

func (u *SessionUseCase) publishUpdated(ctx context.Context, s *session, order entities.Order, patch entities.LinePatch) {
	if u.events == nil {
		return
	}
	_, totals, _ := s.store.Project()
	evt := entities.DraftOrderUpdated{
		Type:            entities.EventDraftOrderUpdated,
		OrderID:         order.ID,
		OrderName:       order.Name,
		CustomerID:      s.customerID,
		Lines:           patch.Lines,
		TotalQuantity:   totals.Quantity,
		TotalFinalPrice: totals.FinalPrice,
		UpdatedAt:       time.Now().UTC(),
	}
	if err := u.events.PublishDraftOrderUpdated(ctx, evt); err != nil {
		log.Printf("[desk][usecase] publish draft_order.updated failed order_id=%s err=%v", order.ID, err)
	}
}

func (u *SessionUseCase) session(sessionID string) (*session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrInvalidSessionID
	}
	return u.registry.get(sessionID)
}

func (u *SessionUseCase) viewLocked(s *session) SessionView {
	v := SessionView{
		ID:            s.id,
		Customers:     make([]CustomerOption, 0, len(s.grouping.Customers)),
		Orders:        []OrderOption{},
		State:         s.store.State().String(),
		CanSave:       s.store.CanSave(),
		Notifications: s.drainLocked(),
	}
	for _, c := range s.grouping.List() {
		v.Customers = append(v.Customers, CustomerOption{ID: c.ID, Name: c.FullName()})
	}

	c, ok := s.customerLocked()
	if !ok {
		v.Lines = []pricing.ProjectedLine{}
		v.Totals = pricing.Aggregate(nil)
		return v
	}
	v.Customer = &CustomerDetail{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
	for _, o := range c.Orders {
		v.Orders = append(v.Orders, OrderOption{ID: o.ID, Name: o.Name, Label: FormatOrderDate(o.CreatedAt, u.opts.Location)})
	}

	lines, totals, errs := s.store.Project()
	if lines == nil {
		lines = []pricing.ProjectedLine{}
	}
	v.Lines = lines
	v.Totals = totals
	if len(errs) > 0 {
		v.LineErrors = make(map[string]string, len(errs))
		for productID, err := range errs {
			v.LineErrors[productID] = err.Error()
		}
	}
	if order, ok := s.store.Order(); ok {
		v.Order = &OrderDetail{
			ID:             order.ID,
			Name:           order.Name,
			CreatedAt:      order.CreatedAt,
			DateLabel:      FormatOrderDate(order.CreatedAt, u.opts.Location),
			SalesPerson:    order.SalesPerson,
			BillingAddress: FormatAddress(order.BillingAddress),
		}
	}
	return v
}

// SessionView is what the desk screen renders after every operation.
type SessionView struct {
	ID            string                  `json:"session_id"`
	Customers     []CustomerOption        `json:"customers"`
	Customer      *CustomerDetail         `json:"customer,omitempty"`
	Orders        []OrderOption           `json:"orders"`
	Order         *OrderDetail            `json:"order,omitempty"`
	Lines         []pricing.ProjectedLine `json:"lines"`
	LineErrors    map[string]string       `json:"line_errors,omitempty"`
	Totals        pricing.Totals          `json:"totals"`
	State         string                  `json:"state"`
	CanSave       bool                    `json:"can_save"`
	Notifications []Notification          `json:"notifications,omitempty"`
}

type CustomerOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type OrderOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

type CustomerDetail struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

type OrderDetail struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	DateLabel      string    `json:"date_label"`
	SalesPerson    string    `json:"sales_person"`
	BillingAddress string    `json:"billing_address"`
}
