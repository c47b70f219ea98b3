package usecase

import (
	"context"
	"errors"
	"fmt"
	"order_desk/internal/domain/entities"
	"order_desk/internal/domain/pricing"
	"order_desk/internal/usecase/interfaces"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrRenderFailed      = errors.New("failed to render document")
)

const (
	DefaultExportNote = `* For all future communications, please provide your "ORDER NAME" and "SALES PERSON'S NAME" to help us provide you with better service.`

	invalidDiscountText = "Invalid discount"
	invalidLineText     = "Invalid line data"
)

// IExportUseCase renders the price breakdown of a session's working order.
type IExportUseCase interface {
	Export(ctx context.Context, sessionID, format string) (entities.Document, error)
	Formats() []string
}

type ExportOptions struct {
	Location *time.Location
	Note     string
}

type ExportUseCase struct {
	registry  *SessionRegistry
	renderers map[string]interfaces.IDocumentRenderer
	formats   []string
	opts      ExportOptions
}

var _ IExportUseCase = (*ExportUseCase)(nil)

// NewExportUseCase registers each renderer under its file extension.
func NewExportUseCase(registry *SessionRegistry, opts ExportOptions, renderers ...interfaces.IDocumentRenderer) *ExportUseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if strings.TrimSpace(opts.Note) == "" {
		opts.Note = DefaultExportNote
	}
	u := &ExportUseCase{registry: registry, renderers: make(map[string]interfaces.IDocumentRenderer), opts: opts}
	for _, r := range renderers {
		if r == nil {
			continue
		}
		ext := strings.ToLower(r.Extension())
		if _, dup := u.renderers[ext]; !dup {
			u.formats = append(u.formats, ext)
		}
		u.renderers[ext] = r
	}
	return u
}

func (u *ExportUseCase) Formats() []string {
	return append([]string(nil), u.formats...)
}

// Export reflects unsaved edits: the document shows the working copy, not the stored
// order.
func (u *ExportUseCase) Export(ctx context.Context, sessionID, format string) (entities.Document, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return entities.Document{}, ErrInvalidSessionID
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "pdf"
	}
	renderer, ok := u.renderers[format]
	if !ok {
		return entities.Document{}, ErrUnsupportedFormat
	}

	s, err := u.registry.get(sessionID)
	if err != nil {
		return entities.Document{}, err
	}

	s.mu.Lock()
	c, hasCustomer := s.customerLocked()
	order, hasOrder := s.store.Order()
	lines, totals, _ := s.store.Project()
	s.mu.Unlock()

	if !hasCustomer || !hasOrder {
		return entities.Document{}, ErrNoOrderSelected
	}

	breakdown := BuildPriceBreakdown(c, order, lines, totals, u.opts.Location, u.opts.Note)
	log.Printf("[desk][export] render start session_id=%s order_id=%s format=%s lines=%d", s.id, order.ID, format, len(breakdown.Lines))

	body, err := renderer.Render(ctx, breakdown)
	if err != nil {
		log.Printf("[desk][export] render failed session_id=%s order_id=%s format=%s err=%v", s.id, order.ID, format, err)
		return entities.Document{}, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	doc := entities.Document{
		Filename:    ExportFilename(order.Name, c, order.CreatedAt, u.opts.Location, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}
	log.Printf("[desk][export] render success session_id=%s filename=%q bytes=%d", s.id, doc.Filename, len(body))
	return doc, nil
}

// BuildPriceBreakdown formats a customer's order for export. Lines whose discount or
// stored data could not be read are listed with their quantity and no price.
func BuildPriceBreakdown(c *entities.Customer, order entities.Order, lines []pricing.ProjectedLine, totals pricing.Totals, loc *time.Location, note string) entities.PriceBreakdown {
	b := entities.PriceBreakdown{
		CustomerName:    c.FullName(),
		CustomerEmail:   orNotProvided(c.Email),
		CustomerPhone:   orNotProvided(c.Phone),
		OrderName:       order.Name,
		OrderID:         order.ID,
		OrderDate:       FormatOrderDate(order.CreatedAt, loc),
		SalesPerson:     order.SalesPerson,
		Address:         FormatAddress(order.BillingAddress),
		Note:            note,
		Lines:           make([]entities.BreakdownLine, 0, len(lines)),
		TotalQuantity:   totals.Quantity,
		TotalFinalPrice: totals.FinalPrice,
	}
	for _, l := range lines {
		row := entities.BreakdownLine{
			Title:        l.Title,
			ImageURL:     l.ImageURL,
			UnitPrice:    pricing.Round2(l.UnitPrice),
			Quantity:     l.Quantity,
			TotalPrice:   l.Subtotal,
			DiscountText: l.DiscountText,
			FinalPrice:   l.FinalPrice,
		}
		if l.Rejected() {
			row.Rejected = true
			row.DiscountText = invalidDiscountText
			if errors.Is(l.Cause(), pricing.ErrInvalidLineData) {
				row.DiscountText = invalidLineText
			}
			row.TotalPrice = pricing.Round2(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
		b.Lines = append(b.Lines, row)
	}
	return b
}
