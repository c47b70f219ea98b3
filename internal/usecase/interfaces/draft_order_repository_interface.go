package interfaces

import (
	"context"
	"order_desk/internal/domain/entities"
)

// IDraftOrderRepository abstracts the order store holding draft orders.
//
// The desk needs to:
//   - load the snapshot of open draft orders once per session
//   - replace the line set of one order after edits (variant id + quantity)

type IDraftOrderRepository interface {
	ListOpen(ctx context.Context) ([]entities.RawOrder, error)
	UpdateLines(ctx context.Context, patch entities.LinePatch) error
}
