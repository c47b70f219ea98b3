package interfaces

import (
	"context"
	"order_desk/internal/domain/entities"
)

// IEventPublisher announces persisted draft order changes to downstream consumers.
type IEventPublisher interface {
	PublishDraftOrderUpdated(ctx context.Context, event entities.DraftOrderUpdated) error
}
