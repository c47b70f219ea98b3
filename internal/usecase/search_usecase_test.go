package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"order_desk/internal/domain/entities"
	"order_desk/internal/domain/grouping"
	"order_desk/internal/domain/search"
	mock_interfaces "order_desk/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func catalogProducts(n int) []entities.Product {
	out := make([]entities.Product, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, entities.Product{
			ID:              fmt.Sprintf("gid://shopify/Product/%d", i),
			Title:           fmt.Sprintf("Lamp %d", i),
			TotalInventory:  i,
			MaxVariantPrice: decimal.NewFromInt(int64(10 + i)),
		})
	}
	return out
}

func newSearchSession(catalog *mock_interfaces.MockIProductCatalog) (*SearchUseCase, string) {
	registry := NewSessionRegistry()
	s := newSession(grouping.Group(nil), search.New(catalog, search.Options{Delay: 0}))
	registry.put(s)
	return NewSearchUseCase(registry), s.id
}

func TestSearchUseCase_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("windows results and loads more", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		catalog := mock_interfaces.NewMockIProductCatalog(ctrl)
		uc, id := newSearchSession(catalog)

		catalog.EXPECT().SearchProducts(gomock.Any(), "lamp").Return(catalogProducts(60), nil)

		v, err := uc.Search(ctx, id, "lamp")
		if err != nil {
			t.Fatalf("expected nil err, got %v", err)
		}
		if len(v.Results) != 25 || !v.HasMore || v.Total != 60 || v.Query != "lamp" {
			t.Fatalf("unexpected first page %d hasMore=%v total=%d", len(v.Results), v.HasMore, v.Total)
		}

		v, _ = uc.LoadMore(ctx, id)
		if len(v.Results) != 50 || !v.HasMore {
			t.Fatalf("expected 50 with more, got %d/%v", len(v.Results), v.HasMore)
		}
		v, _ = uc.LoadMore(ctx, id)
		if len(v.Results) != 60 || v.HasMore {
			t.Fatalf("expected 60 without more, got %d/%v", len(v.Results), v.HasMore)
		}
	})

	t.Run("catalog failure empties results and notifies", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		catalog := mock_interfaces.NewMockIProductCatalog(ctrl)
		uc, id := newSearchSession(catalog)

		catalog.EXPECT().SearchProducts(gomock.Any(), "lamp").Return(catalogProducts(5), nil)
		catalog.EXPECT().SearchProducts(gomock.Any(), "").Return(nil, errors.New("connection refused"))

		_, _ = uc.Search(ctx, id, "lamp")
		v, err := uc.Search(ctx, id, "")
		if err != nil {
			t.Fatalf("expected nil err, got %v", err)
		}
		if len(v.Results) != 0 || v.HasMore {
			t.Fatalf("expected empty results, got %d", len(v.Results))
		}
		if len(v.Notifications) != 1 || v.Notifications[0].Kind != NotificationError {
			t.Fatalf("expected error notification, got %+v", v.Notifications)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		uc := NewSearchUseCase(NewSessionRegistry())
		if _, err := uc.Search(ctx, "missing", "x"); !errors.Is(err, ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
		if _, err := uc.LoadMore(ctx, ""); !errors.Is(err, ErrInvalidSessionID) {
			t.Fatalf("expected ErrInvalidSessionID, got %v", err)
		}
	})
}

func TestSearchUseCase_Selection(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	catalog := mock_interfaces.NewMockIProductCatalog(ctrl)
	uc, id := newSearchSession(catalog)

	catalog.EXPECT().SearchProducts(gomock.Any(), "lamp").Return(catalogProducts(3), nil)
	_, _ = uc.Search(ctx, id, "lamp")

	v, err := uc.Select(ctx, id, "gid://shopify/Product/1")
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if len(v.Selected) != 1 || v.Selected[0].Title != "Lamp 1" {
		t.Fatalf("unexpected tags %+v", v.Selected)
	}

	if _, err := uc.Select(ctx, id, "gid://shopify/Product/99"); !errors.Is(err, ErrProductNotInResults) {
		t.Fatalf("expected ErrProductNotInResults, got %v", err)
	}
	if _, err := uc.Select(ctx, id, " "); !errors.Is(err, ErrInvalidProductID) {
		t.Fatalf("expected ErrInvalidProductID, got %v", err)
	}

	v, _ = uc.Deselect(ctx, id, "gid://shopify/Product/1")
	v, err = uc.Deselect(ctx, id, "gid://shopify/Product/1")
	if err != nil || len(v.Selected) != 0 {
		t.Fatalf("expected idempotent deselect, got %v %+v", err, v.Selected)
	}
}
