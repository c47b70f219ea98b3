package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"order_desk/internal/domain/entities"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func sampleEvent() entities.DraftOrderUpdated {
	return entities.DraftOrderUpdated{
		Type:            entities.EventDraftOrderUpdated,
		OrderID:         "o1",
		OrderName:       "#D1",
		CustomerID:      "c1",
		Lines:           []entities.LinePatchItem{{VariantID: "11", Quantity: 4}},
		TotalQuantity:   4,
		TotalFinalPrice: decimal.RequireFromString("380.50"),
		UpdatedAt:       time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
	}
}

func TestKafkaPublisher_PublishDraftOrderUpdated(t *testing.T) {
	ctx := context.Background()

	t.Run("keyed json message", func(t *testing.T) {
		w := &fakeWriter{}
		p := &KafkaPublisher{writer: w, topic: "draft-orders"}

		if err := p.PublishDraftOrderUpdated(ctx, sampleEvent()); err != nil {
			t.Fatalf("expected nil err, got %v", err)
		}
		if len(w.msgs) != 1 {
			t.Fatalf("expected 1 message, got %d", len(w.msgs))
		}
		msg := w.msgs[0]
		if string(msg.Key) != "o1" || len(msg.Headers) != 1 || string(msg.Headers[0].Value) != "draft_order.updated" {
			t.Fatalf("unexpected message %+v", msg)
		}
		var body map[string]any
		if err := json.Unmarshal(msg.Value, &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["total_final_price"] != "380.5" || body["order_name"] != "#D1" {
			t.Fatalf("unexpected body %v", body)
		}

		if err := p.Close(); err != nil || !w.closed {
			t.Fatalf("expected writer closed")
		}
	})

	t.Run("writer failure", func(t *testing.T) {
		boom := errors.New("no leader")
		p := &KafkaPublisher{writer: &fakeWriter{err: boom}, topic: "draft-orders"}
		if err := p.PublishDraftOrderUpdated(ctx, sampleEvent()); !errors.Is(err, boom) {
			t.Fatalf("expected no leader, got %v", err)
		}
	})

	t.Run("noop", func(t *testing.T) {
		if err := (NoopPublisher{}).PublishDraftOrderUpdated(ctx, sampleEvent()); err != nil {
			t.Fatalf("expected nil err, got %v", err)
		}
	})
}
