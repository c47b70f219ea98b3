package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"order_desk/internal/domain/entities"
	"order_desk/internal/usecase/interfaces"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

const writeTimeout = 5 * time.Second

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher emits draft order events keyed by order id, so every event of one
// order lands on the same partition.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

var _ interfaces.IEventPublisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
	}
	log.Infof("[desk][events] kafka publisher ready brokers=%v topic=%s", brokers, topic)
	return &KafkaPublisher{writer: w, topic: topic}
}

func (p *KafkaPublisher) PublishDraftOrderUpdated(ctx context.Context, event entities.DraftOrderUpdated) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event.Type, err)
	}
	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
		Time:  event.UpdatedAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s to %s: %w", event.Type, p.topic, err)
	}
	log.Debugf("[desk][events] published type=%s order_id=%s", event.Type, event.OrderID)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops events; it is used when no brokers are configured.
type NoopPublisher struct{}

var _ interfaces.IEventPublisher = NoopPublisher{}

func (NoopPublisher) PublishDraftOrderUpdated(_ context.Context, event entities.DraftOrderUpdated) error {
	log.Debugf("[desk][events] kafka disabled, dropping type=%s order_id=%s", event.Type, event.OrderID)
	return nil
}
