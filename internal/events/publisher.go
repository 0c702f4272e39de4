package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Pageblan/Carepulse/internal/cart"
)

const checkoutTopic = "checkout-completed"

// CheckoutCompleted is emitted when the user agent lands back on the
// success destination. Downstream consumers (fulfilment, reporting) key
// on the session id.
type CheckoutCompleted struct {
	SessionID   string          `json:"session_id"`
	Items       []cart.LineItem `json:"items"`
	TotalAmount int64           `json:"total_amount"`
	Currency    string          `json:"currency"`
	CompletedAt time.Time       `json:"completed_at"`
}

type Publisher interface {
	PublishCheckoutCompleted(ctx context.Context, evt CheckoutCompleted) error
}

// messageWriter is the slice of kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  checkoutTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) PublishCheckoutCompleted(ctx context.Context, evt CheckoutCompleted) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal checkout event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(evt.SessionID), // session id for ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("checkout_completed")},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish checkout event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	if c, ok := p.writer.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Nop is used when no brokers are configured.
type Nop struct{}

func (Nop) PublishCheckoutCompleted(context.Context, CheckoutCompleted) error { return nil }
