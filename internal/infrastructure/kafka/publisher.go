package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

type PaymentEventPublisher struct {
	writer *kafka.Writer
}

func NewPaymentEventPublisher(brokers []string, topic string) *PaymentEventPublisher {
	return &PaymentEventPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// PublishPaymentEvent keys messages by reference so events for one payment
// land in order on a single partition.
func (k *PaymentEventPublisher) PublishPaymentEvent(event PaymentEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return k.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.Reference),
		Value: msg,
		Time:  time.Now(),
	})
}

func (k *PaymentEventPublisher) Close() error {
	return k.writer.Close()
}
