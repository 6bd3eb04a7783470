package kafka

import (
	"context"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageWriter é o subconjunto de *kafka.Writer usado pelos publishers
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// NewWriter cria um writer para o tópico; brokers no formato "a:9092,b:9092"
func NewWriter(brokers string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(brokers, ",")...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
	}
}

// WriteJSON envia uma mensagem simples; at é o horário do evento (agora, se zero)
func WriteJSON(ctx context.Context, w MessageWriter, key string, payload []byte, at time.Time) error {
	if at.IsZero() {
		at = time.Now()
	}
	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Time:  at,
	}

	return w.WriteMessages(ctx, msg)
}
