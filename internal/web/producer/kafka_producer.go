package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/radieske/match-predictor/internal/shared/kafka"
	"github.com/radieske/match-predictor/pkg/contracts/events"
)

// KafkaPublisher publica o evento prediction_made; a chave é a sessão e o
// tópico é o do writer
type KafkaPublisher struct {
	Writer kafka.MessageWriter
}

func NewKafkaPublisher(w kafka.MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: w}
}

func (p *KafkaPublisher) PublishPredictionMade(ctx context.Context, e events.PredictionMade) error {
	if e.Ts.IsZero() {
		e.Ts = time.Now().UTC()
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return kafka.WriteJSON(ctx, p.Writer, e.SessionID, b, e.Ts)
}
