// Package audit consome os eventos prediction_made e os persiste no Postgres.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/match-predictor/pkg/contracts/events"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type Repository interface {
	InsertEvent(ctx context.Context, e events.PredictionMade) error
	UpsertMatchup(ctx context.Context, e events.PredictionMade) error
}

// Processor consome prediction_made e grava evento e agregado
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa
type Processor struct {
	Log    *zap.Logger
	Reader MessageReader
	Repo   Repository

	OnConsumed func()       // métricas (counter++)
	OnPersist  func()       // métricas
	OnError    func(string) // métricas por fase

	RetryDelay time.Duration // pausa após falha de leitura; 500ms se zero
}

// Run inicia o loop de consumo; retorna quando o contexto é cancelado
func (p *Processor) Run(ctx context.Context) error {
	delay := p.RetryDelay
	if delay == 0 {
		delay = 500 * time.Millisecond
	}

	for {
		m, err := p.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err() // encerra se o contexto for cancelado
			}
			p.Log.Warn("kafka read failed", zap.Error(err))
			p.failed("read")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			continue
		}

		if p.OnConsumed != nil {
			p.OnConsumed()
		}

		var ev events.PredictionMade
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			p.Log.Warn("invalid message", zap.Error(err), zap.ByteString("key", m.Key))
			p.failed("decode")
			continue
		}

		if err := p.Repo.InsertEvent(ctx, ev); err != nil {
			p.Log.Warn("db insert event failed", zap.String("session", ev.SessionID), zap.Error(err))
			p.failed("db_event")
			continue
		}
		if err := p.Repo.UpsertMatchup(ctx, ev); err != nil {
			p.Log.Warn("db upsert matchup failed",
				zap.String("home_team", ev.HomeTeam),
				zap.String("away_team", ev.AwayTeam),
				zap.Error(err),
			)
			p.failed("db_matchup")
			continue
		}
		if p.OnPersist != nil {
			p.OnPersist()
		}
	}
}

func (p *Processor) failed(stage string) {
	if p.OnError != nil {
		p.OnError(stage)
	}
}
