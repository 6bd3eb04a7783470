package ws

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/match-predictor/internal/shared/logger"
	"github.com/radieske/match-predictor/internal/web/view"
)

// RedisBroadcaster publica os frames no Pub/Sub para que a instância que
// segura o WebSocket da sessão os entregue
type RedisBroadcaster struct {
	r       *redis.Client
	channel string
	log     *zap.Logger
}

func NewRedisBroadcaster(r *redis.Client, channel string, log *zap.Logger) *RedisBroadcaster {
	return &RedisBroadcaster{r: r, channel: channel, log: logger.Named(log, "ws.broadcast")}
}

// Push implementa view.Sink
func (b *RedisBroadcaster) Push(sessionID string, ops ...view.Op) {
	if len(ops) == 0 {
		return
	}
	payload, err := json.Marshal(Frame{SessionID: sessionID, Ops: ops})
	if err != nil {
		b.log.Warn("frame marshal failed", zap.Error(err))
		return
	}
	if err := b.r.Publish(context.Background(), b.channel, payload).Err(); err != nil {
		b.log.Warn("ui broadcast publish failed", zap.Error(err))
	}
}

// StartRedisSubscriber escuta o canal e repassa os frames ao Hub local
//
// Funcionamento:
// - Recebe mensagens JSON do canal Redis
// - Desserializa para Frame
// - Chama hub.Deliver para as abas conectadas nesta instância
func StartRedisSubscriber(ctx context.Context, r *redis.Client, channel string, hub *Hub, log *zap.Logger) {
	log = logger.Named(log, "ws.subscriber")
	sub := r.Subscribe(ctx, channel)
	ch := sub.Channel()
	go func() {
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close() // encerra a inscrição ao finalizar o contexto
				return
			case msg := <-ch:
				if msg == nil {
					continue
				}
				var f Frame
				if err := json.Unmarshal([]byte(msg.Payload), &f); err != nil {
					log.Warn("ws subscriber unmarshal error", zap.Error(err))
					continue
				}
				hub.Deliver(f)
			}
		}
	}()
}
