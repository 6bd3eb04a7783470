package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/match-predictor/internal/audit"
	"github.com/radieske/match-predictor/internal/shared/config"
	"github.com/radieske/match-predictor/internal/shared/db"
	"github.com/radieske/match-predictor/internal/shared/logger"
	"github.com/radieske/match-predictor/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New("prediction-audit-worker", cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.KafkaBrokers == "" {
		log.Fatal("KAFKA_BROKERS is required")
	}

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	repo := audit.NewPostgresRepo(pg)
	if err := repo.Migrate(ctx); err != nil {
		log.Fatal("postgres migrate", zap.Error(err))
	}

	// Configura o consumer Kafka (consumer group prediction-audit)
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(cfg.KafkaBrokers, ","),
		GroupID:  cfg.AuditGroupID,
		Topic:    cfg.TopicPredictionMade,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	// Métricas Prometheus do consumo
	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "prediction_audit_messages_consumed_total", Help: "mensagens consumidas"})
	persist := prometheus.NewCounter(prometheus.CounterOpts{Name: "prediction_audit_db_writes_total", Help: "eventos persistidos (evento+agregado)"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "prediction_audit_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(consumed, persist, errorsBy)

	proc := &audit.Processor{
		Log:        log,
		Reader:     reader,
		Repo:       repo,
		OnConsumed: func() { consumed.Inc() },
		OnPersist:  func() { persist.Inc() },
		OnError:    func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}

	srv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		return nil
	})
	defer srv.Close()
	log.Info("metrics/health listening", zap.String("addr", srv.Addr))

	log.Info("prediction-audit-worker started", zap.String("topic", cfg.TopicPredictionMade))
	if err := proc.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("processor stopped with error", zap.Error(err))
	}
	log.Info("prediction-audit-worker stopped")
}
