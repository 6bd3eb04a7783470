package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/match-predictor/internal/shared/cache"
	"github.com/radieske/match-predictor/internal/shared/config"
	"github.com/radieske/match-predictor/internal/shared/db"
	"github.com/radieske/match-predictor/internal/shared/kafka"
	"github.com/radieske/match-predictor/internal/shared/logger"
	"github.com/radieske/match-predictor/internal/shared/metrics"
	httpapi "github.com/radieske/match-predictor/internal/web/http"
	"github.com/radieske/match-predictor/internal/web/history"
	"github.com/radieske/match-predictor/internal/web/logo"
	"github.com/radieske/match-predictor/internal/web/predictor"
	"github.com/radieske/match-predictor/internal/web/producer"
	"github.com/radieske/match-predictor/internal/web/schedule"
	"github.com/radieske/match-predictor/internal/web/storage"
	"github.com/radieske/match-predictor/internal/web/teams"
	"github.com/radieske/match-predictor/internal/web/theme"
	"github.com/radieske/match-predictor/internal/web/view"
	"github.com/radieske/match-predictor/internal/web/workflow"
	"github.com/radieske/match-predictor/internal/web/ws"
)

func main() {
	// carrega config
	cfg := config.Load()

	// inicia logger
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service",
		zap.String("service", cfg.ServiceName),
		zap.String("env", cfg.Env),
		zap.String("storage", cfg.StorageBackend),
		zap.String("ui_fanout", cfg.UIFanout),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis só é conectado se algum componente precisar dele
	var rdb *redis.Client
	if cfg.StorageBackend == "redis" || cfg.UIFanout == "redis" || cfg.LogoBaseURL != "" {
		rdb, err = cache.ConnectRedis(cfg.RedisAddr)
		if err != nil {
			log.Fatal("failed to connect redis", zap.Error(err))
		}
		defer rdb.Close()
		log.Info("redis connected", zap.String("addr", cfg.RedisAddr))
	}

	// backend das preferências e do histórico
	kv, closeKV, err := openStorage(ctx, cfg, rdb)
	if err != nil {
		log.Fatal("failed to open storage", zap.String("backend", cfg.StorageBackend), zap.Error(err))
	}
	defer closeKV()
	log.Info("storage ready", zap.String("backend", cfg.StorageBackend))

	// WebSocket hub; com UI_FANOUT=redis as operações passam pelo Pub/Sub
	hub := ws.NewHub(func(r *http.Request) bool { return true }, log)
	var sink view.Sink = hub
	if cfg.UIFanout == "redis" {
		sink = ws.NewRedisBroadcaster(rdb, cfg.RedisPubSubChannel, log)
		ws.StartRedisSubscriber(ctx, rdb, cfg.RedisPubSubChannel, hub, log)
		log.Info("ui fan-out via redis", zap.String("channel", cfg.RedisPubSubChannel))
	}

	// logos: arquivos locais ou sondagem HTTP num host externo (com cache no Redis)
	staticFS := os.DirFS(cfg.StaticDir)
	var prober logo.Prober = logo.NewFSProber(staticFS)
	if cfg.LogoBaseURL != "" {
		prober = &logo.CachedProber{
			Next:  logo.NewHTTPProber(cfg.LogoBaseURL),
			Cache: logo.NewRedisProbeCache(rdb),
			TTL:   cfg.LogoCacheTTL,
		}
	}
	logos := logo.NewResolver(prober, log)

	themes := theme.NewStore(theme.NewKVRepository(kv), sink, log)
	hist := history.NewStore(history.NewKVRepository(kv), logos, sink, log)

	sched := schedule.NewTimers()
	defer sched.Stop()

	client := predictor.New(cfg.PredictorURL, cfg.PredictorTimeout, cfg.PredictorRPS)
	ctrl := workflow.New(client, logos, hist, sink, sched, log)

	m := metrics.NewWorkflow(prometheus.DefaultRegisterer)
	ctrl.OnPredicted = m.OnPredicted
	ctrl.OnRejected = m.OnRejected
	ctrl.OnFailed = m.OnFailed
	ctrl.OnLatency = m.OnLatency

	// Kafka é opcional: sem brokers nenhum evento é publicado
	if cfg.KafkaBrokers != "" {
		writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicPredictionMade)
		defer writer.Close()
		ctrl.Publisher = producer.NewKafkaPublisher(writer)
		log.Info("kafka writer ready", zap.String("topic", cfg.TopicPredictionMade))
	}

	api := &httpapi.Server{
		Log:      log.Named("http"),
		Workflow: ctrl,
		History:  hist,
		Theme:    themes,
		Hub:      hub,
		Teams:    func() (teams.Catalog, error) { return teams.Load(cfg.TeamsFile) },
		Static:   staticFS,
	}
	hub.OnConnect = api.OnConnect
	hub.OnDisconnect = ctrl.Forget

	// metrics/health
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := kv.Ping(ctx); err != nil {
			return fmt.Errorf("storage: %w", err)
		}
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
		}
		return nil
	})
	log.Info("metrics/health", zap.String("addr", metricsSrv.Addr))

	apiSrv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = apiSrv.Shutdown(shutdownCtx)
		_ = metricsSrv.Shutdown(shutdownCtx)
	}()

	log.Info("predictor-web listening", zap.String("addr", apiSrv.Addr))
	if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("api", zap.Error(err))
	}
	log.Info("shutdown complete")
}

// openStorage escolhe o backend KV conforme STORAGE_BACKEND
func openStorage(ctx context.Context, cfg config.Config, rdb *redis.Client) (storage.KV, func(), error) {
	noop := func() {}

	switch cfg.StorageBackend {
	case "memory", "":
		return storage.NewMemory(), noop, nil

	case "redis":
		return storage.NewRedis(rdb), noop, nil

	case "postgres":
		pg, err := db.ConnectPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		kv := storage.NewPostgres(pg)
		if err := kv.Migrate(ctx); err != nil {
			pg.Close()
			return nil, noop, err
		}
		return kv, func() { pg.Close() }, nil

	case "sqlite":
		lite, err := db.ConnectSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		kv := storage.NewSQLite(lite)
		if err := kv.Migrate(ctx); err != nil {
			lite.Close()
			return nil, noop, err
		}
		return kv, func() { lite.Close() }, nil
	}

	return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
