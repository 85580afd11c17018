// cmd/quote-worker/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"carrier-quoting/internal/common/camunda"
	"carrier-quoting/internal/common/config"
	"carrier-quoting/internal/common/database"
	"carrier-quoting/internal/common/logger"
	"carrier-quoting/internal/common/observability"
	"carrier-quoting/internal/models"
	"carrier-quoting/internal/quoting/adapter"
	"carrier-quoting/internal/quoting/audit"
	"carrier-quoting/internal/quoting/index"
	"carrier-quoting/internal/quoting/orchestrator"
	"carrier-quoting/internal/quoting/tokens"
	"carrier-quoting/internal/quoting/transport"
	"carrier-quoting/pkg/registry"

	gcq "carrier-quoting/internal/workers/quoting/get-carrier-quotes"

	// Carrier plugins register themselves through their init functions.
	_ "carrier-quoting/internal/quoting/carriers/harborline"
	_ "carrier-quoting/internal/quoting/carriers/meridian"
	_ "carrier-quoting/internal/quoting/carriers/stonepoint"
)

// retryWithBackoff attempts an operation with exponential backoff. Used for
// infrastructure connections at startup only.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting quote worker...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
	)

	ctx := context.Background()

	// --- Tracing ---
	tracing, err := observability.InitTracing(cfg.App.Name)
	if err != nil {
		zapLog.Warn("tracing disabled, exporter init failed", zap.Error(err))
	}
	defer tracing.Shutdown()

	// --- Carrier profile registry ---
	reg, err := registry.Load(cfg.Quoting.RegistryPath, cfg.Quoting.ClaimsHorizonYears)
	if err != nil {
		zapLog.Fatal("carrier registry load failed", zap.Error(err))
	}
	reg.Apply(carrierOverrides(cfg.Carriers))
	zapLog.Info("Carrier registry loaded",
		zap.String("version", reg.Version),
		zap.Strings("carriers", reg.CarrierIDs()),
	)

	// --- Zeebe client ---
	var zeebeClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			RequestTimeout:         time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- PostgreSQL (carrier call audit) ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Elasticsearch (outcome search index) ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Redis (carrier token cache) ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Quoting stack ---
	auditStore := audit.NewStore(pg.DB, log)
	callTimeout := time.Duration(cfg.Quoting.CallTimeout) * time.Millisecond
	deps := adapter.Dependencies{
		Transport: transport.New(callTimeout, log, auditStore),
		Tokens:    tokens.NewCache(rdb.Client, log),
		Logger:    log,
	}
	indexer := index.NewIndexer(esClient.Client, cfg.Database.Elasticsearch.OutcomeIndex, log)
	orch := orchestrator.New(log)

	handler := gcq.NewHandler(
		&gcq.Config{
			Timeout:        time.Duration(cfg.Camunda.Timeout) * time.Millisecond,
			RequestTimeout: time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
			MaxJobsActive:  cfg.Camunda.MaxJobsActive,
		},
		reg, deps, orch, indexer, log,
	)

	jobWorker := camunda.NewWorker(
		zeebeClient.GetClient(),
		gcq.TaskType,
		cfg.Camunda.MaxJobsActive,
		time.Duration(cfg.Camunda.Timeout)*time.Millisecond,
		handler,
		log,
	)
	jobWorker.Start()

	// --- Health & metrics server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := zeebeClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "not ready", "error": err.Error()})
				return
			}
			w.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping worker...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	jobWorker.Stop(shutdownCtx)
	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}
	zapLog.Info("Quote worker stopped")
}

// carrierOverrides maps the environment config onto registry overrides.
// Secrets always come from the environment; the profile file carries only
// non-sensitive defaults.
func carrierOverrides(carriers map[string]config.CarrierConfig) map[string]registry.Override {
	out := make(map[string]registry.Override, len(carriers))
	for id, c := range carriers {
		enabled := c.Enabled
		ov := registry.Override{
			Enabled: &enabled,
			Host:    c.Host,
		}
		sandbox := c.Sandbox
		ov.Sandbox = &sandbox
		ov.Credentials.Scheme = models.AuthScheme(c.Scheme)
		ov.Credentials.Username = c.Username
		ov.Credentials.Password = c.Password
		ov.Credentials.APIKey = c.APIKey
		ov.Credentials.ClientID = c.ClientID
		ov.Credentials.Secret = c.Secret
		out[id] = ov
	}
	return out
}
