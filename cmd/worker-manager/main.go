// cmd/worker-manager/main.go
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

	"screening-workers/internal/audit"
	"screening-workers/internal/common/camunda"
	"screening-workers/internal/common/config"
	"screening-workers/internal/common/database"
	"screening-workers/internal/common/logger"
	"screening-workers/internal/common/observability"
	"screening-workers/internal/engine"
	"screening-workers/internal/history"
	"screening-workers/internal/reporting"
	"screening-workers/internal/verification"

	gi "screening-workers/internal/workers/screening/generate-insights"
	rd "screening-workers/internal/workers/screening/record-decision"
	sa "screening-workers/internal/workers/screening/screen-applicant"
	vad "screening-workers/internal/workers/screening/validate-applicant-data"
	va "screening-workers/internal/workers/screening/verify-applicant"
)

// retryWithBackoff attempts to execute a function with exponential backoff
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
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting screening worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	// Re-create the logger with the configured level and format.
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log = logger.NewZapAdapter(zapLog)

	obs := observability.New("screening-worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer camundaClient.Close()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
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

	// --- Init Elasticsearch with retry ---
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

	// --- Init Redis with retry ---
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

	// --- Build domain services ---
	dailyMetrics := reporting.NewDailyMetrics(rdb.Client, log).WithObservability(obs)

	eng := engine.NewEngine(log,
		engine.WithMetricsSink(dailyMetrics),
		engine.WithInferenceConcurrency(int64(cfg.Engine.MaxConcurrentInference)),
	)
	if cfg.Engine.ModelPath != "" {
		if err := eng.LoadModelSet(cfg.Engine.ModelPath); err != nil {
			zapLog.Warn("model artifact not loaded, engine runs rule-based",
				zap.String("path", cfg.Engine.ModelPath),
				zap.Error(err),
			)
		}
	}

	var bureau verification.CreditBureau = verification.NewStubCreditBureau()
	if cfg.Verification.BureauURL != "" {
		bureau = verification.NewHTTPCreditBureau(
			cfg.Verification.BureauURL,
			cfg.Verification.BureauAPIKey,
			time.Duration(cfg.Verification.CreditTimeout)*time.Millisecond,
		)
	}

	orchestrator := verification.NewOrchestrator(
		bureau,
		verification.NewStubBackgroundChecker(),
		verification.NewDocumentService(),
		verification.OrchestratorConfig{
			BureauName:        cfg.Verification.BureauName,
			CheckType:         cfg.Verification.CheckType,
			CreditTimeout:     time.Duration(cfg.Verification.CreditTimeout) * time.Millisecond,
			BackgroundTimeout: time.Duration(cfg.Verification.BackgroundTimeout) * time.Millisecond,
			DocumentTimeout:   time.Duration(cfg.Verification.DocumentTimeout) * time.Millisecond,
		},
		log,
	)

	store := history.NewStore(pg.DB, log)
	indexer := audit.NewIndexer(esClient.Client, cfg.Database.Elasticsearch.Index, log)

	// --- Register Workers ---
	var workers []*camunda.CamundaWorker

	registerWorker := func(taskType string, handler camunda.JobHandler) {
		wcfg := cfg.Workers[taskType]
		if !wcfg.Enabled {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			return
		}
		w := camunda.NewWorker(
			camundaClient.GetClient(),
			taskType,
			wcfg.MaxJobsActive,
			time.Duration(wcfg.Timeout)*time.Millisecond,
			handler,
			zapLog,
			obs,
		)
		w.Start()
		workers = append(workers, w)
	}

	// Per-package LoadConfig carries the default job timeout; the workers
	// section of config.yaml overrides it when set.
	handlerTimeout := func(taskType string, def time.Duration) time.Duration {
		if wc, ok := cfg.Workers[taskType]; ok && wc.Timeout > 0 {
			return time.Duration(wc.Timeout) * time.Millisecond
		}
		return def
	}

	vadCfg := vad.LoadConfig()
	vadCfg.Timeout = handlerTimeout(vad.TaskType, vadCfg.Timeout)
	registerWorker(vad.TaskType, vad.NewHandler(vadCfg, log))

	saCfg := sa.LoadConfig()
	saCfg.Timeout = handlerTimeout(sa.TaskType, saCfg.Timeout)
	registerWorker(sa.TaskType, sa.NewHandler(saCfg, eng, log))

	vaCfg := va.LoadConfig()
	vaCfg.Timeout = handlerTimeout(va.TaskType, vaCfg.Timeout)
	registerWorker(va.TaskType, va.NewHandler(vaCfg, orchestrator, log))

	giCfg := gi.LoadConfig()
	giCfg.Timeout = handlerTimeout(gi.TaskType, giCfg.Timeout)
	registerWorker(gi.TaskType, gi.NewHandler(giCfg, eng, log))

	rdCfg := rd.LoadConfig()
	rdCfg.Timeout = handlerTimeout(rd.TaskType, rdCfg.Timeout)
	registerWorker(rd.TaskType, rd.NewHandler(rdCfg, store, indexer, log))

	zapLog.Info("All screening workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/metrics/daily", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(dailyMetrics.Today())
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop(shutdownCtx)
	}

	zapLog.Info("Worker manager stopped gracefully")
}
