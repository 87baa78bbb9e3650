package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	httpapi "relet/internal/http"
	jwttoken "relet/internal/jwt_token"
	"relet/internal/platform/clock"
	"relet/internal/platform/config"
	"relet/internal/platform/httpserver"
	"relet/internal/platform/logger"
	"relet/internal/platform/metrics"
	platformredis "relet/internal/platform/redis"
	"relet/internal/renewal"
	"relet/internal/renewal/adapters"
	renewalhandler "relet/internal/renewal/handler"
	renewalmetrics "relet/internal/renewal/metrics"
	"relet/internal/renewal/ports"
	"relet/internal/renewal/service"
	evalstore "relet/internal/renewal/store/evaluation"
	rulestore "relet/internal/renewal/store/rules"
	statusstore "relet/internal/renewal/store/status"
	id "relet/pkg/domain"
	"relet/pkg/platform/audit"
	auditmemory "relet/pkg/platform/audit/store/memory"
	auditpostgres "relet/pkg/platform/audit/store/postgres"
	auditworker "relet/pkg/platform/audit/worker"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the service packages; everything here is selection and plumbing.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var health []httpapi.HealthCheck

	// Postgres backs the evaluation history and the audit trail when
	// configured; otherwise both stay in memory.
	var db *sql.DB
	if cfg.PostgresURL != "" {
		var err error
		db, err = sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			log.Error("postgres open failed", "error", err)
			os.Exit(1)
		}
		if err := db.PingContext(ctx); err != nil {
			log.Error("postgres ping failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		health = append(health, httpapi.HealthCheck{Name: "postgres", Check: db.PingContext})
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		health = append(health, httpapi.HealthCheck{Name: "redis", Check: redisClient.Health})
	}

	var statuses service.StatusStore = statusstore.NewInMemoryStore()
	if redisClient != nil {
		statuses = statusstore.NewRedisStore(redisClient.Client)
	}

	var evals service.EvaluationStore = evalstore.NewInMemoryStore()
	var auditStore audit.Store = auditmemory.NewInMemoryStore()
	if db != nil {
		evals = evalstore.NewPostgresStore(db)
		auditStore = auditpostgres.New(db)
	}

	var tracker ports.PaymentTracker
	if cfg.PaymentTrackerURL != "" {
		tracker = adapters.NewPaymentTrackerClient(cfg.PaymentTrackerURL)
	} else {
		log.Warn("no payment tracker configured, using in-memory tracker")
		tracker = adapters.NewMemoryPaymentTracker()
	}

	var factory ports.LeaseFactory
	if cfg.LeaseFactoryURL != "" {
		factory = adapters.NewLeaseFactoryClient(cfg.LeaseFactoryURL)
	} else {
		log.Warn("no lease factory configured, using in-memory factory")
		factory = adapters.NewMemoryLeaseFactory()
	}

	policy := renewal.NewPolicy(renewal.PolicyDefaults{
		Oracle:           id.Principal(cfg.Oracle),
		DefaultThreshold: cfg.DefaultThreshold,
		DefaultPeriod:    cfg.DefaultPeriod,
		GracePeriod:      cfg.GracePeriod,
		MaxEvaluations:   cfg.MaxEvaluations,
	})
	blocks := clock.NewCounter(cfg.StartHeight)

	queue := audit.NewQueue(cfg.AuditBuffer)
	worker := auditworker.NewWorker(auditStore, queue.Events(), log)

	svc, err := service.New(
		policy,
		rulestore.NewInMemoryStore(),
		statuses,
		evals,
		tracker,
		factory,
		blocks,
		service.WithLogger(log),
		service.WithAuditPublisher(queue),
		service.WithMetrics(renewalmetrics.New()),
	)
	if err != nil {
		log.Error("service wiring failed", "error", err)
		os.Exit(1)
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Renewal:   renewalhandler.New(svc, log),
		Validator: jwttoken.NewService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience),
		Logger:    log,
		HTTP:      metrics.NewHTTP(),
		Health:    health,
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting relet", "addr", cfg.Addr, "start_height", cfg.StartHeight)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		err := worker.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		err := blocks.Run(gctx, cfg.BlockInterval)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error("shutdown with error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
