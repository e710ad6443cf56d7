package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"projectview/internal/app/config"
	httpapi "projectview/internal/app/http"
	"projectview/internal/app/http/handler"
	"projectview/internal/domain/preference"
	"projectview/internal/domain/project"
	"projectview/internal/domain/queue"
	"projectview/internal/infrastructure/async"
	"projectview/internal/infrastructure/db/pg"
	"projectview/internal/infrastructure/logging"
	"projectview/internal/infrastructure/upstream"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := pg.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db error", zap.Error(err))
	}
	defer db.Close()

	if err := pg.Migrate(db, cfg.MigrationsDir); err != nil {
		log.Fatal("migration error", zap.Error(err))
	}

	uow := pg.NewUnitOfWork(db)

	eventBus := async.NewAsyncEventBus(ctx, cfg.EventWorkers, log)
	defer eventBus.Close()

	client, err := upstream.NewClient(upstream.Config{
		BaseURL:    cfg.UpstreamBaseURL,
		APIKey:     cfg.UpstreamAPIKey,
		Timeout:    cfg.UpstreamTimeout,
		MaxRetries: cfg.UpstreamMaxRetries,
	}, log.Named("upstream"))
	if err != nil {
		log.Fatal("upstream client error", zap.Error(err))
	}
	backend := upstream.NewCache(client, cfg.CacheTTL)

	prefRepo := pg.NewPreferenceRepository(db)

	prefSvc := preference.NewService(uow, prefRepo, eventBus)
	projectSvc := project.NewService(backend, eventBus, log.Named("projects"), cfg.AllProjectsPageSize)
	queueSvc := queue.NewService(backend, prefSvc, eventBus, log.Named("queues"))

	h := handler.New(projectSvc, queueSvc, prefSvc, log)
	router := httpapi.NewRouter(h, log)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("upstream", cfg.UpstreamBaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}
