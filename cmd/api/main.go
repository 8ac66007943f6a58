package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"arthere/internal/config"
	"arthere/internal/httpx"
	"arthere/internal/ingest"
	"arthere/internal/museum"
	"arthere/internal/platform/opendata"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	dbPool := mustOpenDB(cfg.DSN)
	defer dbPool.Close()

	museumRepo := museum.NewPostgresRepo(dbPool)
	runRepo := ingest.NewPostgresRepo(dbPool)

	catalogClient := opendata.NewCatalogClient(cfg.MuseumAPIURL, cfg.MuseumAPIKey, 5)
	exhibitionClient := opendata.NewExhibitionClient(cfg.ExhibitionAPIURL, cfg.ExhibitionAPIKey, 5)

	catalogSvc := ingest.NewCatalogService(catalogClient, museumRepo, runRepo, cfg.MuseumAPIKey, cfg.PageSize)
	exhibitionSvc := ingest.NewExhibitionService(exhibitionClient, museumRepo, runRepo, cfg.ExhibitionAPIKey, cfg.PageSize)

	museumHandler := museum.NewHTTPHandler(museumRepo)
	ingestHandler := ingest.NewHTTPHandler(catalogSvc, exhibitionSvc, cfg.InternalSecret)

	router := http.NewServeMux()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := dbPool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("/museums", museumHandler.List)
	router.HandleFunc("/museums/", museumHandler.GetByName)

	router.HandleFunc("/internal/jobs/sync-museums", requirePost(ingestHandler.SyncMuseums))
	router.HandleFunc("/internal/jobs/sync-exhibitions", requirePost(ingestHandler.SyncExhibitions))

	handler := httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
	)

	if cfg.SyncSchedule != "" {
		startScheduler(cfg.SyncSchedule, catalogSvc, exhibitionSvc)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Minute, // sync runs answer on the request itself
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on %s", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func requirePost(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

// startScheduler triggers both pipelines on the configured cron spec.
// Runs stay stateless so an external scheduler hitting the HTTP
// endpoints works the same way.
func startScheduler(spec string, catalogSvc *ingest.CatalogService, exhibitionSvc *ingest.ExhibitionService) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		if _, err := catalogSvc.Run(ctx); err != nil {
			log.Printf("scheduled catalog sync failed: %v", err)
		}
		if _, err := exhibitionSvc.Run(ctx); err != nil {
			log.Printf("scheduled exhibition sync failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("invalid SYNC_SCHEDULE %q: %v", spec, err)
	}
	c.Start()
	log.Printf("sync scheduler running with spec %q", spec)
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatalf("cannot ping database (%s): %v", redactDSN(dsn), err)
	}
	log.Println("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
