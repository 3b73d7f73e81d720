package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Simplici0/casasim/internal/catalog"
	"github.com/Simplici0/casasim/internal/config"
	"github.com/Simplici0/casasim/internal/db"
	"github.com/Simplici0/casasim/internal/migrations"
	"github.com/Simplici0/casasim/internal/seed"
	"github.com/Simplici0/casasim/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	cat, err := catalog.LoadOrDefault(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(ctx, database, cfg.MigrationsDir); err != nil {
			log.Fatalf("failed to run database migrations: %v", err)
		}
	}
	if version, err := migrations.Version(ctx, database); err != nil {
		log.Printf("warning: could not read schema version: %v", err)
	} else {
		log.Printf("database ready path=%s schema_version=%d", cfg.DBPath, version)
	}

	stats, err := seed.Run(ctx, database, cat)
	if err != nil {
		log.Fatalf("failed to seed materials: %v", err)
	}
	log.Printf("seed complete inserts=%d", stats.Inserts)

	srv, err := newServer(cat, store.NewMaterials(database), store.NewSimulations(database), cfg.ResultCacheSize)
	if err != nil {
		log.Fatalf("failed to build server: %v", err)
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s env=%s systems=%d", addr, cfg.AppEnv, cat.Systems().Len())
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
