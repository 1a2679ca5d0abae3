package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mauro-rocha/portfolio-backend/config"
	"github.com/mauro-rocha/portfolio-backend/internal/assistant"
	"github.com/mauro-rocha/portfolio-backend/internal/auth"
	"github.com/mauro-rocha/portfolio-backend/internal/bootstrap"
	"github.com/mauro-rocha/portfolio-backend/internal/cache"
	"github.com/mauro-rocha/portfolio-backend/internal/sitedata"
	"github.com/mauro-rocha/portfolio-backend/internal/store"
)

const serviceName = "portfolio-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var st store.Store
	var session *auth.Session

	if cfg.StoreConfigured() {
		clients, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			log.Printf("[warn] operation=main.firebase error=%v", err)
		} else {
			st = store.NewFirestore(clients.Firestore)
			session = auth.NewSession(cfg.Firebase.WebAPIKey, clients.Auth)
		}
	} else {
		log.Printf("[warn] operation=main message=Firebase not configured, serving cached/default data only")
	}
	if session == nil {
		session = auth.NewSession(cfg.Firebase.WebAPIKey, nil)
	}
	session.Initialize()

	siteCache := cache.New(cfg.Redis.Addr, cfg.Redis.CacheKey)
	defer siteCache.Close()

	data := sitedata.New(st, siteCache, session, sitedata.Options{
		DeferDelay:     cfg.Sync.DeferDelay,
		MirrorSchedule: cfg.Sync.MirrorSchedule,
	})
	data.Start(sitedata.StartDeferred)
	defer data.Stop()

	bot := assistant.New(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:     serviceName,
		Version:         cfg.App.Version,
		AllowedOrigins:  cfg.App.AllowedOrigins,
		StoreConfigured: st != nil,
		Data:            data,
		Session:         session,
		Assistant:       bot,
		Cache:           siteCache,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("[info] operation=main message=listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("[info] operation=main message=shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[warn] operation=main.shutdown error=%v", err)
	}
}
