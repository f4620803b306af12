// Command server runs the chatbot backend HTTP API.
//
// @title           Chatbot Backend API
// @version         1.0
// @description     Multi-tenant backend for hotel chatbots: chat sessions, messages, reservations, prompt context and audit logs.
// @BasePath        /api
// @schemes         http https
//
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Tenant token as "Bearer <token>".
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/fndrorato/chatbot-backend/docs"
	"github.com/fndrorato/chatbot-backend/internal/cache"
	"github.com/fndrorato/chatbot-backend/internal/config"
	httpapi "github.com/fndrorato/chatbot-backend/internal/http"
	"github.com/fndrorato/chatbot-backend/internal/llm"
	"github.com/fndrorato/chatbot-backend/internal/observability"
	"github.com/fndrorato/chatbot-backend/internal/repo"
	"github.com/fndrorato/chatbot-backend/internal/sysutil"
)

const version = "1.0.0"

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	lg := sysutil.ConfigureLogger(cfg.LogPretty, sysutil.FirstNonEmpty(cfg.OTEL.ServiceName, "chatbot-backend"))
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		lg.Fatal().Err(err).Msg("otel setup failed")
	}

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		lg.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if cfg.OTEL.Enabled {
		if err := repo.EnableTracing(db); err != nil {
			lg.Warn().Err(err).Msg("gorm tracing disabled")
		}
	}
	if err := repo.AutoMigrate(db); err != nil {
		lg.Fatal().Err(err).Msg("migrate")
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.Deps{
		DB:          db,
		LLM:         newLanguageModel(cfg.LLM),
		TenantCache: newTenantCache(cfg, rdb),
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		lg.Info().Str("addr", srv.Addr).Str("base_path", cfg.APIBasePath).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	lg.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("http shutdown")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("otel shutdown")
	}
}

// newTenantCache picks Redis when configured, the in-process cache
// otherwise, and no cache at all when the TTL is zero.
func newTenantCache(cfg config.Config, rdb *redis.Client) cache.TenantCache {
	switch {
	case cfg.TenantCacheTTL <= 0:
		return cache.Nop{}
	case rdb != nil:
		return cache.NewRedis(rdb, cfg.TenantCacheTTL)
	default:
		return cache.NewMemory(cfg.TenantCacheTTL)
	}
}

// newLanguageModel returns nil when no endpoint is configured so chats fall
// back to the no-classifier behavior.
func newLanguageModel(c config.LLMConfig) httpapi.LanguageModel {
	if c.BaseURL == "" {
		return nil
	}
	return llm.New(llm.Config{
		BaseURL: c.BaseURL,
		APIKey:  c.APIKey,
		Model:   c.Model,
		Timeout: c.Timeout,
		RPS:     c.RPS,
		Burst:   c.Burst,
	})
}
