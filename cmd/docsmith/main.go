package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/docsmith/docsmith/internal/adapter/agno"
	"github.com/docsmith/docsmith/internal/adapter/groq"
	dshttp "github.com/docsmith/docsmith/internal/adapter/http"
	"github.com/docsmith/docsmith/internal/adapter/otel"
	"github.com/docsmith/docsmith/internal/adapter/ristretto"
	"github.com/docsmith/docsmith/internal/adapter/ws"
	"github.com/docsmith/docsmith/internal/config"
	"github.com/docsmith/docsmith/internal/domain/provider"
	"github.com/docsmith/docsmith/internal/gateway"
	"github.com/docsmith/docsmith/internal/logger"
	"github.com/docsmith/docsmith/internal/middleware"
	"github.com/docsmith/docsmith/internal/port/cache"
	"github.com/docsmith/docsmith/internal/port/llm"
	"github.com/docsmith/docsmith/internal/resilience"
	"github.com/docsmith/docsmith/internal/service"
	"github.com/docsmith/docsmith/internal/store/memory"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Logging))
	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"cache_enabled", cfg.Cache.Enabled,
	)

	ctx := context.Background()

	// --- Telemetry ---
	otelShutdown, err := otel.Init(ctx, otel.Config{
		ServiceName: cfg.Logging.Service,
		Endpoint:    cfg.Otel.Endpoint,
		Enabled:     cfg.Otel.Enabled,
	})
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = otelShutdown(shutdownCtx)
	}()

	metrics, err := otel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Infrastructure ---
	var validationCache cache.Cache
	if cfg.Cache.Enabled {
		c, err := ristretto.New(cfg.Cache.MaxCostBytes)
		if err != nil {
			return fmt.Errorf("cache: %w", err)
		}
		defer c.Close()
		validationCache = c
	}

	hub := ws.NewHub()
	agentStore := memory.NewAgentStore()
	docStore := memory.NewDocumentStore()

	// --- Provider gateways ---
	breakers := map[string]*resilience.Breaker{
		"groq": resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Cooldown),
		"agno": resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Cooldown),
	}

	groqClient := groq.NewClient(cfg.Groq.APIKey, cfg.Groq.BaseURL, cfg.Groq.Timeout)
	groqClient.SetBreaker(breakers["groq"])

	agnoCfg := agno.Config{
		BaseURL: cfg.Agno.BaseURL,
		APIKey:  cfg.Agno.APIKey,
		Timeout: cfg.Agno.Timeout,
	}

	registry := gateway.NewRegistry()
	gatewayFor := func(c llm.Completer) gateway.Factory {
		return func() (llm.Gateway, error) {
			if validationCache != nil {
				return gateway.New(c, gateway.WithCache(validationCache, cfg.Cache.TTL)), nil
			}
			return gateway.New(c), nil
		}
	}
	registry.Register(provider.Groq, gatewayFor(groqClient))
	for _, p := range []provider.Provider{provider.OpenAI, provider.Anthropic, provider.Local} {
		client := agno.NewClient(string(p), agnoCfg)
		client.SetBreaker(breakers["agno"])
		registry.Register(p, gatewayFor(client))
	}

	// --- Services ---
	agentSvc := service.NewAgentService(agentStore, registry, hub)
	docSvc := service.NewDocumentService(docStore, agentStore, registry, hub, metrics, cfg.Generation.MaxContentLength)

	// --- HTTP ---
	handlers := &dshttp.Handlers{
		Agents:    agentSvc,
		Documents: docSvc,
	}
	health := &dshttp.HealthHandler{
		Version:  version,
		Agents:   agentStore,
		Docs:     docStore,
		Breakers: breakers,
		Hub:      hub,
	}

	r := chi.NewRouter()

	r.Use(dshttp.CORS(cfg.Server.CORSOrigin))
	r.Use(dshttp.SecurityHeaders)
	r.Use(dshttp.Logger)
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(120 * time.Second))
	if cfg.Otel.Enabled {
		r.Use(otel.HTTPMiddleware(cfg.Logging.Service))
	}
	r.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))

	r.Get("/health", health.Health)
	r.Get("/ws", hub.HandleWS)
	dshttp.MountRoutes(r, handlers)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      180 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
