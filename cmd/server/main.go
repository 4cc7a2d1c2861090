package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"triage-agent/internal/core"
	"triage-agent/internal/db"
	httpserver "triage-agent/internal/http"
	"triage-agent/internal/llm"
	"triage-agent/internal/search"
	logx "triage-agent/pkg/logger"
)

// AppConfig defines all configurable parameters for the service, sourced
// from environment variables (loaded from .env for local runs). Provider
// credentials (OPENAI_API_KEY, TAVILY_API_KEY) are read by their clients.
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	Port        string `envconfig:"PORT" default:"8080"`

	// Turn state store backend: postgres, redis, or memory.
	StateBackend    string `envconfig:"STATE_BACKEND" default:"postgres"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	RedisURL        string `envconfig:"REDIS_URL"`
	ConversationTTL string `envconfig:"CONVERSATION_TTL" default:"0"`

	// Dialogue loop bounds.
	MaxRounds     int `envconfig:"TURN_MAX_ROUNDS" default:"8"`
	ContextWindow int `envconfig:"CONTEXT_WINDOW" default:"20"`
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		// .env is optional outside local development.
		logx.Debug().Err(err).Msg("no .env file loaded")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logx.Fatal().Err(err).Msg("failed to process environment config")
	}
	logx.Init(logx.Environment(cfg.Environment))

	store, cleanup := buildStore(cfg)
	defer cleanup()

	searchTool := search.NewTool(search.NewTavilyClient())
	invoker := core.NewInvoker(searchTool)
	controller := core.NewController(llm.NewOpenAIClient(), invoker, store, core.Config{
		MaxRounds:     cfg.MaxRounds,
		ContextWindow: cfg.ContextWindow,
	})

	srv := httpserver.NewServer(controller)
	addr := ":" + cfg.Port
	logx.Info().Str("addr", addr).Str("state_backend", cfg.StateBackend).Msg("listening")
	if err := http.ListenAndServe(addr, srv); err != nil {
		logx.Fatal().Err(err).Msg("server error")
	}
}

// buildStore opens the configured turn state store and returns it with a
// cleanup function for connection teardown.
func buildStore(cfg AppConfig) (db.Store, func()) {
	switch cfg.StateBackend {
	case "postgres":
		if cfg.DatabaseURL == "" {
			logx.Fatal().Msg("DATABASE_URL must be set for the postgres backend")
		}
		conn, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logx.Fatal().Err(err).Msg("failed to open database")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := conn.PingContext(ctx); err != nil {
			logx.Fatal().Err(err).Msg("failed to ping database")
		}
		if err := db.Migrate(context.Background(), conn); err != nil {
			logx.Fatal().Err(err).Msg("failed to run migrations")
		}
		return db.NewPostgresStore(conn), func() { _ = conn.Close() }

	case "redis":
		if cfg.RedisURL == "" {
			logx.Fatal().Msg("REDIS_URL must be set for the redis backend")
		}
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logx.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logx.Fatal().Err(err).Msg("failed to ping redis")
		}
		ttl, err := time.ParseDuration(cfg.ConversationTTL)
		if err != nil {
			logx.Fatal().Err(err).Str("ttl", cfg.ConversationTTL).Msg("invalid CONVERSATION_TTL")
		}
		return db.NewRedisStore(rdb, ttl), func() { _ = rdb.Close() }

	case "memory":
		return db.NewMemoryStore(), func() {}

	default:
		logx.Fatal().Str("backend", cfg.StateBackend).Msg("unknown STATE_BACKEND")
		return nil, nil
	}
}
