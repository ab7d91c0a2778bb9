// README: Entry point; loads config, wires providers and services, starts HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"tripwise/internal/ai"
	"tripwise/internal/config"
	httptransport "tripwise/internal/http"
	"tripwise/internal/infra"
	"tripwise/internal/modules/assist"
	"tripwise/internal/modules/itinerary"
	"tripwise/internal/modules/suggestion"
	"tripwise/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := newProvider(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("ai provider init: %v", err)
	}

	ttl := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	var sessionStore session.Store
	if cfg.Redis.Addr != "" {
		sessionStore = session.NewRedisStore(infra.NewRedis(cfg.Redis.Addr), ttl)
		log.Printf("sessions: redis at %s", cfg.Redis.Addr)
	} else {
		sessionStore = session.NewMemoryStore(ttl)
		log.Print("sessions: in-memory store")
	}
	sessions := session.NewManager(sessionStore)

	planner := itinerary.NewService(provider, cfg.AI)
	suggestions := suggestion.NewService(provider, cfg.AI)
	assistant := assist.NewService(provider, cfg.AI)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Sessions:         sessions,
		Planner:          planner,
		Suggestions:      suggestions,
		Assist:           assistant,
		SessionMaxAgeSec: int(ttl.Seconds()),
	})
	handler := cors.New(cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
		AllowOriginFunc:  func(string) bool { return true },
	}).Handler(router)

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("tripwise-api listening on %s (provider: %s, model: %s)", cfg.HTTP.Addr, cfg.AI.Provider, cfg.AI.Model)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func newProvider(ctx context.Context, cfg config.AIConfig) (ai.Provider, error) {
	if cfg.Provider == "openai" {
		return ai.NewOpenAIProvider(cfg.OpenAIKey, cfg.Model)
	}
	return ai.NewGeminiProvider(ctx, cfg.GeminiKey, cfg.Model)
}
