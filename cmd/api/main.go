package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"govista/adapters/llm"
	"govista/adapters/llm/heuristic"
	"govista/app"
	"govista/internal/api"
	"govista/internal/cache"
	"govista/internal/config"
	"govista/ports"
	"govista/ui"
)

const version = "0.3.0"

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Printf("[Main] No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Main] Configuration error: %v", err)
	}

	store := cache.New(cfg.Cache.TTL, cfg.Cache.MaxSize)
	rng := ports.NewSeededRNG(cfg.Data.Seed)

	var ai ports.Suggester
	if cfg.AI.Enabled() {
		ai = llm.NewAISuggester(llm.NewSuggestionClient(&cfg.AI))
		log.Printf("[Main] AI suggestions enabled (model=%s)", cfg.AI.Model)
	} else {
		log.Printf("[Main] OPENAI_API_KEY not set; suggestions use the heuristic fallback")
	}

	service := app.NewAnalysisService(store, rng, ai, heuristic.NewSuggester(), cfg.Data)
	server := ui.NewServer(cfg, service)

	// Ops sidecar for health probes
	go func() {
		opsAddr := ":9090"
		log.Printf("[Main] Ops router listening on %s", opsAddr)
		if err := http.ListenAndServe(opsAddr, api.NewOpsRouter(version)); err != nil {
			log.Printf("[Main] Ops router stopped: %v", err)
		}
	}()

	if err := server.Run(cfg.Server.Port); err != nil {
		log.Fatalf("[Main] Server failed: %v", err)
	}
}
