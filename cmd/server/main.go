package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/maintenance-agent/internal/api"
	"github.com/example/maintenance-agent/internal/export"
	"github.com/example/maintenance-agent/internal/models"
	"github.com/example/maintenance-agent/internal/orchestrator"
	"github.com/example/maintenance-agent/internal/persist"
	"github.com/example/maintenance-agent/internal/providers/gemini"
	"github.com/example/maintenance-agent/internal/store"
	"github.com/example/maintenance-agent/internal/tools"
	"github.com/example/maintenance-agent/internal/transcript"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("dotenv: %v", err)
	}

	dataDir := "data"
	if v := os.Getenv("DATA_DIR"); v != "" {
		dataDir = v
	}
	kv, err := persist.NewFileStore(dataDir)
	if err != nil {
		log.Fatal(err)
	}

	tasks := store.Load(kv)
	tasks.OnChange(func(snap []models.Task) {
		log.Printf("tasks changed: %d live", len(snap))
	})
	history := transcript.Load(kv)
	staging := export.NewStaging()
	registry := tools.New(tasks, staging)

	timeout := 60 * time.Second
	if v := os.Getenv("MODEL_TIMEOUT"); v != "" {
		if d, perr := time.ParseDuration(v); perr == nil && d > 0 {
			timeout = d
		}
	}

	loop := &orchestrator.Loop{
		Model:    gemini.NewFromEnv(context.Background(), registry.Declarations()),
		Registry: registry,
		Log:      history,
		Timeout:  timeout,
	}

	mux := http.NewServeMux()
	srv := &api.Server{Loop: loop, Tasks: tasks, Staging: staging}
	srv.RegisterRoutes(mux)

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}
	log.Printf("server listening on %s", addr)
	if err := http.ListenAndServe(addr, cors(mux)); err != nil {
		log.Fatal(err)
	}
}

// simple CORS middleware for local dev
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
