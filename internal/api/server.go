package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/example/maintenance-agent/internal/export"
	"github.com/example/maintenance-agent/internal/models"
	"github.com/example/maintenance-agent/internal/orchestrator"
	"github.com/example/maintenance-agent/internal/store"
)

// Server is the UI-facing surface: a message-send entry point, read
// accessors for the dashboard and the chat log, and the staged downloads.
type Server struct {
	Loop    *orchestrator.Loop
	Tasks   *store.Store
	Staging *export.Staging
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			respondJSON(w, s.Loop.Log.ChatMessages())
		case http.MethodPost:
			var req struct {
				Message string `json:"message"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if err := s.Loop.Send(r.Context(), req.Message); err != nil {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var filter *models.TaskStatus
		if v := r.URL.Query().Get("status"); v != "" {
			if !models.ValidStatus(v) {
				http.Error(w, "unknown status: "+v, http.StatusBadRequest)
				return
			}
			st := models.TaskStatus(v)
			filter = &st
		}
		respondJSON(w, s.Tasks.List(filter))
	})

	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		respondJSON(w, map[string]bool{"loading": s.Loop.Busy()})
	})

	mux.HandleFunc("/download/", func(w http.ResponseWriter, r *http.Request) {
		// path: /download/{filename}
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		name := strings.TrimPrefix(r.URL.Path, "/download/")
		content, ok := s.Staging.Get(name)
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		w.Write(content)
	})
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}
