package admin

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"skyhunter/internal/logging"
	"skyhunter/internal/powerup"
	"skyhunter/internal/sim"
)

// Server is a small control panel for a running session.
type Server struct {
	Sim *sim.Simulator
	tpl *template.Template
	mux *http.ServeMux
}

//go:embed templates/index.html
var content embed.FS

func NewServer(sim *sim.Simulator) *Server {
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	s := &Server{Sim: sim, tpl: tpl, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/stats", s.handleStats)
	s.mux.HandleFunc("/enemies", s.handleEnemies)
	s.mux.HandleFunc("/events", s.handleEvents)
	s.mux.HandleFunc("/toggle-pause", s.handleTogglePause)
	s.mux.HandleFunc("/restart", s.handleRestart)
	s.mux.HandleFunc("/powerup", s.handlePowerUp)
	s.mux.HandleFunc("/spawn-formation", s.handleSpawnFormation)
}

// Handler exposes the routes, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.mux }

// Start serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	log := logging.FromContext(ctx)
	srv := &http.Server{Addr: addr, Handler: s.mux, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		log.Info("admin UI listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info("admin UI shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data := struct {
		Stats      any
		Ruleset    any
		Enemies    any
		Formations sim.FormationSummary
		PowerUps   []powerup.Type
		Active     powerup.Active
		Events     []sim.Event
	}{
		Stats:      s.Sim.Snapshot(),
		Ruleset:    s.Sim.Ruleset(),
		Enemies:    s.Sim.Enemies(),
		Formations: s.Sim.Formations(),
		PowerUps:   powerup.Types,
		Active:     s.Sim.ActivePowerUps(),
		Events:     s.Sim.RecentEvents(),
	}
	if err := s.tpl.Execute(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Sim.Snapshot())
}

func (s *Server) handleEnemies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Sim.Enemies())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Sim.RecentEvents())
}

func (s *Server) handleTogglePause(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	state := s.Sim.TogglePause()
	writeJSON(w, http.StatusOK, map[string]any{"state": state.String()})
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.Sim.Restart()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePowerUp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	t, err := powerup.Parse(r.URL.Query().Get("type"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}
	s.Sim.GrantPowerUp(t)
	writeJSON(w, http.StatusOK, s.Sim.ActivePowerUps())
}

func (s *Server) handleSpawnFormation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, err := s.Sim.SpawnFormation()
	if err != nil {
		writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"leader_id": id})
}
