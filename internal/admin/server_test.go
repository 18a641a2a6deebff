package admin

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"skyhunter/internal/config"
	"skyhunter/internal/game"
	"skyhunter/internal/logging"
	"skyhunter/internal/sim"
	"skyhunter/internal/telemetry"
)

func newTestServer(t *testing.T) (*Server, *sim.Simulator) {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 3
	disabled := false
	cfg.Enemies.Enabled = &disabled
	simulator, err := sim.NewSimulator("test-session", cfg, nil, nil, time.Second, logging.Discard())
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return NewServer(simulator), simulator
}

func do(s *Server, method, target string) *http.Response {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w.Result()
}

func TestHandleTogglePause(t *testing.T) {
	server, simulator := newTestServer(t)

	resp := do(server, http.MethodPost, "/toggle-pause")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if body["state"] != "paused" || simulator.State() != game.Paused {
		t.Fatalf("expected paused, got %v", body)
	}

	do(server, http.MethodPost, "/toggle-pause")
	if simulator.State() != game.Playing {
		t.Fatalf("expected playing after second toggle")
	}

	if resp := do(server, http.MethodGet, "/toggle-pause"); resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("GET should be rejected, got %v", resp.StatusCode)
	}
}

func TestHandleSpawnFormation(t *testing.T) {
	server, simulator := newTestServer(t)

	resp := do(server, http.MethodPost, "/spawn-formation")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status Created, got %v", resp.StatusCode)
	}
	if n := len(simulator.Enemies()); n != 3 {
		t.Fatalf("expected 3 enemies, got %d", n)
	}
	if resp := do(server, http.MethodPost, "/spawn-formation"); resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected conflict at cap, got %v", resp.StatusCode)
	}
}

func TestHandleEnemies(t *testing.T) {
	server, _ := newTestServer(t)
	do(server, http.MethodPost, "/spawn-formation")

	resp := do(server, http.MethodGet, "/enemies")
	var rows []telemetry.EnemyRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	leaders := 0
	for _, r := range rows {
		if r.Role == "leader" {
			leaders++
		}
	}
	if len(rows) != 3 || leaders != 1 {
		t.Fatalf("unexpected enemies: %+v", rows)
	}
}

func TestHandlePowerUp(t *testing.T) {
	server, simulator := newTestServer(t)

	if resp := do(server, http.MethodPost, "/powerup?type=shield"); resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	if !simulator.ActivePowerUps().Shield {
		t.Fatalf("shield not granted")
	}
	if resp := do(server, http.MethodPost, "/powerup?type=jetpack"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %v", resp.StatusCode)
	}
}

func TestHandleStatsAndEvents(t *testing.T) {
	server, _ := newTestServer(t)
	do(server, http.MethodPost, "/toggle-pause")

	var row telemetry.StatsRow
	if err := json.NewDecoder(do(server, http.MethodGet, "/stats").Body).Decode(&row); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if row.Session != "test-session" || row.State != "paused" {
		t.Fatalf("unexpected stats: %+v", row)
	}

	var events []sim.Event
	if err := json.NewDecoder(do(server, http.MethodGet, "/events").Body).Decode(&events); err != nil {
		t.Fatalf("decode events: %v", err)
	}
	if len(events) == 0 || events[len(events)-1].Type != "state" {
		t.Fatalf("pause not in event log: %+v", events)
	}
}

func TestHandleIndex(t *testing.T) {
	server, _ := newTestServer(t)
	resp := do(server, http.MethodGet, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Free Play") {
		t.Fatalf("index missing ruleset name")
	}
	if resp := do(server, http.MethodGet, "/nope"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", resp.StatusCode)
	}
}
