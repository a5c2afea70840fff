package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/MJE43/idle-mine-go/internal/catalog"
	"github.com/MJE43/idle-mine-go/internal/game"
	"github.com/MJE43/idle-mine-go/internal/store"
)

func testSnapshot(t *testing.T) game.Snapshot {
	t.Helper()
	up, err := catalog.ByIndex(3)
	if err != nil {
		t.Fatal(err)
	}
	e := game.NewEngine(up, time.Unix(0, 0))
	e.ApplyAction()
	return e.Snapshot(time.Unix(10, 0))
}

func TestHealthEndpoint(t *testing.T) {
	srv := NewServer(&StateBuffer{}, nil)
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	srv.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /health status = %d, want 200", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("health response is not JSON: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("health status = %v, want healthy", body["status"])
	}
}

func TestStateEndpoint(t *testing.T) {
	buf := &StateBuffer{}
	srv := NewServer(buf, nil)

	// No snapshot published yet.
	w := httptest.NewRecorder()
	srv.Routes().ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/state", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /api/v1/state before publish status = %d, want 404", w.Code)
	}

	buf.Publish(testSnapshot(t))

	w = httptest.NewRecorder()
	srv.Routes().ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/state", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/state status = %d, want 200", w.Code)
	}

	var snap game.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("state response is not a snapshot: %v", err)
	}
	if snap.Presses != 1 {
		t.Errorf("snapshot presses = %d, want 1", snap.Presses)
	}
	if snap.Upgrade.Name != "Drill" {
		t.Errorf("snapshot upgrade = %q, want Drill", snap.Upgrade.Name)
	}
	if snap.BoostSecondsLeft != -1 {
		t.Errorf("snapshot boost seconds left = %v, want -1 (no boost)", snap.BoostSecondsLeft)
	}
}

func TestSavesEndpoint(t *testing.T) {
	// Without a database the endpoint reports not-found.
	srv := NewServer(&StateBuffer{}, nil)
	w := httptest.NewRecorder()
	srv.Routes().ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/saves", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /api/v1/saves without db status = %d, want 404", w.Code)
	}

	slots, err := store.Open(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer slots.Close()
	if _, err := slots.Put(context.Background(), store.Slot{Label: "run", Code: "c", Upgrade: "Pickaxe"}); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	srv = NewServer(&StateBuffer{}, slots)
	w = httptest.NewRecorder()
	srv.Routes().ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/saves", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/saves status = %d, want 200", w.Code)
	}

	var body struct {
		Saves []store.Slot `json:"saves"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("saves response is not JSON: %v", err)
	}
	if len(body.Saves) != 1 || body.Saves[0].Label != "run" {
		t.Errorf("saves = %+v, want one slot labelled \"run\"", body.Saves)
	}
}
