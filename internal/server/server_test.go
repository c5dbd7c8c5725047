package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"TradeCraft/internal/cache"
	"TradeCraft/internal/collector"
	"TradeCraft/internal/dashboard"
	"TradeCraft/internal/metrics"
	"TradeCraft/internal/prefs"
	"TradeCraft/internal/recorder"
	"TradeCraft/internal/symbol"
	"TradeCraft/internal/widget"
	"TradeCraft/internal/youtube"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	log := zap.NewNop()
	m := metrics.NewMetrics()
	store := symbol.NewStore("")
	mock := &collector.MockFetcher{Price: 22500}

	rec, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "h.db"), log)
	if err != nil {
		t.Fatalf("recorder: %v", err)
	}
	t.Cleanup(func() { rec.Close() })

	kv, err := prefs.Open(filepath.Join(t.TempDir(), "prefs.json"))
	if err != nil {
		t.Fatalf("prefs: %v", err)
	}

	hub := NewHub(m, log)
	d := dashboard.New(collector.NewCollector(mock, log), store, cache.NewMemoryCache(), rec, m, log)
	d.OnSnapshot(hub.PublishSnapshot)

	s := &Server{
		Dashboard:   d,
		Checkpoints: dashboard.NewCheckpointBoard(mock, rec, log),
		Symbols:     store,
		Feed:        youtube.NewFeed(youtube.NewClient("", "", "", "", log, m), 6),
		Poll:        widget.RestorePoll(widget.DefaultPollOptions, kv),
		Form:        widget.NewMessageForm(5 * time.Millisecond),
		Recorder:    rec,
		Cache:       cache.NewMemoryCache(),
		Hub:         hub,
		Metrics:     m,
		Logger:      log,
	}
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(func() {
		hub.Close()
		ts.Close()
	})
	return s, ts
}

func do(t *testing.T, method, url string, body io.Reader) (*http.Response, map[string]any) {
	t.Helper()
	req, _ := http.NewRequest(method, url, body)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	var out map[string]any
	json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestDashboardRefreshAndHistory(t *testing.T) {
	_, ts := newTestServer(t)

	resp, out := do(t, http.MethodPost, ts.URL+"/api/dashboard/refresh", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if out["snapshot"] == nil || out["badge"] == nil {
		t.Errorf("expected snapshot and badge, got %v", out)
	}

	resp, err := http.Get(ts.URL + "/api/history?limit=5")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var rows []recorder.SnapshotRow
	json.NewDecoder(resp.Body).Decode(&rows)
	if len(rows) != 1 || rows[0].Symbol != "^NSEI" {
		t.Errorf("expected one history row, got %+v", rows)
	}
}

func TestSymbolRoutes(t *testing.T) {
	s, ts := newTestServer(t)

	resp, _ := do(t, http.MethodPut, ts.URL+"/api/symbol?symbol=AAPL", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown symbol, got %d", resp.StatusCode)
	}
	resp, out := do(t, http.MethodPut, ts.URL+"/api/symbol?symbol=%5EBSESN", nil)
	if resp.StatusCode != http.StatusOK || out["changed"] != true {
		t.Errorf("unexpected response %d %v", resp.StatusCode, out)
	}
	if s.Symbols.Selected() != "^BSESN" {
		t.Errorf("symbol not switched: %s", s.Symbols.Selected())
	}
	_, out = do(t, http.MethodGet, ts.URL+"/api/symbol", nil)
	if out["name"] != "SENSEX" {
		t.Errorf("unexpected symbol %v", out)
	}
}

func TestPollRoutes(t *testing.T) {
	_, ts := newTestServer(t)

	_, out := do(t, http.MethodGet, ts.URL+"/api/poll", nil)
	if out["show_results"] != false {
		t.Errorf("results should be hidden: %v", out)
	}
	resp, out := do(t, http.MethodPost, ts.URL+"/api/poll/vote?option=2", nil)
	if resp.StatusCode != http.StatusOK || out["changed"] != true {
		t.Errorf("unexpected vote response %d %v", resp.StatusCode, out)
	}
	_, out = do(t, http.MethodPost, ts.URL+"/api/poll/vote?option=2", nil)
	if out["changed"] != false {
		t.Errorf("repeat vote should not change: %v", out)
	}
	resp, _ = do(t, http.MethodPost, ts.URL+"/api/poll/vote?option=9", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestContactRoutes(t *testing.T) {
	_, ts := newTestServer(t)
	body := `{"name":"Asha","email":"asha@example.com","message":"Hi"}`

	resp, out := do(t, http.MethodPost, ts.URL+"/api/contact", strings.NewReader(body))
	if resp.StatusCode != http.StatusOK || out["state"] != "sent" || out["receipt"] == "" {
		t.Fatalf("unexpected response %d %v", resp.StatusCode, out)
	}
	resp, _ = do(t, http.MethodPost, ts.URL+"/api/contact", strings.NewReader(body))
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 on second send, got %d", resp.StatusCode)
	}
	_, out = do(t, http.MethodDelete, ts.URL+"/api/contact", nil)
	if out["state"] != "idle" {
		t.Errorf("reset should return to idle: %v", out)
	}
	resp, _ = do(t, http.MethodPost, ts.URL+"/api/contact", bytes.NewReader([]byte(`{"name":""}`)))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid message, got %d", resp.StatusCode)
	}
}

func TestVideoRoutes(t *testing.T) {
	_, ts := newTestServer(t)

	_, out := do(t, http.MethodGet, ts.URL+"/api/channel", nil)
	if out["used_fallback"] != true {
		t.Errorf("unconfigured channel should fall back: %v", out)
	}

	resp, err := http.Get(ts.URL + "/api/videos?max=2")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var videos []map[string]any
	json.NewDecoder(resp.Body).Decode(&videos)
	if len(videos) != 2 {
		t.Errorf("expected 2 videos, got %d", len(videos))
	}
}

func TestCheckpointRoutes(t *testing.T) {
	s, ts := newTestServer(t)

	resp, _ := do(t, http.MethodPut, ts.URL+"/api/checkpoints/tab?symbol=%5EBSESN", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
	resp, out := do(t, http.MethodPut, ts.URL+"/api/checkpoints/tab?symbol=%5ENSEBANK", nil)
	if resp.StatusCode != http.StatusOK || out["symbol"] != "^NSEBANK" {
		t.Errorf("unexpected response %d %v", resp.StatusCode, out)
	}
	s.Checkpoints.Refresh(context.Background())
	_, out = do(t, http.MethodGet, ts.URL+"/api/checkpoints", nil)
	if out["populated"] != float64(2) || out["total"] != float64(7) {
		t.Errorf("unexpected board %v", out)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	_, ts := newTestServer(t)

	_, out := do(t, http.MethodGet, ts.URL+"/healthz", nil)
	if out["status"] != "ok" || out["cache"] != "up" {
		t.Errorf("unexpected health %v", out)
	}

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "tradecraft_ws_clients") {
		t.Error("metrics output missing tradecraft_ws_clients")
	}
}

func TestCORSPreflight(t *testing.T) {
	_, ts := newTestServer(t)
	resp, _ := do(t, http.MethodOptions, ts.URL+"/api/dashboard", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestWebSocketPush(t *testing.T) {
	s, ts := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(time.Second)
	for s.Hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	if err := s.Dashboard.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var env struct {
		Type string         `json:"type"`
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(msg, &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Type != "snapshot" || env.Data["symbol"] != "^NSEI" {
		t.Errorf("unexpected envelope %s", msg)
	}
}
