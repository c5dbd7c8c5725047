package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"TradeCraft/internal/cache"
	"TradeCraft/internal/dashboard"
	"TradeCraft/internal/metrics"
	"TradeCraft/internal/recorder"
	"TradeCraft/internal/symbol"
	"TradeCraft/internal/widget"
	"TradeCraft/internal/youtube"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server exposes the dashboard, video feed and widgets over HTTP.
type Server struct {
	Dashboard   *dashboard.Dashboard
	Checkpoints *dashboard.CheckpointBoard
	Symbols     *symbol.Store
	Feed        *youtube.Feed
	Poll        *widget.Poll
	Form        *widget.MessageForm
	Recorder    recorder.Recorder
	Cache       cache.Cache
	Hub         *Hub
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("POST /api/dashboard/refresh", s.handleRefresh)
	mux.HandleFunc("GET /api/symbol", s.handleGetSymbol)
	mux.HandleFunc("PUT /api/symbol", s.handleSetSymbol)
	mux.HandleFunc("GET /api/indices", s.handleIndices)
	mux.HandleFunc("GET /api/checkpoints", s.handleCheckpoints)
	mux.HandleFunc("PUT /api/checkpoints/tab", s.handleCheckpointTab)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /api/channel", s.handleChannel)
	mux.HandleFunc("GET /api/videos", s.handleVideos)
	mux.HandleFunc("GET /api/poll", s.handlePoll)
	mux.HandleFunc("POST /api/poll/vote", s.handleVote)
	mux.HandleFunc("POST /api/contact", s.handleContact)
	mux.HandleFunc("DELETE /api/contact", s.handleContactReset)
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.Metrics != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.Metrics.Registry, promhttp.HandlerOpts{}))
	}
	return withCORS(mux)
}

// withCORS sets CORS headers and answers preflight requests.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Dashboard.View())
}

// handleRefresh always answers with the resulting view; a failed refresh
// shows up as its error banner.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.Dashboard.Refresh(r.Context()); err != nil {
		s.Logger.Debug("manual refresh failed", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, s.Dashboard.View())
}

func (s *Server) handleGetSymbol(w http.ResponseWriter, r *http.Request) {
	sym := s.Symbols.Selected()
	idx, _ := symbol.Lookup(sym)
	writeJSON(w, http.StatusOK, idx)
}

func (s *Server) handleSetSymbol(w http.ResponseWriter, r *http.Request) {
	sym := r.URL.Query().Get("symbol")
	changed, err := s.Symbols.Select(sym)
	if errors.Is(err, symbol.ErrUnknown) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	idx, _ := symbol.Lookup(sym)
	writeJSON(w, http.StatusOK, map[string]any{"index": idx, "changed": changed})
}

func (s *Server) handleIndices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, symbol.Indices)
}

func (s *Server) handleCheckpoints(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Checkpoints.View())
}

func (s *Server) handleCheckpointTab(w http.ResponseWriter, r *http.Request) {
	if err := s.Checkpoints.SetTab(r.URL.Query().Get("symbol")); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	// Fill the new tab in the background so the response is immediate.
	go s.Checkpoints.Refresh(context.WithoutCancel(r.Context()))
	writeJSON(w, http.StatusOK, s.Checkpoints.View())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sym := r.URL.Query().Get("symbol")
	if sym == "" {
		sym = s.Symbols.Selected()
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := s.Recorder.Recent(sym, limit)
	if err != nil {
		s.Logger.Error("read history", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	if rows == nil {
		rows = []recorder.SnapshotRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleChannel(w http.ResponseWriter, r *http.Request) {
	st := s.Feed.State(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"stats": st.Stats, "used_fallback": st.UsedFallback})
}

func (s *Server) handleVideos(w http.ResponseWriter, r *http.Request) {
	n, _ := strconv.Atoi(r.URL.Query().Get("max"))
	writeJSON(w, http.StatusOK, s.Feed.Videos(r.Context(), n))
}

func (s *Server) handlePoll(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Poll.View())
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("option"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "option must be a number")
		return
	}
	changed, err := s.Poll.Vote(id)
	if errors.Is(err, widget.ErrUnknownOption) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		// The vote counts even if it could not be remembered.
		s.Logger.Warn("persist poll vote", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, map[string]any{"changed": changed, "poll": s.Poll.View()})
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var msg widget.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	receipt, err := s.Form.Send(r.Context(), msg)
	switch {
	case errors.Is(err, widget.ErrInvalidMessage):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, widget.ErrBusy):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusRequestTimeout, err.Error())
		return
	}
	state, _ := s.Form.State()
	writeJSON(w, http.StatusOK, map[string]any{"state": state, "receipt": receipt})
}

func (s *Server) handleContactReset(w http.ResponseWriter, r *http.Request) {
	s.Form.Reset()
	state, _ := s.Form.State()
	writeJSON(w, http.StatusOK, map[string]any{"state": state})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Logger.Warn("ws upgrade", zap.Error(err))
		return
	}
	s.Hub.serve(conn)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]any{"status": "ok", "symbol": s.Symbols.Selected()}
	if s.Cache != nil {
		status["cache"] = s.Cache.Ping(ctx)
	}
	if s.Hub != nil {
		status["ws_clients"] = s.Hub.ClientCount()
	}
	if v := s.Dashboard.View(); !v.LastRefresh.IsZero() {
		status["last_refresh"] = v.LastRefresh
	}
	writeJSON(w, http.StatusOK, status)
}
