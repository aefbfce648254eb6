// Package web serves the interactive control panel for a city session: sliders
// for the growth dials, run and reset buttons, and live updates over a
// websocket.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"citygrowth/internal/monitoring"
	"citygrowth/internal/sims/city"
	"citygrowth/internal/sink"
)

// maxBodyBytes bounds configuration request bodies.
const maxBodyBytes = 64 << 10

// Status describes the hosted session.
type Status struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	State      string       `json:"state"`
	StepsTaken int          `json:"steps_taken"`
	Config     city.Config  `json:"config"`
	Metrics    city.Metrics `json:"metrics"`
}

// Server hosts a single city session behind an HTTP control panel. Handlers
// run concurrently, so every access to the session holds mu.
type Server struct {
	mu      sync.Mutex
	id      uuid.UUID
	cfg     city.Config
	session *city.Session
	sink    city.Sink

	// title names the grid the last run left behind.
	title string

	hub *hub
	// newSeed picks the seed for resets that do not name one.
	newSeed func() int64
}

// New returns a server whose session is seeded from cfg. out, when not nil,
// additionally receives every run, e.g. file sinks selected on the command line.
func New(cfg city.Config, out city.Sink) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Server{
		cfg:     cfg,
		sink:    out,
		hub:     newHub(),
		newSeed: func() int64 { return time.Now().UnixNano() },
	}
	if err := s.restart(); err != nil {
		return nil, err
	}
	return s, nil
}

// restart discards the session and seeds a fresh one under a new handle.
func (s *Server) restart() error {
	session := city.NewSession(s.sink)
	if err := session.Reset(s.cfg); err != nil {
		return err
	}
	s.id = uuid.New()
	s.session = session
	s.title = "After 0 steps"
	monitoring.Logf("web: session %s started", s.id)
	return nil
}

// SessionID returns the handle of the current session.
func (s *Server) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id.String()
}

// Handler returns the routes of the control panel.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.serveIndex)
	mux.HandleFunc("GET /api/session", s.handleStatus)
	mux.HandleFunc("POST /api/session/run", s.handleRun)
	mux.HandleFunc("POST /api/session/reset", s.handleReset)
	mux.HandleFunc("POST /api/session/restart", s.handleRestart)
	mux.HandleFunc("GET /api/session/surface", s.handleSurface)
	mux.HandleFunc("GET /api/session/heatmap.png", s.handleHeatmap)
	mux.HandleFunc("GET /api/controls", s.handleControls)
	mux.HandleFunc("GET /ws", s.serveWebsocket)
	return mux
}

// ListenAndServe serves the control panel on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), closeGracePeriod)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	monitoring.Logf("web: control panel listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve %s: %w", addr, err)
	}
	return nil
}

func (s *Server) statusLocked() Status {
	return Status{
		ID:         s.id.String(),
		Title:      s.title,
		State:      s.session.State().String(),
		StepsTaken: s.session.StepsTaken(),
		Config:     s.cfg,
		Metrics:    s.session.Metrics(),
	}
}

func (s *Server) status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.status())
}

func (s *Server) handleControls(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, city.PanelControls())
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, frame, err := s.run(body)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.hub.publish(frame)
	writeJSON(w, http.StatusOK, res)
}

// run steps the session with the dials in body. Size, seed and the initial
// amounts only take effect on reset, so only the dials are kept.
func (s *Server) run(body []byte) (city.RunResult, Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, err := decodeConfig(body, s.cfg)
	if err != nil {
		return city.RunResult{}, Frame{}, err
	}
	res, err := s.session.RunSteps(cfg)
	if err != nil {
		return city.RunResult{}, Frame{}, err
	}
	s.cfg.Params.GrowthRate = cfg.Params.GrowthRate
	s.cfg.Params.MaxHeight = cfg.Params.MaxHeight
	s.cfg.Params.ParkProbability = cfg.Params.ParkProbability
	s.cfg.Params.StepCount = cfg.Params.StepCount
	s.cfg.Params.NearRoadBonus = cfg.Params.NearRoadBonus
	s.title = res.Title
	return res, newFrame(s.id.String(), res), nil
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	st, frame, err := s.reset(body)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.hub.publish(frame)
	writeJSON(w, http.StatusOK, st)
}

// reset reseeds the session from body. A body without a seed gets a fresh one.
func (s *Server) reset(body []byte) (Status, Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	base := s.cfg
	base.Seed = 0
	cfg, err := decodeConfig(body, base)
	if err != nil {
		return Status{}, Frame{}, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = s.newSeed()
	}
	if err := s.session.Reset(cfg); err != nil {
		return Status{}, Frame{}, err
	}
	s.cfg = cfg
	s.title = "After 0 steps"
	return s.statusLocked(), s.snapshotLocked(), nil
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	st, frame, err := s.restartSession()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.hub.publish(frame)
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) restartSession() (Status, Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.restart(); err != nil {
		return Status{}, Frame{}, err
	}
	return s.statusLocked(), s.snapshotLocked(), nil
}

func (s *Server) currentHeights() (string, [][]int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title, s.session.Grid().Heights(), s.session.Config().Params.MaxHeight
}

func (s *Server) handleSurface(w http.ResponseWriter, r *http.Request) {
	title, heights, maxHeight := s.currentHeights()
	var buf bytes.Buffer
	if err := sink.WriteSurface(&buf, title, heights, maxHeight); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	title, heights, maxHeight := s.currentHeights()
	var buf bytes.Buffer
	if err := sink.WriteHeatmap(&buf, title, heights, maxHeight); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

// readBody reads a configuration request body, rejecting oversized ones.
func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("body exceeds %d bytes", maxBodyBytes)
	}
	return body, nil
}

// decodeConfig overlays the JSON body onto base. An empty body keeps base
// unchanged.
func decodeConfig(body []byte, base city.Config) (city.Config, error) {
	cfg := base
	if len(bytes.TrimSpace(body)) == 0 {
		return cfg, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return base, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		monitoring.Logf("web: encode response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
