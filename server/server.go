// Package server exposes a mapper session over HTTP. Settings changes are
// pushed to websocket clients on /events.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/seqsense/scaffoldmapper/logx"
	"github.com/seqsense/scaffoldmapper/mapper"
	"github.com/seqsense/scaffoldmapper/scaffold"
)

type Options struct {
	// TranslationRate is used when a translate request has no rate.
	TranslationRate float64
	// AccessLog receives one line per request in Apache common log format.
	// nil disables it.
	AccessLog io.Writer
}

// Server serializes all access to the mapper.
type Server struct {
	mu     sync.Mutex
	mapper *mapper.Mapper
	opts   Options
	hub    *hub
	router *mux.Router

	upgrader websocket.Upgrader
}

// New takes over the settings listener of m.
func New(m *mapper.Mapper, opts Options) *Server {
	if opts.TranslationRate <= 0 {
		opts.TranslationRate = 1
	}
	s := &Server{
		mapper: m,
		opts:   opts,
		hub:    newHub(),
	}
	m.SetSettingsListener(s)

	r := mux.NewRouter()
	r.HandleFunc("/settings", s.handleSettings).Methods(http.MethodGet)
	r.HandleFunc("/rotate/{axis}", s.handleRotate).Methods(http.MethodPost)
	r.HandleFunc("/translate/{axis}", s.handleTranslate).Methods(http.MethodPost)
	r.HandleFunc("/reset", s.handleReset).Methods(http.MethodPost)
	r.HandleFunc("/undo", s.handleUndo).Methods(http.MethodPost)
	r.HandleFunc("/scene", s.handleScene).Methods(http.MethodGet)
	r.HandleFunc("/export.gltf", s.handleExport).Methods(http.MethodGet)
	r.HandleFunc("/events", s.handleEvents)
	s.router = r
	return s
}

// SettingsChanged is called by the mapper with s.mu held.
func (s *Server) SettingsChanged() {
	msg, err := json.Marshal(s.mapper.Settings())
	if err != nil {
		logx.Logger().Error("marshaling settings", "error", err)
		return
	}
	s.hub.broadcast(msg)
}

func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	if s.opts.AccessLog != nil {
		h = handlers.LoggingHandler(s.opts.AccessLog, h)
	}
	return handlers.RecoveryHandler()(h)
}

// ListenAndServe serves on addr until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logx.Logger().Info("starting server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.hub.close()
		return err
	case <-ctx.Done():
	}
	s.hub.close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

// Close disconnects websocket clients.
func (s *Server) Close() {
	s.hub.close()
}

type result struct {
	OK       bool            `json:"ok"`
	Settings mapper.Settings `json:"settings"`
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, s.mapper.Settings())
}

func (s *Server) handleRotate(w http.ResponseWriter, r *http.Request) {
	axis, err := scaffold.ParseRotationAxis(mux.Vars(r)["axis"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	value, err := floatParam(r, "value", nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ok, err := s.mapper.Rotate(axis, value)
	s.writeResult(w, ok, err)
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	axis, err := scaffold.ParseTranslationAxis(mux.Vars(r)["axis"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	value, err := floatParam(r, "value", nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rate, err := floatParam(r, "rate", &s.opts.TranslationRate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ok, err := s.mapper.Translate(axis, value, rate)
	s.writeResult(w, ok, err)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.mapper.Reset()
	s.writeResult(w, err == nil, err)
}

var errNothingToUndo = errors.New("nothing to undo")

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	undone, err := s.mapper.Undo()
	switch {
	case errors.Is(err, mapper.ErrIncomplete):
		s.writeResult(w, false, nil)
	case err == nil && !undone:
		writeError(w, http.StatusConflict, errNothingToUndo)
	default:
		s.writeResult(w, true, err)
	}
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, err := s.mapper.Scene()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, sc)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var buf bytes.Buffer
	if err := s.mapper.ExportGLTF(&buf); err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	w.Header().Set("Content-Type", "model/gltf-binary")
	w.Header().Set("Content-Disposition", `attachment; filename="scaffold.glb"`)
	writeResult(w, buf.Bytes())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logx.Logger().Debug("websocket upgrade failed", "error", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, err := json.Marshal(s.mapper.Settings())
	if err != nil {
		conn.Close()
		return
	}
	s.hub.serve(conn, msg)
}

// writeResult must be called with s.mu held.
func (s *Server) writeResult(w http.ResponseWriter, ok bool, err error) {
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	writeJSON(w, result{OK: ok, Settings: s.mapper.Settings()})
}

func statusOf(err error) int {
	if errors.Is(err, mapper.ErrNotLoaded) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func floatParam(r *http.Request, name string, def *float64) (float64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		if def != nil {
			return *def, nil
		}
		return 0, errors.Errorf("missing parameter %q", name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parameter %q", name)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	writeResult(w, data)
}

func writeResult(w http.ResponseWriter, data []byte) {
	if _, err := w.Write(data); err != nil {
		logx.Logger().Debug("writing response", "error", err)
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	type jError struct {
		Error string `json:"error"`
	}
	data, _ := json.Marshal(&jError{Error: err.Error()})
	logx.Logger().Warn("request failed", "status", code, "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	writeResult(w, data)
}
