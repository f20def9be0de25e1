// Package serve hosts the local HTTP viewer for analysis output.
package serve

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/engramdev/engram/internal/contract"
)

//go:embed viewer.html
var viewerHTML []byte

// Server republishes a directory of analysis output for browser viewing.
// It binds to loopback only.
type Server struct {
	cfg        *contract.Config
	cache      *dataCache
	httpServer *http.Server
}

// NewServer builds the viewer server and verifies the serve directory holds
// loadable data, so a bad directory fails at startup rather than on the
// first request.
func NewServer(cfg *contract.Config) (*Server, error) {
	cache, err := newDataCache()
	if err != nil {
		return nil, err
	}
	if _, err := cache.Load(cfg.ServeDir); err != nil {
		cache.Close()
		return nil, err
	}

	s := &Server{cfg: cfg, cache: cache}
	s.httpServer = &http.Server{
		Addr:    "127.0.0.1:" + strconv.Itoa(cfg.ServePort),
		Handler: s.Handler(),
	}
	return s, nil
}

// Handler routes the viewer page and the data API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleViewer)
	mux.HandleFunc("/api/data", s.handleData)
	return mux
}

// URL is the address the viewer is reachable at.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.cfg.ServePort)
}

// Start serves until the context is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.cache.Close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.httpServer.Shutdown(shutdownCtx)
	s.cache.Close()
	if serveErr := <-errCh; serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		return serveErr
	}
	return err
}

func (s *Server) handleViewer(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(viewerHTML)))
	w.Write(viewerHTML)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	data, err := s.cache.Load(s.cfg.ServeDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	content, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Write(content)
}
