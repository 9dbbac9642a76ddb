package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
	"github.com/custodia-labs/qsc-search/internal/core/faceted"
	"github.com/custodia-labs/qsc-search/internal/core/interaction"
	"github.com/custodia-labs/qsc-search/internal/logger"
)

//go:embed templates/page.html
var pageTemplate string

// Server renders the results page and answers suggestion requests.
type Server struct {
	ports *Ports
	tmpl  *template.Template

	mu       sync.RWMutex
	settings domain.Settings
}

// NewServer creates a web server with the given ports and settings.
func NewServer(ports *Ports, settings domain.Settings) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Server{ports: ports, tmpl: tmpl, settings: settings}, nil
}

// SetSettings applies reloaded settings to subsequent requests.
func (s *Server) SetSettings(settings domain.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

func (s *Server) currentSettings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("GET /api/suggest", s.handleSuggest)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// Serve listens on addr until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("web: shutdown: %v", err)
		}
	}()

	logger.Info("web: listening on http://%s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Render writes the page shell without touching the backend.
func (s *Server) Render(w io.Writer) error {
	page := faceted.NewPage(nil, nil, 0)
	page.SyncState(faceted.State{Page: 1})
	data := buildPage(page, nil)
	data.Widget = newWidgetConfig(s.currentSettings().Widget)
	return s.tmpl.Execute(w, data)
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.Render(w); err != nil {
		logger.Warn("web: rendering shell: %v", err)
	}
}

// handleSearch renders the faceted page for the request URL. A failed fetch
// renders the empty results state.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	settings := s.currentSettings()
	page := faceted.NewPage(nil, s.ports.Search.ExtraParameters(), settings.Page.FacetVisibleLimit)

	if req, ok := page.SyncState(faceted.Parse(r.URL.RawQuery)); ok {
		result, err := s.ports.Search.Page(r.Context(), req.Params)
		page.Complete(faceted.Response{Epoch: req.Epoch, Result: result, Err: err})
		if err == nil {
			s.record(r.Context(), req.State.Query, result)
		}
	}

	expanded := r.URL.Query()[paramExpand]
	for _, id := range expanded {
		page.ToggleExpanded(id)
	}

	data := buildPage(page, expanded)
	data.Widget = newWidgetConfig(settings.Widget)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		logger.Warn("web: rendering results: %v", err)
	}
}

type suggestResponse struct {
	Candidates []candidateJSON `json:"candidates"`
}

type candidateJSON struct {
	Kind        string        `json:"kind"`
	Text        string        `json:"text"`
	Highlighted template.HTML `json:"highlighted"`
	URL         string        `json:"url,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleSuggest proxies the widget's candidate fetch. Queries below the
// minimum length get an empty list without a backend call.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	settings := s.currentSettings()
	q := r.URL.Query().Get("q")

	resp := suggestResponse{Candidates: []candidateJSON{}}
	if !interaction.Eligible(q, settings.Widget.MinQueryLength) {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	candidates, err := s.ports.Search.Candidates(r.Context(), q)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: interaction.FailedMessage})
		return
	}

	for _, c := range candidates {
		resp.Candidates = append(resp.Candidates, candidateJSON{
			Kind:        c.Kind.String(),
			Text:        c.DisplayText,
			Highlighted: highlightPolicyHTML(settings.Widget.HighlightPolicy, q, c.DisplayText),
			URL:         c.TargetURL,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) record(ctx context.Context, query string, result *domain.ResultPage) {
	if s.ports.History == nil {
		return
	}
	total := 0
	if result != nil {
		total = result.Total
	}
	if err := s.ports.History.Record(ctx, query, domain.QuerySourcePage, total); err != nil {
		logger.Warn("web: recording history: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("web: encoding JSON response: %v", err)
	}
}
