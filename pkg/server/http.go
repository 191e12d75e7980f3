package server

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/prefixserve/prefixserve/internal/logger"
	"github.com/prefixserve/prefixserve/pkg/config"
	"github.com/prefixserve/prefixserve/pkg/index"
	"github.com/prefixserve/prefixserve/pkg/ratelimit"
)

// HTTPServer serves suggestion queries over plain net/http.
type HTTPServer struct {
	index   *index.Index
	limiter *ratelimit.Limiter
	cfg     config.ServerConfig
	log     *log.Logger
}

// NewHTTPServer wires the built index and limiter into an HTTP surface.
// The index must be fully built before the first request arrives.
func NewHTTPServer(ix *index.Index, limiter *ratelimit.Limiter, cfg config.ServerConfig) *HTTPServer {
	return &HTTPServer{
		index:   ix,
		limiter: limiter,
		cfg:     cfg,
		log:     logger.New("http"),
	}
}

// Routes returns the mux with all endpoints registered.
func (s *HTTPServer) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/v1/suggest", s.handleSuggest)
	return mux
}

// ListenAndServe starts serving on the configured address.
func (s *HTTPServer) ListenAndServe() error {
	s.log.Infof("listening on %s", s.cfg.Addr)
	return http.ListenAndServe(s.cfg.Addr, s.Routes())
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleSuggest validates the query, throttles the client, and answers with
// the matched words. Query length limits are handler policy; the index itself
// treats anything unmatched as an empty result.
func (s *HTTPServer) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query().Get("q")
	if len(query) < s.cfg.MinQuery {
		s.writeError(w, http.StatusBadRequest, "query too short")
		s.log.Debugf("rejected short query %q", query)
		return
	}
	if s.cfg.MaxQuery > 0 && len(query) > s.cfg.MaxQuery {
		s.writeError(w, http.StatusBadRequest, "query too long")
		return
	}

	key := ratelimit.ClientKey(r.Header.Get("X-Forwarded-For"), remoteHost(r))
	if !s.limiter.Allow(key) {
		s.writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
		s.log.Debugf("throttled client %s", key)
		return
	}

	limit := s.cfg.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if s.cfg.MaxLimit > 0 && limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	results := s.index.SearchPrefix(query, limit)
	s.writeJSON(w, http.StatusOK, SuggestResponse{
		Query:   query,
		Count:   len(results),
		Results: results,
	})
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Errorf("encoding response: %v", err)
	}
}

func (s *HTTPServer) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, ErrorResponse{Error: msg, Status: status})
}

// remoteHost strips the port from the peer address so direct clients key on
// their IP alone.
func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
