package server

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prefixserve/prefixserve/internal/logger"
	"github.com/prefixserve/prefixserve/pkg/config"
	"github.com/prefixserve/prefixserve/pkg/index"
	"github.com/prefixserve/prefixserve/pkg/ratelimit"
	"github.com/vmihailenco/msgpack/v5"
)

// localClient keys IPC requests that carry no client identifier; a single
// editor process shares one window.
const localClient = "local"

// IPCServer handles msgpack request frames for word suggestions.
type IPCServer struct {
	index   *index.Index
	limiter *ratelimit.Limiter
	cfg     config.ServerConfig
	dec     *msgpack.Decoder
	enc     *msgpack.Encoder
	log     *log.Logger
}

// NewIPCServer creates a suggestion server using stdin/stdout for IPC.
func NewIPCServer(ix *index.Index, limiter *ratelimit.Limiter, cfg config.ServerConfig) *IPCServer {
	return &IPCServer{
		index:   ix,
		limiter: limiter,
		cfg:     cfg,
		dec:     msgpack.NewDecoder(os.Stdin),
		enc:     msgpack.NewEncoder(os.Stdout),
		log:     logger.New("ipc"),
	}
}

// NewIPCServerWithStreams is NewIPCServer with explicit streams for tests.
func NewIPCServerWithStreams(ix *index.Index, limiter *ratelimit.Limiter, cfg config.ServerConfig, in io.Reader, out io.Writer) *IPCServer {
	return &IPCServer{
		index:   ix,
		limiter: limiter,
		cfg:     cfg,
		dec:     msgpack.NewDecoder(in),
		enc:     msgpack.NewEncoder(out),
		log:     logger.New("ipc"),
	}
}

// Start processes request frames until the input stream closes.
func (s *IPCServer) Start() error {
	s.log.Debug("server ready")
	for {
		var req SuggestRequest
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.log.Errorf("decoding request: %v", err)
			return err
		}
		s.handle(req)
	}
}

// handle answers a single request frame. Invalid prefixes and throttled
// clients produce error frames; an unmatched prefix is a normal empty answer.
func (s *IPCServer) handle(req SuggestRequest) {
	if len(req.Prefix) < s.cfg.MinQuery {
		s.sendError(req.ID, "prefix too short", 400)
		return
	}
	if s.cfg.MaxQuery > 0 && len(req.Prefix) > s.cfg.MaxQuery {
		s.sendError(req.ID, "prefix too long", 400)
		return
	}

	client := req.Client
	if client == "" {
		client = localClient
	}
	if !s.limiter.Allow(client) {
		s.sendError(req.ID, "rate limit exceeded", 429)
		return
	}

	limit := req.Limit
	if limit < 1 {
		limit = s.cfg.DefaultLimit
	}
	if s.cfg.MaxLimit > 0 && limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	start := time.Now()
	words := s.index.SearchPrefix(req.Prefix, limit)
	elapsed := time.Since(start)

	s.send(IPCResponse{
		ID:        req.ID,
		Words:     words,
		Count:     len(words),
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *IPCServer) send(v any) {
	if err := s.enc.Encode(v); err != nil {
		s.log.Errorf("encoding response: %v", err)
	}
}

func (s *IPCServer) sendError(id, msg string, code int) {
	s.send(IPCError{ID: id, Error: msg, Code: code})
}
