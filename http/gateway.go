package http

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"

	"github.com/fwojciec/eldin"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

// DefaultAskRPS is the default per-client rate limit on /ask.
const DefaultAskRPS = 5.0

// GatewayServer serves the question-answering surface: POST /ask and
// GET /health.
type GatewayServer struct {
	asker      eldin.Asker
	corsOrigin string
	limiter    *hostLimiter
}

// GatewayOption configures a GatewayServer.
type GatewayOption func(*GatewayServer)

// WithCORSOrigin sets the single origin allowed to call the gateway from a
// browser. Empty disables CORS headers.
func WithCORSOrigin(origin string) GatewayOption {
	return func(s *GatewayServer) {
		s.corsOrigin = origin
	}
}

// WithAskRPS sets the per-client requests-per-second limit on /ask.
func WithAskRPS(rps float64) GatewayOption {
	return func(s *GatewayServer) {
		s.limiter = newHostLimiter(rps)
	}
}

// NewGatewayServer creates a gateway server around an Asker.
func NewGatewayServer(asker eldin.Asker, opts ...GatewayOption) *GatewayServer {
	s := &GatewayServer{
		asker:   asker,
		limiter: newHostLimiter(DefaultAskRPS),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router returns the gateway's HTTP handler.
func (s *GatewayServer) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/ask", s.handleAsk).Methods(http.MethodPost, http.MethodOptions)
	return s.cors(r)
}

func (s *GatewayServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]bool{"ok": true})
}

func (s *GatewayServer) handleAsk(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow(clientHost(r)) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: "Rate limit exceeded."})
		return
	}

	var req eldin.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, r, eldin.Errorf(eldin.EINVALID, "invalid JSON body"))
		return
	}
	if req.User == "" {
		req.User = eldin.DefaultUser
	}
	if req.Tenant == "" {
		req.Tenant = eldin.DefaultTenant
	}

	result, err := s.asker.Ask(r.Context(), req)
	if err != nil {
		Error(w, r, err)
		return
	}

	respondJSON(w, result)
}

// cors sets the response headers for the configured browser origin and
// answers preflight requests.
func (s *GatewayServer) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.corsOrigin != "" && r.Header.Get("Origin") == s.corsOrigin {
			w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// hostLimiter provides per-client rate limiting using token buckets, one
// limiter per remote host.
type hostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

func newHostLimiter(rps float64) *hostLimiter {
	return &hostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Allow reports whether the host may issue a request now. Bursts up to one
// second's worth of requests are permitted.
func (l *hostLimiter) Allow(host string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[host]
	if !ok {
		burst := int(l.rps)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(l.rps), burst)
		l.limiters[host] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}

// clientHost extracts the remote host from a request.
func clientHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
