// Package devserver is a local stand-in for the restaurant's chat and booking
// backend. It speaks the same HTTP contract as the hosted service and keeps
// bookings in SQLite, so the client can be exercised end to end offline.
package devserver

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/julianstephens/tablebot/internal/api"
	"github.com/julianstephens/tablebot/internal/constants"
	"github.com/julianstephens/tablebot/internal/logger"
)

// Options configures a Server
type Options struct {
	// Database is the SQLite path; ":memory:" keeps bookings for the process lifetime.
	Database   string
	Restaurant string
	// Token, when set, is the bearer token every request must carry.
	Token             string
	RequestsPerMinute int
	Burst             int
	Now               func() time.Time
}

func (o *Options) setDefaults() {
	if o.Database == "" {
		o.Database = constants.DefaultDevDatabase
	}
	if o.Restaurant == "" {
		o.Restaurant = constants.DefaultRestaurant
	}
	if o.RequestsPerMinute <= 0 {
		o.RequestsPerMinute = constants.DevRequestsPerMinute
	}
	if o.Burst <= 0 {
		o.Burst = constants.DevRequestBurst
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

type Server struct {
	router   *chi.Mux
	store    *Store
	agent    *Agent
	limiters *limiterStore
	opts     Options
}

// New opens the booking store and builds the router
func New(opts Options) (*Server, error) {
	opts.setDefaults()

	store, err := OpenStore(opts.Database, opts.Restaurant)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:   chi.NewRouter(),
		store:    store,
		agent:    NewAgent(store, opts.Now),
		limiters: newLimiterStore(opts.RequestsPerMinute, opts.Burst, constants.DevRateLimiterIdleTTL),
		opts:     opts,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.logRequests)

	s.router.Get("/api/health", s.handleHealth)
	s.router.Group(func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Use(s.requireToken)
		r.Post("/api/chat", s.handleChat)
		r.Post("/api/chat/", s.handleChat)
		r.Get("/api/ConsumerApi/v1/Restaurant/{restaurant}/Booking/{ref}", s.handleGetBooking)
	})
}

func (s *Server) Router() http.Handler { return s.router }

// Store exposes the booking store, mainly for seeding
func (s *Server) Store() *Store { return s.store }

func (s *Server) Close() error {
	return s.store.Close()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "restaurant": s.store.Restaurant()})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req api.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "Empty message")
		return
	}
	writeJSON(w, http.StatusOK, api.ChatResponse{Reply: s.agent.Reply(req.Message)})
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "restaurant") != s.opts.Restaurant {
		writeError(w, http.StatusNotFound, "Unknown restaurant")
		return
	}
	b, err := s.store.Get(chi.URLParam(r, "ref"))
	if errors.Is(err, ErrBookingNotFound) {
		writeError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if err != nil {
		logger.Error("Booking retrieval failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.Token != "" && r.Header.Get("Authorization") != "Bearer "+s.opts.Token {
			writeError(w, http.StatusUnauthorized, "Invalid or missing bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientIP(r)
		if !s.limiters.allow(client, s.opts.Now()) {
			logger.Warn("Rate limit exceeded", "client", client)
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Info("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
			"client_request_id", r.Header.Get("X-Request-ID"),
		)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
