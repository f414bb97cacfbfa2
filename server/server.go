// Package server exposes the dashboard HTTP API: vitals queries, serial
// port control, the patient record and a streaming chat endpoint.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"vigil"
)

// VitalsSource is the processed-data surface the API reads from.
type VitalsSource interface {
	Latest(n int) []vigil.ProcessedVitals
	CompressedECG() []vigil.Point
	Stats() vigil.ECGStats
	Metrics() vigil.ProcessingMetrics
}

// SerialControl is the acquisition surface the API drives.
type SerialControl interface {
	Connect(cfg vigil.SerialConfig) error
	Disconnect()
	Status() vigil.SerialStatus
}

// PatientStore persists the patient record.
type PatientStore interface {
	Load() (vigil.PatientInfo, error)
	Save(info vigil.PatientInfo) (vigil.PatientInfo, error)
	Delete() error
}

// Server is the dashboard HTTP server.
type Server struct {
	httpServer *http.Server
	vitals     VitalsSource
	serial     SerialControl
	patients   PatientStore
	provider   vigil.Provider
	logger     *slog.Logger
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates a Server listening on addr.
func New(addr string, vs VitalsSource, sc SerialControl, ps PatientStore, provider vigil.Provider, opts ...Option) *Server {
	s := &Server{
		vitals:   vs,
		serial:   sc,
		patients: ps,
		provider: provider,
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/vitals", func(r chi.Router) {
			r.Get("/", s.handleVitals)
			r.Get("/ecg", s.handleECG)
			r.Get("/stats", s.handleStats)
			r.Get("/metrics", s.handleMetrics)
		})

		r.Route("/serial", func(r chi.Router) {
			r.Get("/ports", s.handlePorts)
			r.Get("/status", s.handleSerialStatus)
			r.Post("/connect", s.handleConnect)
			r.Post("/disconnect", s.handleDisconnect)
		})

		r.Route("/patient", func(r chi.Router) {
			r.Get("/", s.handlePatientGet)
			r.Put("/", s.handlePatientPut)
			r.Delete("/", s.handlePatientDelete)
		})

		r.Post("/chat", s.handleChat)
	})

	s.httpServer = &http.Server{Addr: addr, Handler: r}
	return s
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening. It blocks until the server is stopped.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	s.logger.Info("dashboard api listening", "addr", ln.Addr().String())
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]string{"error": msg})
}
