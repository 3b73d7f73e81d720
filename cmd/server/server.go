package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/golang-lru/v2"

	"github.com/Simplici0/casasim/internal/catalog"
	"github.com/Simplici0/casasim/internal/masonry"
	"github.com/Simplici0/casasim/internal/store"
)

// estimateKey is a fully defaulted wall request; equal keys give equal results.
type estimateKey struct {
	WallArea       float64
	JointThickness float64
	BrickType      string
	MortarRatio    string
	Pricing        masonry.Pricing
}

type server struct {
	catalog     *catalog.Catalog
	materials   *store.Materials
	simulations *store.Simulations
	estimates   *lru.Cache[estimateKey, masonry.Result]
}

func newServer(cat *catalog.Catalog, materials *store.Materials, simulations *store.Simulations, cacheSize int) (*server, error) {
	estimates, err := lru.New[estimateKey, masonry.Result](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create estimate cache: %w", err)
	}
	return &server{
		catalog:     cat,
		materials:   materials,
		simulations: simulations,
		estimates:   estimates,
	}, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/bricks", s.handleListBricks)
		r.Get("/mixes", s.handleListMixes)
		r.Get("/systems", s.handleListSystems)
		r.Get("/systems/{id}", s.handleGetSystem)
		r.Get("/faqs", s.handleListFAQs)

		r.Post("/walls/estimate", s.handleEstimateWalls)
		r.Post("/comparisons", s.handleCompare)

		r.Get("/materials", s.handleListMaterials)
		r.Post("/materials", s.handleCreateMaterial)
		r.Get("/materials/base", s.handleGetBaseMaterial)
		r.Get("/materials/{id}", s.handleGetMaterial)
		r.Put("/materials/{id}", s.handleUpdateMaterial)
		r.Delete("/materials/{id}", s.handleDeactivateMaterial)

		r.Get("/simulations", s.handleListSimulations)
		r.Post("/simulations", s.handleSaveSimulation)
		r.Get("/simulations/{id}", s.handleGetSimulation)
		r.Delete("/simulations/{id}", s.handleDeleteSimulation)
	})

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeDomainError maps engine and store errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *catalog.InvalidInputError
	var unknown *catalog.UnknownSystemError

	switch {
	case errors.As(err, &invalid):
		writeError(w, r, http.StatusBadRequest, invalid.Error())
	case errors.As(err, &unknown):
		writeError(w, r, http.StatusNotFound, unknown.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	default:
		log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON reads a single JSON object from the body, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// statusWriter captures the final HTTP status code and number of bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		log.Printf(
			"method=%s path=%s status=%d bytes=%d dur=%dms",
			r.Method, r.URL.RequestURI(), sw.status, sw.bytes, time.Since(start).Milliseconds(),
		)
	})
}
