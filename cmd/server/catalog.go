package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *server) handleListBricks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.catalog.Bricks())
}

func (s *server) handleListMixes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.catalog.Mixes())
}

func (s *server) handleListSystems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.catalog.Systems().All())
}

func (s *server) handleGetSystem(w http.ResponseWriter, r *http.Request) {
	sys, err := s.catalog.Systems().Get(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sys)
}

func (s *server) handleListFAQs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{"faqs": s.catalog.FAQs()})
}
