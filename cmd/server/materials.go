package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/casasim/internal/catalog"
)

func (s *server) handleListMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := s.materials.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, materials)
}

func (s *server) handleGetBaseMaterial(w http.ResponseWriter, r *http.Request) {
	m, err := s.materials.Base(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, m)
}

func (s *server) handleGetMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := materialID(w, r)
	if !ok {
		return
	}

	m, err := s.materials.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, m)
}

// handleCreateMaterial adds an alternative material. The base material is
// only ever set by seeding.
func (s *server) handleCreateMaterial(w http.ResponseWriter, r *http.Request) {
	var m catalog.Material
	if err := decodeJSON(w, r, &m); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	m.ID = 0
	m.IsBase = false

	created, err := s.materials.Create(r.Context(), m)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

func (s *server) handleUpdateMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := materialID(w, r)
	if !ok {
		return
	}

	var m catalog.Material
	if err := decodeJSON(w, r, &m); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	m.ID = id

	if err := s.materials.Update(r.Context(), m); err != nil {
		writeDomainError(w, r, err)
		return
	}

	updated, err := s.materials.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

// handleDeactivateMaterial hides a material from the list. Saved simulations
// keep referring to it by id.
func (s *server) handleDeactivateMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := materialID(w, r)
	if !ok {
		return
	}

	if err := s.materials.Deactivate(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func materialID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "invalid material id")
		return 0, false
	}
	return id, true
}
