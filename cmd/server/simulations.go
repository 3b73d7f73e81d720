package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/casasim/internal/catalog"
	"github.com/Simplici0/casasim/internal/masonry"
	"github.com/Simplici0/casasim/internal/store"
)

// saveSimulationRequest carries the engine input only. The result is
// recomputed on save so stored snapshots always match their input.
type saveSimulationRequest struct {
	Name   string          `json:"name"`
	Region string          `json:"region"`
	Kind   string          `json:"kind"`
	Input  json.RawMessage `json:"input"`
}

func (s *server) handleListSimulations(w http.ResponseWriter, r *http.Request) {
	sims, err := s.simulations.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sims)
}

func (s *server) handleSaveSimulation(w http.ResponseWriter, r *http.Request) {
	var req saveSimulationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	input, result, err := s.snapshot(r.Context(), req.Kind, req.Input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	sim, err := s.simulations.Save(r.Context(), store.Simulation{
		Name:   req.Name,
		Region: req.Region,
		Kind:   req.Kind,
		Input:  input,
		Result: result,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, sim)
}

func (s *server) handleGetSimulation(w http.ResponseWriter, r *http.Request) {
	sim, err := s.simulations.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sim)
}

func (s *server) handleDeleteSimulation(w http.ResponseWriter, r *http.Request) {
	if err := s.simulations.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// snapshot runs the engine selected by kind and returns the defaulted input
// alongside its result, both as JSON.
func (s *server) snapshot(ctx context.Context, kind string, raw json.RawMessage) (json.RawMessage, json.RawMessage, error) {
	var input, result any

	switch kind {
	case store.KindWalls:
		var req masonry.Request
		if err := decodeStrict(raw, &req); err != nil {
			return nil, nil, err
		}
		normalized, res, err := s.estimate(req)
		if err != nil {
			return nil, nil, err
		}
		input, result = normalized, res
	case store.KindComparison:
		var req comparisonRequest
		if err := decodeStrict(raw, &req); err != nil {
			return nil, nil, err
		}
		res, err := s.compare(ctx, req)
		if err != nil {
			return nil, nil, err
		}
		input, result = res.request(), res
	default:
		return nil, nil, &catalog.InvalidInputError{Field: "kind", Label: kind, Reason: "must be walls or comparison"}
	}

	inputJSON, err := json.Marshal(input)
	if err != nil {
		return nil, nil, fmt.Errorf("encode simulation input: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, nil, fmt.Errorf("encode simulation result: %w", err)
	}
	return inputJSON, resultJSON, nil
}

func decodeStrict(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return &catalog.InvalidInputError{Field: "input", Reason: "is required"}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &catalog.InvalidInputError{Field: "input", Reason: "is not a valid engine input: " + err.Error()}
	}
	return nil
}
