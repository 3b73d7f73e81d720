package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/Simplici0/casasim/internal/catalog"
	"github.com/Simplici0/casasim/internal/comparison"
	"github.com/Simplici0/casasim/internal/masonry"
	"github.com/Simplici0/casasim/internal/store"
)

type estimateResponse struct {
	Input  masonry.Request `json:"input"`
	Result masonry.Result  `json:"result"`
}

// comparisonRequest selects materials by id. A missing base id uses the
// material flagged as base; a missing optimized id reuses the base material.
// A missing area_per_unit uses catalog.DefaultAreaPerUnit.
type comparisonRequest struct {
	BaseMaterialID      *int64   `json:"base_material_id,omitempty"`
	OptimizedMaterialID *int64   `json:"optimized_material_id,omitempty"`
	BaselineSystemID    string   `json:"baseline_system_id,omitempty"`
	ChosenSystemID      string   `json:"chosen_system_id,omitempty"`
	AreaPerUnit         *float64 `json:"area_per_unit,omitempty"`
	UnitCount           int      `json:"unit_count"`
}

type comparisonResponse struct {
	BaseMaterial      catalog.Material  `json:"base_material"`
	OptimizedMaterial catalog.Material  `json:"optimized_material"`
	AreaPerUnit       float64           `json:"area_per_unit"`
	UnitCount         int               `json:"unit_count"`
	Result            comparison.Result `json:"result"`
}

func (s *server) handleEstimateWalls(w http.ResponseWriter, r *http.Request) {
	var req masonry.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	req, result, err := s.estimate(req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, estimateResponse{Input: req, Result: result})
}

// estimate normalizes req and runs it through the result cache.
func (s *server) estimate(req masonry.Request) (masonry.Request, masonry.Result, error) {
	req = req.Normalized(s.catalog)
	key := estimateKey{
		WallArea:       req.WallArea,
		JointThickness: req.JointThickness,
		BrickType:      req.BrickType,
		MortarRatio:    req.MortarRatio,
		Pricing:        *req.Pricing,
	}
	if result, ok := s.estimates.Get(key); ok {
		return req, result, nil
	}

	result, err := masonry.Estimate(s.catalog, req)
	if err != nil {
		return req, masonry.Result{}, err
	}
	s.estimates.Add(key, result)
	return req, result, nil
}

func (s *server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req comparisonRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.compare(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *server) compare(ctx context.Context, req comparisonRequest) (comparisonResponse, error) {
	base, err := s.baseMaterial(ctx, req.BaseMaterialID)
	if err != nil {
		return comparisonResponse{}, err
	}

	optimized := base
	if req.OptimizedMaterialID != nil {
		optimized, err = s.materials.Get(ctx, *req.OptimizedMaterialID)
		if err != nil {
			return comparisonResponse{}, err
		}
	}

	area := catalog.DefaultAreaPerUnit
	if req.AreaPerUnit != nil {
		area = *req.AreaPerUnit
	}

	result, err := comparison.Compare(s.catalog.Systems(), comparison.Request{
		BaseMaterial:      base,
		OptimizedMaterial: optimized,
		BaselineSystemID:  req.BaselineSystemID,
		ChosenSystemID:    req.ChosenSystemID,
		AreaPerUnit:       area,
		UnitCount:         req.UnitCount,
	})
	if err != nil {
		return comparisonResponse{}, err
	}

	return comparisonResponse{
		BaseMaterial:      base,
		OptimizedMaterial: optimized,
		AreaPerUnit:       area,
		UnitCount:         req.UnitCount,
		Result:            result,
	}, nil
}

// request returns the comparison input with every default resolved.
func (c comparisonResponse) request() comparisonRequest {
	area := c.AreaPerUnit
	req := comparisonRequest{
		BaselineSystemID: c.Result.BaselineSystem.ID,
		ChosenSystemID:   c.Result.ChosenSystem.ID,
		AreaPerUnit:      &area,
		UnitCount:        c.UnitCount,
	}
	if id := c.BaseMaterial.ID; id != 0 {
		req.BaseMaterialID = &id
	}
	if id := c.OptimizedMaterial.ID; id != 0 {
		req.OptimizedMaterialID = &id
	}
	return req
}

// baseMaterial resolves id, or the stored base material when id is nil. An
// empty materials table falls back to the reference confined masonry price.
func (s *server) baseMaterial(ctx context.Context, id *int64) (catalog.Material, error) {
	if id != nil {
		return s.materials.Get(ctx, *id)
	}

	base, err := s.materials.Base(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return catalog.Material{
			Name:      "Albañilería Confinada",
			Category:  "base",
			CostPerM2: catalog.DefaultBaseCostPerM2,
			IsBase:    true,
		}, nil
	}
	return base, err
}
