package main

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/Simplici0/casasim/internal/catalog"
	"github.com/Simplici0/casasim/internal/db"
	"github.com/Simplici0/casasim/internal/migrations"
	"github.com/Simplici0/casasim/internal/seed"
	"github.com/Simplici0/casasim/internal/store"
)

func newTestServer(t *testing.T, seeded bool) (*server, http.Handler) {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "server-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	ctx := context.Background()
	if err := migrations.Up(ctx, database, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	cat := catalog.Default()
	if seeded {
		if _, err := seed.Run(ctx, database, cat); err != nil {
			t.Fatalf("seed materials: %v", err)
		}
	}

	srv, err := newServer(cat, store.NewMaterials(database), store.NewSimulations(database), 16)
	if err != nil {
		t.Fatalf("newServer returned error: %v", err)
	}
	return srv, srv.routes()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()

	if err := json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.0001
}

func materialIDByName(t *testing.T, h http.Handler, name string) int64 {
	t.Helper()

	rec := do(t, h, http.MethodGet, "/api/materials", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list materials status = %d, body=%s", rec.Code, rec.Body.String())
	}
	var materials []catalog.Material
	decodeBody(t, rec, &materials)
	for _, m := range materials {
		if m.Name == name {
			return m.ID
		}
	}
	t.Fatalf("material %q not found in %+v", name, materials)
	return 0
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t, false)

	rec := do(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCatalogEndpoints(t *testing.T) {
	_, h := newTestServer(t, false)

	rec := do(t, h, http.MethodGet, "/api/bricks", "")
	var bricks []catalog.BrickGeometry
	decodeBody(t, rec, &bricks)
	if len(bricks) != 3 || bricks[0].ID != catalog.BrickKingKong18 {
		t.Fatalf("unexpected bricks: %+v", bricks)
	}

	rec = do(t, h, http.MethodGet, "/api/mixes", "")
	var mixes []catalog.MixProportion
	decodeBody(t, rec, &mixes)
	if len(mixes) != 4 {
		t.Fatalf("expected 4 mixes, got %+v", mixes)
	}

	rec = do(t, h, http.MethodGet, "/api/systems", "")
	var systems []catalog.ConstructionSystem
	decodeBody(t, rec, &systems)
	if len(systems) != 4 {
		t.Fatalf("expected 4 systems, got %+v", systems)
	}

	rec = do(t, h, http.MethodGet, "/api/systems/sip", "")
	var sip catalog.ConstructionSystem
	decodeBody(t, rec, &sip)
	if rec.Code != http.StatusOK || !nearlyEqual(sip.CostFactor, 0.67) {
		t.Fatalf("unexpected sip system: status=%d %+v", rec.Code, sip)
	}

	rec = do(t, h, http.MethodGet, "/api/systems/adobe", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown system, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "adobe") {
		t.Fatalf("error should name the unknown system: %s", rec.Body.String())
	}
}

func TestEstimateWallsUsesDefaultsAndCache(t *testing.T) {
	srv, h := newTestServer(t, false)

	body := `{"wall_area": 10, "joint_thickness": 1.5}`
	rec := do(t, h, http.MethodPost, "/api/walls/estimate", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var resp estimateResponse
	decodeBody(t, rec, &resp)
	if resp.Input.BrickType != catalog.BrickKingKong18 || resp.Input.MortarRatio != catalog.Mix1to5 {
		t.Fatalf("defaults not applied: %+v", resp.Input)
	}
	if resp.Result.BrickCount != 393 || resp.Result.CementBags != 3 {
		t.Fatalf("unexpected result: %+v", resp.Result)
	}
	if !nearlyEqual(resp.Result.TotalMaterialCost, 468.80) {
		t.Fatalf("total cost = %v, want 468.80", resp.Result.TotalMaterialCost)
	}
	if srv.estimates.Len() != 1 {
		t.Fatalf("expected 1 cached estimate, got %d", srv.estimates.Len())
	}

	explicit := `{"wall_area": 10, "joint_thickness": 1.5, "brick_type": "king_kong_18", "mortar_ratio": "1:5"}`
	rec = do(t, h, http.MethodPost, "/api/walls/estimate", explicit)
	var again estimateResponse
	decodeBody(t, rec, &again)
	if again.Result != resp.Result {
		t.Fatalf("equivalent requests differ: %+v vs %+v", again.Result, resp.Result)
	}
	if srv.estimates.Len() != 1 {
		t.Fatalf("equivalent request should hit the cache, got %d entries", srv.estimates.Len())
	}
}

func TestEstimateWallsRejectsInvalidInput(t *testing.T) {
	_, h := newTestServer(t, false)

	cases := []struct {
		name string
		body string
		want int
	}{
		{name: "zero area", body: `{"wall_area": 0, "joint_thickness": 1.5}`, want: http.StatusBadRequest},
		{name: "negative joint", body: `{"wall_area": 10, "joint_thickness": -1}`, want: http.StatusBadRequest},
		{name: "unknown brick", body: `{"wall_area": 10, "joint_thickness": 1.5, "brick_type": "adobe"}`, want: http.StatusBadRequest},
		{name: "unknown field", body: `{"wall_area": 10, "joint": 1.5}`, want: http.StatusBadRequest},
		{name: "malformed", body: `{`, want: http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/walls/estimate", tc.body)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d body=%s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCompareWithSeededMaterials(t *testing.T) {
	_, h := newTestServer(t, true)
	sipID := materialIDByName(t, h, "Panel SIP OSB/EPS")

	body, _ := json.Marshal(map[string]any{
		"optimized_material_id": sipID,
		"chosen_system_id":      "sip",
		"unit_count":            10,
	})
	rec := do(t, h, http.MethodPost, "/api/comparisons", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var resp comparisonResponse
	decodeBody(t, rec, &resp)
	if resp.BaseMaterial.Name != "Albañilería Confinada" {
		t.Fatalf("expected seeded base material, got %+v", resp.BaseMaterial)
	}
	if !nearlyEqual(resp.AreaPerUnit, catalog.DefaultAreaPerUnit) {
		t.Fatalf("area per unit = %v, want default", resp.AreaPerUnit)
	}
	if !nearlyEqual(resp.Result.TotalBaseCost, 215523) || !nearlyEqual(resp.Result.TotalOptimizedCost, 112560) {
		t.Fatalf("unexpected totals: %+v", resp.Result)
	}
	if !nearlyEqual(resp.Result.TotalSavings, 102963) {
		t.Fatalf("savings = %v, want 102963", resp.Result.TotalSavings)
	}
}

func TestCompareErrors(t *testing.T) {
	_, h := newTestServer(t, true)

	cases := []struct {
		name string
		body string
		want int
	}{
		{name: "zero units", body: `{"unit_count": 0}`, want: http.StatusBadRequest},
		{name: "explicit zero area", body: `{"unit_count": 5, "area_per_unit": 0}`, want: http.StatusBadRequest},
		{name: "unknown system", body: `{"unit_count": 5, "chosen_system_id": "adobe"}`, want: http.StatusNotFound},
		{name: "unknown material", body: `{"unit_count": 5, "optimized_material_id": 9999}`, want: http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/comparisons", tc.body)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d body=%s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCompareFallsBackToReferenceBaseCost(t *testing.T) {
	_, h := newTestServer(t, false)

	rec := do(t, h, http.MethodPost, "/api/comparisons", `{"unit_count": 1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var resp comparisonResponse
	decodeBody(t, rec, &resp)
	if !nearlyEqual(resp.BaseMaterial.CostPerM2, catalog.DefaultBaseCostPerM2) {
		t.Fatalf("expected reference base cost, got %+v", resp.BaseMaterial)
	}
	if resp.Result.TotalSavings != 0 || resp.Result.SavingsPercentage != 0 {
		t.Fatalf("baseline vs baseline should save nothing: %+v", resp.Result)
	}
}

func TestMaterialsCRUD(t *testing.T) {
	_, h := newTestServer(t, true)

	rec := do(t, h, http.MethodGet, "/api/materials/base", "")
	var base catalog.Material
	decodeBody(t, rec, &base)
	if rec.Code != http.StatusOK || !base.IsBase {
		t.Fatalf("unexpected base material: status=%d %+v", rec.Code, base)
	}

	rec = do(t, h, http.MethodPost, "/api/materials", `{"name": "Drywall", "category": "optimized", "cost_per_m2": 390, "is_base": true}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	var created catalog.Material
	decodeBody(t, rec, &created)
	if created.ID == 0 || created.IsBase {
		t.Fatalf("created material should get an id and never be base: %+v", created)
	}

	path := "/api/materials/" + strconv.FormatInt(created.ID, 10)
	rec = do(t, h, http.MethodPut, path, `{"name": "Drywall", "category": "optimized", "cost_per_m2": 410}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var updated catalog.Material
	decodeBody(t, rec, &updated)
	if !nearlyEqual(updated.CostPerM2, 410) {
		t.Fatalf("update not applied: %+v", updated)
	}

	if rec := do(t, h, http.MethodGet, "/api/materials/9999", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing material, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/api/materials/abc", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/materials", `{"name": "", "cost_per_m2": 10}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", rec.Code)
	}
}

func TestSimulationsLifecycle(t *testing.T) {
	_, h := newTestServer(t, true)

	rec := do(t, h, http.MethodPost, "/api/simulations", `{
		"name": "Muro perimetral",
		"region": "Lima",
		"kind": "walls",
		"input": {"wall_area": 10, "joint_thickness": 1.5}
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	var saved store.Simulation
	decodeBody(t, rec, &saved)
	if saved.ID == "" {
		t.Fatalf("expected an id, got %+v", saved)
	}
	if !strings.Contains(string(saved.Result), `"brick_count":393`) {
		t.Fatalf("result snapshot not computed: %s", saved.Result)
	}
	if !strings.Contains(string(saved.Input), `"brick_type":"king_kong_18"`) {
		t.Fatalf("input snapshot should hold defaulted labels: %s", saved.Input)
	}

	rec = do(t, h, http.MethodPost, "/api/simulations", `{
		"name": "Conjunto SIP",
		"region": "Huaral",
		"kind": "comparison",
		"input": {"chosen_system_id": "sip", "unit_count": 10}
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/api/simulations?q=Lima", "")
	var listed []store.Simulation
	decodeBody(t, rec, &listed)
	if len(listed) != 1 || listed[0].ID != saved.ID {
		t.Fatalf("expected only the Lima simulation, got %+v", listed)
	}

	rec = do(t, h, http.MethodGet, "/api/simulations/"+saved.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if rec := do(t, h, http.MethodDelete, "/api/simulations/"+saved.ID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/api/simulations/"+saved.ID, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodDelete, "/api/simulations/"+saved.ID, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestSaveSimulationRejectsBadInput(t *testing.T) {
	_, h := newTestServer(t, false)

	cases := []string{
		`{"name": "x", "kind": "render", "input": {}}`,
		`{"name": "x", "kind": "walls"}`,
		`{"name": "x", "kind": "walls", "input": {"wall_area": 0, "joint_thickness": 1}}`,
		`{"name": "", "kind": "walls", "input": {"wall_area": 10, "joint_thickness": 1}}`,
		`{"name": "x", "kind": "walls", "input": {"area": 10}}`,
	}
	for _, body := range cases {
		rec := do(t, h, http.MethodPost, "/api/simulations", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d (%s)", body, rec.Code, rec.Body.String())
		}
	}
}

func TestListFAQs(t *testing.T) {
	_, h := newTestServer(t, false)

	rec := do(t, h, http.MethodGet, "/api/faqs", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		FAQs []catalog.FAQ `json:"faqs"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.FAQs) != len(catalog.Default().FAQs()) {
		t.Fatalf("expected %d faqs, got %+v", len(catalog.Default().FAQs()), resp.FAQs)
	}
	for i := 1; i < len(resp.FAQs); i++ {
		if resp.FAQs[i-1].ID >= resp.FAQs[i].ID {
			t.Fatalf("faqs not ordered by id: %+v", resp.FAQs)
		}
	}
}

func TestCreateMaterialDuplicateNameIsBadRequest(t *testing.T) {
	_, h := newTestServer(t, false)

	body := `{"name": "Dup", "cost_per_m2": 10}`
	if rec := do(t, h, http.MethodPost, "/api/materials", body); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec := do(t, h, http.MethodPost, "/api/materials", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate name, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "already exists") {
		t.Fatalf("error should explain the duplicate: %s", rec.Body.String())
	}
}

func TestCreateMaterialDefaultsCategory(t *testing.T) {
	_, h := newTestServer(t, false)

	rec := do(t, h, http.MethodPost, "/api/materials", `{"name": "Drywall", "cost_per_m2": 390}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	var created catalog.Material
	decodeBody(t, rec, &created)

	rec = do(t, h, http.MethodGet, "/api/materials/"+strconv.FormatInt(created.ID, 10), "")
	var got catalog.Material
	decodeBody(t, rec, &got)
	if got.Category != store.CategoryOptimized {
		t.Fatalf("category = %q, want %q", got.Category, store.CategoryOptimized)
	}
}

func TestDeactivateMaterial(t *testing.T) {
	_, h := newTestServer(t, true)
	icfID := materialIDByName(t, h, "Bloque ICF")
	path := "/api/materials/" + strconv.FormatInt(icfID, 10)

	if rec := do(t, h, http.MethodDelete, path, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec := do(t, h, http.MethodGet, "/api/materials", "")
	var materials []catalog.Material
	decodeBody(t, rec, &materials)
	for _, m := range materials {
		if m.ID == icfID {
			t.Fatalf("deactivated material still listed: %+v", materials)
		}
	}

	if rec := do(t, h, http.MethodGet, path, ""); rec.Code != http.StatusOK {
		t.Fatalf("deactivated material should stay readable by id, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/api/materials/base", "")
	var base catalog.Material
	decodeBody(t, rec, &base)
	if rec := do(t, h, http.MethodDelete, "/api/materials/"+strconv.FormatInt(base.ID, 10), ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when deactivating the base material, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodDelete, "/api/materials/9999", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing material, got %d", rec.Code)
	}
}

func TestSaveComparisonStoresResolvedInput(t *testing.T) {
	_, h := newTestServer(t, true)

	rec := do(t, h, http.MethodPost, "/api/simulations", `{
		"name": "Conjunto SIP",
		"kind": "comparison",
		"input": {"chosen_system_id": "sip", "unit_count": 10}
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	var saved store.Simulation
	decodeBody(t, rec, &saved)

	var input comparisonRequest
	if err := json.Unmarshal(saved.Input, &input); err != nil {
		t.Fatalf("decode stored input %s: %v", saved.Input, err)
	}
	if input.AreaPerUnit == nil || !nearlyEqual(*input.AreaPerUnit, catalog.DefaultAreaPerUnit) {
		t.Fatalf("stored input should carry the default area: %s", saved.Input)
	}
	if input.BaselineSystemID != catalog.SystemBaseline || input.ChosenSystemID != "sip" {
		t.Fatalf("stored input should carry resolved systems: %s", saved.Input)
	}
	if input.BaseMaterialID == nil || input.OptimizedMaterialID == nil || *input.BaseMaterialID != *input.OptimizedMaterialID {
		t.Fatalf("stored input should carry resolved material ids: %s", saved.Input)
	}

	// The stored input reproduces the stored result.
	rec = do(t, h, http.MethodPost, "/api/comparisons", string(saved.Input))
	if rec.Code != http.StatusOK {
		t.Fatalf("replaying stored input: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var replay comparisonResponse
	decodeBody(t, rec, &replay)
	var stored comparisonResponse
	if err := json.Unmarshal(saved.Result, &stored); err != nil {
		t.Fatalf("decode stored result: %v", err)
	}
	if !nearlyEqual(replay.Result.TotalSavings, stored.Result.TotalSavings) {
		t.Fatalf("replayed savings %v differ from stored %v", replay.Result.TotalSavings, stored.Result.TotalSavings)
	}
}
