package comparison

import (
	"github.com/Simplici0/casasim/internal/catalog"
)

// Fixed illustrative splits of the total savings. They are not derived from
// the component costs.
const (
	MaterialShare  = 0.70
	SystemShare    = 0.30
	StructureShare = 0.82
	FinishesShare  = 0.18
)

// Attribution component labels.
const (
	ComponentMaterial  = "material choice"
	ComponentSystem    = "construction system choice"
	ComponentStructure = "structure"
	ComponentFinishes  = "finishes"
)

// Request compares a base material built with the baseline system against an
// optimized material built with a chosen system, over UnitCount dwellings of
// AreaPerUnit m² each.
type Request struct {
	BaseMaterial      catalog.Material `json:"base_material"`
	OptimizedMaterial catalog.Material `json:"optimized_material"`
	BaselineSystemID  string           `json:"baseline_system_id"`
	ChosenSystemID    string           `json:"chosen_system_id"`
	AreaPerUnit       float64          `json:"area_per_unit"`
	UnitCount         int              `json:"unit_count"`
}

// Share is an amount of savings attributed to a component.
type Share struct {
	Component string  `json:"component"`
	Amount    float64 `json:"amount"`
}

// Result holds unit and project costs for both alternatives. TotalSavings is
// negative when the optimized alternative is more expensive.
type Result struct {
	BaselineSystem        catalog.ConstructionSystem `json:"baseline_system"`
	ChosenSystem          catalog.ConstructionSystem `json:"chosen_system"`
	BaseCostPerUnit       float64                    `json:"base_cost_per_unit"`
	OptimizedCostPerUnit  float64                    `json:"optimized_cost_per_unit"`
	TotalBaseCost         float64                    `json:"total_base_cost"`
	TotalOptimizedCost    float64                    `json:"total_optimized_cost"`
	TotalSavings          float64                    `json:"total_savings"`
	SavingsPercentage     float64                    `json:"savings_percentage"`
	TimeSavingsPercentage float64                    `json:"time_savings_percentage"`
	Attribution           []Share                    `json:"attribution"`
	Breakdown             []Share                    `json:"breakdown"`
}

// Compare computes base vs. optimized costs. The chosen system's cost factor
// is applied to the optimized unit cost only.
//
// An empty BaselineSystemID selects the catalog baseline. An empty
// ChosenSystemID means no alternative system and also resolves to the baseline.
func Compare(systems catalog.Systems, req Request) (Result, error) {
	if req.UnitCount <= 0 {
		return Result{}, &catalog.InvalidInputError{Field: "unit_count", Value: float64(req.UnitCount)}
	}
	if err := catalog.RequirePositive("area_per_unit", req.AreaPerUnit); err != nil {
		return Result{}, err
	}
	if err := catalog.RequireNonNegative("base_material.cost_per_m2", req.BaseMaterial.CostPerM2); err != nil {
		return Result{}, err
	}
	if err := catalog.RequireNonNegative("optimized_material.cost_per_m2", req.OptimizedMaterial.CostPerM2); err != nil {
		return Result{}, err
	}

	baseline, err := resolve(systems, req.BaselineSystemID)
	if err != nil {
		return Result{}, err
	}
	chosen, err := resolve(systems, req.ChosenSystemID)
	if err != nil {
		return Result{}, err
	}

	baseCostPerUnit := req.BaseMaterial.CostPerM2 * req.AreaPerUnit
	optimizedCostPerUnit := req.OptimizedMaterial.CostPerM2 * req.AreaPerUnit * chosen.CostFactor

	units := float64(req.UnitCount)
	totalBase := baseCostPerUnit * units
	totalOptimized := optimizedCostPerUnit * units
	savings := totalBase - totalOptimized

	pct := 0.0
	if totalBase > 0 {
		pct = savings / totalBase * 100
	}

	return Result{
		BaselineSystem:        baseline,
		ChosenSystem:          chosen,
		BaseCostPerUnit:       baseCostPerUnit,
		OptimizedCostPerUnit:  optimizedCostPerUnit,
		TotalBaseCost:         totalBase,
		TotalOptimizedCost:    totalOptimized,
		TotalSavings:          savings,
		SavingsPercentage:     pct,
		TimeSavingsPercentage: (1 - chosen.TimeFactor) * 100,
		Attribution: []Share{
			{Component: ComponentMaterial, Amount: savings * MaterialShare},
			{Component: ComponentSystem, Amount: savings * SystemShare},
		},
		Breakdown: []Share{
			{Component: ComponentStructure, Amount: savings * StructureShare},
			{Component: ComponentFinishes, Amount: savings * FinishesShare},
		},
	}, nil
}

func resolve(systems catalog.Systems, id string) (catalog.ConstructionSystem, error) {
	if id == "" {
		return systems.Baseline(), nil
	}
	return systems.Get(id)
}
