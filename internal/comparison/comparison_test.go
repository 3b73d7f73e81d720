package comparison

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/casasim/internal/catalog"
)

func baseMaterial() catalog.Material {
	return catalog.Material{Name: "Albañilería Confinada", CostPerM2: 615.78, IsBase: true}
}

func optimizedMaterial() catalog.Material {
	return catalog.Material{Name: "Panel SIP", CostPerM2: 480.00}
}

func TestCompare_WithSIP(t *testing.T) {
	systems := catalog.Default().Systems()

	result, err := Compare(systems, Request{
		BaseMaterial:      baseMaterial(),
		OptimizedMaterial: optimizedMaterial(),
		ChosenSystemID:    "sip",
		AreaPerUnit:       35,
		UnitCount:         10,
	})
	require.NoError(t, err)

	assert.InDelta(t, 21552.30, result.BaseCostPerUnit, 1e-6)
	assert.InDelta(t, 480*35*0.67, result.OptimizedCostPerUnit, 1e-6)
	assert.InDelta(t, 215523.0, result.TotalBaseCost, 1e-6)
	assert.InDelta(t, 112560.0, result.TotalOptimizedCost, 1e-6)
	assert.InDelta(t, 102963.0, result.TotalSavings, 1e-6)
	assert.InDelta(t, 102963.0/215523.0*100, result.SavingsPercentage, 1e-9)
	assert.InDelta(t, 62.0, result.TimeSavingsPercentage, 1e-9)
	assert.Equal(t, catalog.SystemBaseline, result.BaselineSystem.ID)
	assert.Equal(t, "sip", result.ChosenSystem.ID)
}

func TestCompare_AttributionSplits(t *testing.T) {
	result, err := Compare(catalog.Default().Systems(), Request{
		BaseMaterial:      baseMaterial(),
		OptimizedMaterial: optimizedMaterial(),
		ChosenSystemID:    "icf",
		AreaPerUnit:       35,
		UnitCount:         4,
	})
	require.NoError(t, err)

	require.Len(t, result.Attribution, 2)
	assert.Equal(t, ComponentMaterial, result.Attribution[0].Component)
	assert.Equal(t, ComponentSystem, result.Attribution[1].Component)
	assert.InDelta(t, result.TotalSavings*0.70, result.Attribution[0].Amount, 1e-9)
	assert.InDelta(t, result.TotalSavings*0.30, result.Attribution[1].Amount, 1e-9)

	require.Len(t, result.Breakdown, 2)
	assert.Equal(t, ComponentStructure, result.Breakdown[0].Component)
	assert.Equal(t, ComponentFinishes, result.Breakdown[1].Component)
	assert.InDelta(t, result.TotalSavings*0.82, result.Breakdown[0].Amount, 1e-9)
	assert.InDelta(t, result.TotalSavings*0.18, result.Breakdown[1].Amount, 1e-9)
}

func TestCompare_BaselineAgainstBaseline(t *testing.T) {
	systems := catalog.Default().Systems()

	for _, chosen := range []string{"", catalog.SystemBaseline} {
		result, err := Compare(systems, Request{
			BaseMaterial:      baseMaterial(),
			OptimizedMaterial: baseMaterial(),
			ChosenSystemID:    chosen,
			AreaPerUnit:       35,
			UnitCount:         3,
		})
		require.NoError(t, err)
		assert.Equal(t, 0.0, result.TotalSavings)
		assert.Equal(t, 0.0, result.SavingsPercentage)
		assert.Equal(t, 0.0, result.TimeSavingsPercentage)
	}
}

func TestCompare_NegativeSavingsArePreserved(t *testing.T) {
	luxury := catalog.Material{Name: "Muro premium", CostPerM2: 900}

	result, err := Compare(catalog.Default().Systems(), Request{
		BaseMaterial:      baseMaterial(),
		OptimizedMaterial: luxury,
		ChosenSystemID:    "icf",
		AreaPerUnit:       35,
		UnitCount:         2,
	})
	require.NoError(t, err)

	assert.Less(t, result.TotalSavings, 0.0)
	assert.Less(t, result.SavingsPercentage, 0.0)
	assert.Less(t, result.Attribution[0].Amount, 0.0)
	assert.InDelta(t, result.TotalBaseCost-result.TotalOptimizedCost, result.TotalSavings, 1e-9)
}

func TestCompare_ZeroBaseCostYieldsZeroPercent(t *testing.T) {
	free := catalog.Material{Name: "Donado", CostPerM2: 0}

	result, err := Compare(catalog.Default().Systems(), Request{
		BaseMaterial:      free,
		OptimizedMaterial: optimizedMaterial(),
		ChosenSystemID:    "sip",
		AreaPerUnit:       35,
		UnitCount:         1,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.SavingsPercentage)
	assert.Less(t, result.TotalSavings, 0.0)
}

func TestCompare_InvalidInput(t *testing.T) {
	systems := catalog.Default().Systems()

	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{"zero units", Request{BaseMaterial: baseMaterial(), OptimizedMaterial: optimizedMaterial(), AreaPerUnit: 35, UnitCount: 0}, "unit_count"},
		{"negative units", Request{BaseMaterial: baseMaterial(), OptimizedMaterial: optimizedMaterial(), AreaPerUnit: 35, UnitCount: -1}, "unit_count"},
		{"zero area", Request{BaseMaterial: baseMaterial(), OptimizedMaterial: optimizedMaterial(), AreaPerUnit: 0, UnitCount: 5}, "area_per_unit"},
		{"negative material cost", Request{BaseMaterial: baseMaterial(), OptimizedMaterial: catalog.Material{CostPerM2: -1}, AreaPerUnit: 35, UnitCount: 5}, "optimized_material.cost_per_m2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compare(systems, tt.req)

			var invalid *catalog.InvalidInputError
			require.True(t, errors.As(err, &invalid), "expected InvalidInputError, got %v", err)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestCompare_UnknownSystem(t *testing.T) {
	_, err := Compare(catalog.Default().Systems(), Request{
		BaseMaterial:      baseMaterial(),
		OptimizedMaterial: optimizedMaterial(),
		ChosenSystemID:    "adobe",
		AreaPerUnit:       35,
		UnitCount:         5,
	})

	var unknown *catalog.UnknownSystemError
	require.True(t, errors.As(err, &unknown), "expected UnknownSystemError, got %v", err)
	assert.Equal(t, "adobe", unknown.ID)
}

func TestCompare_Idempotent(t *testing.T) {
	systems := catalog.Default().Systems()
	req := Request{
		BaseMaterial:      baseMaterial(),
		OptimizedMaterial: optimizedMaterial(),
		ChosenSystemID:    "pp-reciclado",
		AreaPerUnit:       42.5,
		UnitCount:         7,
	}

	first, err := Compare(systems, req)
	require.NoError(t, err)
	second, err := Compare(systems, req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
