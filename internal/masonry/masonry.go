package masonry

import (
	"math"

	"github.com/Simplici0/casasim/internal/catalog"
)

// WallSpec represents the wall being built. Area is in m², joint thickness in cm.
type WallSpec struct {
	WallArea       float64 `json:"wall_area"`
	JointThickness float64 `json:"joint_thickness"`
}

// Pricing holds the unit prices of the three purchased materials.
type Pricing struct {
	CostPerBrick     float64 `json:"cost_per_brick"`
	CostPerCementBag float64 `json:"cost_per_cement_bag"`
	CostPerSandM3    float64 `json:"cost_per_sand_m3"`
}

// Result contains the material takeoff for a wall.
type Result struct {
	BrickCount        int     `json:"brick_count"`
	CementBags        int     `json:"cement_bags"`
	SandVolumeM3      float64 `json:"sand_volume_m3"`
	MortarVolumeM3    float64 `json:"mortar_volume_m3"`
	TotalMaterialCost float64 `json:"total_material_cost"`
	SeismicFactor     float64 `json:"seismic_factor"`
}

// ComputeWallMaterials computes brick, cement and sand quantities and their cost
// for a running-bond wall. Counted items are rounded up; sand and cost are
// rounded to 2 decimals.
func ComputeWallMaterials(wall WallSpec, brick catalog.BrickGeometry, mix catalog.MixProportion, pricing Pricing) (Result, error) {
	if err := validate(wall, brick, mix, pricing); err != nil {
		return Result{}, err
	}

	jointM := wall.JointThickness / cmPerM
	perM2 := BricksPerM2(brick, jointM)

	brickCount, err := countUp(perM2*wall.WallArea*(1+BrickWaste), wall.WallArea)
	if err != nil {
		return Result{}, err
	}

	// Always positive: a brick and its joint cover more face than the brick alone.
	mortarPerM2 := 1.0*brick.Width - perM2*brick.Volume()
	mortar := mortarPerM2 * wall.WallArea * (1 + MortarWaste)

	cementBags, err := countUp(mortar*mix.CementBagsPerM3, wall.WallArea)
	if err != nil {
		return Result{}, err
	}
	sand := round2(mortar * mix.SandM3PerM3)

	total := round2(float64(cementBags)*pricing.CostPerCementBag +
		sand*pricing.CostPerSandM3 +
		float64(brickCount)*pricing.CostPerBrick)
	if math.IsInf(total, 0) || math.IsNaN(total) {
		return Result{}, &catalog.InvalidInputError{Field: "wall_area", Value: wall.WallArea, Reason: "is too large"}
	}

	return Result{
		BrickCount:        brickCount,
		CementBags:        cementBags,
		SandVolumeM3:      sand,
		MortarVolumeM3:    mortar,
		TotalMaterialCost: total,
		SeismicFactor:     SeismicFactor,
	}, nil
}

// countUp rounds v up to a whole item count, rejecting counts an int cannot hold.
func countUp(v, area float64) (int, error) {
	c := math.Ceil(v)
	if c >= float64(math.MaxInt) {
		return 0, &catalog.InvalidInputError{Field: "wall_area", Value: area, Reason: "is too large"}
	}
	return int(c), nil
}

// BricksPerM2 is the number of bricks per square meter of wall laid in running bond.
func BricksPerM2(brick catalog.BrickGeometry, jointM float64) float64 {
	return 1 / ((brick.Length + jointM) * (brick.Height + jointM))
}

func validate(wall WallSpec, brick catalog.BrickGeometry, mix catalog.MixProportion, pricing Pricing) error {
	checks := []struct {
		field string
		value float64
	}{
		{"wall_area", wall.WallArea},
		{"joint_thickness", wall.JointThickness},
		{"brick.length", brick.Length},
		{"brick.height", brick.Height},
		{"brick.width", brick.Width},
		{"mix.cement_bags_per_m3", mix.CementBagsPerM3},
		{"mix.sand_m3_per_m3", mix.SandM3PerM3},
		{"cost_per_brick", pricing.CostPerBrick},
		{"cost_per_cement_bag", pricing.CostPerCementBag},
		{"cost_per_sand_m3", pricing.CostPerSandM3},
	}
	for _, c := range checks {
		if err := catalog.RequirePositive(c.field, c.value); err != nil {
			return err
		}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
