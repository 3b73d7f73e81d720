package main

import (
	"fmt"
	"io"

	"github.com/Simplici0/casasim/internal/catalog"
	"github.com/Simplici0/casasim/internal/comparison"
	"github.com/Simplici0/casasim/internal/masonry"
)

type wallsOptions struct {
	area          float64
	joint         float64
	brick         string
	mix           string
	pricing       masonry.Pricing
	brickCostSet  bool
	cementCostSet bool
	sandCostSet   bool
}

type compareOptions struct {
	baseCost         float64
	baseCostSet      bool
	optimizedCost    float64
	optimizedCostSet bool
	baselineSystem   string
	system           string
	areaPerUnit      float64
	units            int
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	cat, err := catalog.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return cat, nil
}

func runWalls(w io.Writer, catalogPath string, opts wallsOptions) error {
	cat, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}

	req := masonry.Request{
		WallArea:       opts.area,
		JointThickness: opts.joint,
		BrickType:      opts.brick,
		MortarRatio:    opts.mix,
	}
	if opts.brickCostSet || opts.cementCostSet || opts.sandCostSet {
		// Unset price flags keep the catalog reference price.
		p := masonry.Pricing(cat.Pricing())
		if opts.brickCostSet {
			p.CostPerBrick = opts.pricing.CostPerBrick
		}
		if opts.cementCostSet {
			p.CostPerCementBag = opts.pricing.CostPerCementBag
		}
		if opts.sandCostSet {
			p.CostPerSandM3 = opts.pricing.CostPerSandM3
		}
		req.Pricing = &p
	}
	req = req.Normalized(cat)

	result, err := masonry.Estimate(cat, req)
	if err != nil {
		return err
	}

	printWallReport(w, req, result)
	return nil
}

func runCompare(w io.Writer, catalogPath string, opts compareOptions) error {
	cat, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}

	base := baseMaterial(cat)
	if opts.baseCostSet {
		base = catalog.Material{Name: "base", CostPerM2: opts.baseCost, IsBase: true}
	}
	optimized := base
	if opts.optimizedCostSet {
		optimized = catalog.Material{Name: "optimized", CostPerM2: opts.optimizedCost}
	}

	result, err := comparison.Compare(cat.Systems(), comparison.Request{
		BaseMaterial:      base,
		OptimizedMaterial: optimized,
		BaselineSystemID:  opts.baselineSystem,
		ChosenSystemID:    opts.system,
		AreaPerUnit:       opts.areaPerUnit,
		UnitCount:         opts.units,
	})
	if err != nil {
		return err
	}

	printComparisonReport(w, opts.units, result)
	return nil
}

func runSystems(w io.Writer, catalogPath string) error {
	cat, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}
	printSystemsTable(w, cat.Systems().All())
	return nil
}

// baseMaterial returns the catalog's base material, or the reference confined
// masonry price when the catalog declares none.
func baseMaterial(cat *catalog.Catalog) catalog.Material {
	for _, m := range cat.Materials() {
		if m.IsBase {
			return m
		}
	}
	return catalog.Material{Name: "Albañilería Confinada", CostPerM2: catalog.DefaultBaseCostPerM2, IsBase: true}
}
