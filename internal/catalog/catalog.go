package catalog

import (
	"fmt"
	"math"
	"strings"
)

// BrickGeometry holds the external dimensions of a brick unit in meters.
type BrickGeometry struct {
	ID     string  `yaml:"id" json:"id"`
	Name   string  `yaml:"name" json:"name"`
	Length float64 `yaml:"length" json:"length"`
	Height float64 `yaml:"height" json:"height"`
	Width  float64 `yaml:"width" json:"width"`
}

// Volume is the gross exterior volume of the unit. Holes are not subtracted.
func (b BrickGeometry) Volume() float64 {
	return b.Length * b.Height * b.Width
}

// MixProportion maps a cement:sand ratio label to its per-m³ mortar yields.
type MixProportion struct {
	Ratio           string  `yaml:"ratio" json:"ratio"`
	CementBagsPerM3 float64 `yaml:"cement_bags_per_m3" json:"cement_bags_per_m3"`
	SandM3PerM3     float64 `yaml:"sand_m3_per_m3" json:"sand_m3_per_m3"`
}

// Pricing is the reference unit pricing used when a caller supplies none.
type Pricing struct {
	CostPerBrick     float64 `yaml:"cost_per_brick" json:"cost_per_brick"`
	CostPerCementBag float64 `yaml:"cost_per_cement_bag" json:"cost_per_cement_bag"`
	CostPerSandM3    float64 `yaml:"cost_per_sand_m3" json:"cost_per_sand_m3"`
}

// Material is a priced wall material. The engines treat it as opaque pricing input.
type Material struct {
	ID                 int64   `yaml:"-" json:"id"`
	Name               string  `yaml:"name" json:"name"`
	Category           string  `yaml:"category" json:"category"`
	CostPerM2          float64 `yaml:"cost_per_m2" json:"cost_per_m2"`
	CO2Impact          string  `yaml:"co2_impact" json:"co2_impact"`
	EnergySavingsPct   float64 `yaml:"energy_savings_pct" json:"energy_savings_pct"`
	LaborReductionPct  float64 `yaml:"labor_reduction_pct" json:"labor_reduction_pct"`
	Description        string  `yaml:"description" json:"description"`
	RegionAvailability string  `yaml:"region_availability" json:"region_availability"`
	IsBase             bool    `yaml:"is_base" json:"is_base"`
}

// Catalog is the immutable reference data injected into the engines.
// All accessors return copies; a Catalog is safe for concurrent reads.
type Catalog struct {
	bricks     map[string]BrickGeometry
	brickOrder []string
	mixes      map[string]MixProportion
	mixOrder   []string
	systems    Systems
	pricing    Pricing
	materials  []Material
	faqs       []FAQ
}

// Data is the plain form a Catalog is built from.
type Data struct {
	Pricing   Pricing              `yaml:"pricing"`
	Bricks    []BrickGeometry      `yaml:"bricks"`
	Mixes     []MixProportion      `yaml:"mixes"`
	Systems   []ConstructionSystem `yaml:"systems"`
	Materials []Material           `yaml:"materials"`
	FAQs      []FAQ                `yaml:"faqs"`
}

// New validates data and builds a Catalog from it.
func New(data Data) (*Catalog, error) {
	if err := validatePricing(data.Pricing); err != nil {
		return nil, err
	}

	c := &Catalog{
		bricks:  make(map[string]BrickGeometry, len(data.Bricks)),
		mixes:   make(map[string]MixProportion, len(data.Mixes)),
		pricing: data.Pricing,
	}

	if len(data.Bricks) == 0 {
		return nil, fmt.Errorf("catalog has no brick types")
	}
	for _, b := range data.Bricks {
		b.ID = strings.TrimSpace(b.ID)
		if b.ID == "" {
			return nil, fmt.Errorf("brick type id is required")
		}
		if _, dup := c.bricks[b.ID]; dup {
			return nil, fmt.Errorf("duplicate brick type %q", b.ID)
		}
		if !positive(b.Length) || !positive(b.Height) || !positive(b.Width) {
			return nil, fmt.Errorf("brick type %q: dimensions must be greater than 0", b.ID)
		}
		c.bricks[b.ID] = b
		c.brickOrder = append(c.brickOrder, b.ID)
	}

	if len(data.Mixes) == 0 {
		return nil, fmt.Errorf("catalog has no mix proportions")
	}
	for _, m := range data.Mixes {
		m.Ratio = strings.TrimSpace(m.Ratio)
		if m.Ratio == "" {
			return nil, fmt.Errorf("mix ratio label is required")
		}
		if _, dup := c.mixes[m.Ratio]; dup {
			return nil, fmt.Errorf("duplicate mix proportion %q", m.Ratio)
		}
		if !positive(m.CementBagsPerM3) || !positive(m.SandM3PerM3) {
			return nil, fmt.Errorf("mix proportion %q: yields must be greater than 0", m.Ratio)
		}
		c.mixes[m.Ratio] = m
		c.mixOrder = append(c.mixOrder, m.Ratio)
	}

	systems, err := NewSystems(data.Systems)
	if err != nil {
		return nil, err
	}
	c.systems = systems

	seen := make(map[string]bool, len(data.Materials))
	bases := 0
	for _, m := range data.Materials {
		if strings.TrimSpace(m.Name) == "" {
			return nil, fmt.Errorf("material name is required")
		}
		if seen[m.Name] {
			return nil, fmt.Errorf("duplicate material %q", m.Name)
		}
		seen[m.Name] = true
		if m.CostPerM2 < 0 || math.IsNaN(m.CostPerM2) || math.IsInf(m.CostPerM2, 0) {
			return nil, fmt.Errorf("material %q: cost_per_m2 must be 0 or greater", m.Name)
		}
		if m.IsBase {
			bases++
		}
	}
	if bases > 1 {
		return nil, fmt.Errorf("catalog declares %d base materials, want at most 1", bases)
	}
	c.materials = append([]Material(nil), data.Materials...)

	faqs, err := newFAQs(data.FAQs)
	if err != nil {
		return nil, err
	}
	c.faqs = faqs

	return c, nil
}

// Brick returns the geometry registered under id.
func (c *Catalog) Brick(id string) (BrickGeometry, error) {
	b, ok := c.bricks[id]
	if !ok {
		return BrickGeometry{}, fmt.Errorf("%w: %q", ErrUnknownBrick, id)
	}
	return b, nil
}

// Bricks lists brick geometries in declaration order.
func (c *Catalog) Bricks() []BrickGeometry {
	out := make([]BrickGeometry, 0, len(c.brickOrder))
	for _, id := range c.brickOrder {
		out = append(out, c.bricks[id])
	}
	return out
}

// Mix returns the yields registered under the ratio label.
func (c *Catalog) Mix(ratio string) (MixProportion, error) {
	m, ok := c.mixes[ratio]
	if !ok {
		return MixProportion{}, fmt.Errorf("%w: %q", ErrUnknownMix, ratio)
	}
	return m, nil
}

// Mixes lists mix proportions in declaration order.
func (c *Catalog) Mixes() []MixProportion {
	out := make([]MixProportion, 0, len(c.mixOrder))
	for _, r := range c.mixOrder {
		out = append(out, c.mixes[r])
	}
	return out
}

func (c *Catalog) Systems() Systems {
	return c.systems
}

func (c *Catalog) Pricing() Pricing {
	return c.pricing
}

// Materials returns the materials used to seed a fresh database.
func (c *Catalog) Materials() []Material {
	return append([]Material(nil), c.materials...)
}

func validatePricing(p Pricing) error {
	if !positive(p.CostPerBrick) {
		return fmt.Errorf("pricing: cost_per_brick must be greater than 0")
	}
	if !positive(p.CostPerCementBag) {
		return fmt.Errorf("pricing: cost_per_cement_bag must be greater than 0")
	}
	if !positive(p.CostPerSandM3) {
		return fmt.Errorf("pricing: cost_per_sand_m3 must be greater than 0")
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
