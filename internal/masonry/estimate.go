package masonry

import (
	"strings"

	"github.com/Simplici0/casasim/internal/catalog"
)

// Request is a wall estimate expressed with catalog labels instead of raw geometry.
// Empty labels select the king_kong_18 brick and the 1:5 mix; nil Pricing uses
// the catalog reference prices.
type Request struct {
	WallArea       float64  `json:"wall_area"`
	JointThickness float64  `json:"joint_thickness"`
	BrickType      string   `json:"brick_type"`
	MortarRatio    string   `json:"mortar_ratio"`
	Pricing        *Pricing `json:"pricing,omitempty"`
}

// Normalized fills in defaulted labels and pricing so equal requests compare equal.
func (r Request) Normalized(cat *catalog.Catalog) Request {
	r.BrickType = strings.TrimSpace(r.BrickType)
	if r.BrickType == "" {
		r.BrickType = catalog.BrickKingKong18
	}
	r.MortarRatio = strings.TrimSpace(r.MortarRatio)
	if r.MortarRatio == "" {
		r.MortarRatio = catalog.Mix1to5
	}
	if r.Pricing == nil {
		p := Pricing(cat.Pricing())
		r.Pricing = &p
	}
	return r
}

// Estimate resolves the request against cat and runs ComputeWallMaterials.
// Unknown brick or mix labels are reported as *catalog.InvalidInputError.
func Estimate(cat *catalog.Catalog, req Request) (Result, error) {
	req = req.Normalized(cat)

	brick, err := cat.Brick(req.BrickType)
	if err != nil {
		return Result{}, &catalog.InvalidInputError{Field: "brick_type", Label: req.BrickType, Reason: "is not a known brick type"}
	}
	mix, err := cat.Mix(req.MortarRatio)
	if err != nil {
		return Result{}, &catalog.InvalidInputError{Field: "mortar_ratio", Label: req.MortarRatio, Reason: "is not a known mix proportion"}
	}

	wall := WallSpec{WallArea: req.WallArea, JointThickness: req.JointThickness}
	return ComputeWallMaterials(wall, brick, mix, *req.Pricing)
}
