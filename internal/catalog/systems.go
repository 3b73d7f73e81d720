package catalog

import (
	"fmt"
	"strings"
)

// ConstructionSystem describes a construction method relative to the
// traditional baseline. CostFactor and TimeFactor of 1.0 mean "same as baseline".
type ConstructionSystem struct {
	ID                string  `yaml:"id" json:"id"`
	Name              string  `yaml:"name" json:"name"`
	Description       string  `yaml:"description" json:"description"`
	CostFactor        float64 `yaml:"cost_factor" json:"cost_factor"`
	TimeFactor        float64 `yaml:"time_factor" json:"time_factor"`
	ThermalInsulation string  `yaml:"thermal_insulation" json:"thermal_insulation"`
	CarbonFootprint   string  `yaml:"carbon_footprint" json:"carbon_footprint"`
	KeyAdvantage      string  `yaml:"key_advantage" json:"key_advantage"`
	Source            string  `yaml:"source" json:"source"`
	Baseline          bool    `yaml:"baseline" json:"baseline"`
}

// Systems is a fixed, read-only set of construction systems with exactly one baseline.
type Systems struct {
	byID     map[string]ConstructionSystem
	order    []string
	baseline string
}

// NewSystems validates list and indexes it by id.
func NewSystems(list []ConstructionSystem) (Systems, error) {
	s := Systems{byID: make(map[string]ConstructionSystem, len(list))}

	for _, sys := range list {
		sys.ID = strings.TrimSpace(sys.ID)
		if sys.ID == "" {
			return Systems{}, fmt.Errorf("construction system id is required")
		}
		if _, dup := s.byID[sys.ID]; dup {
			return Systems{}, fmt.Errorf("duplicate construction system %q", sys.ID)
		}
		if !positive(sys.CostFactor) || !positive(sys.TimeFactor) {
			return Systems{}, fmt.Errorf("construction system %q: factors must be greater than 0", sys.ID)
		}
		if sys.Baseline {
			if s.baseline != "" {
				return Systems{}, fmt.Errorf("construction systems %q and %q are both marked as baseline", s.baseline, sys.ID)
			}
			if sys.CostFactor != 1 || sys.TimeFactor != 1 {
				return Systems{}, fmt.Errorf("baseline construction system %q must have cost and time factors of 1.0", sys.ID)
			}
			s.baseline = sys.ID
		}
		s.byID[sys.ID] = sys
		s.order = append(s.order, sys.ID)
	}

	if s.baseline == "" {
		return Systems{}, fmt.Errorf("no baseline construction system defined")
	}

	return s, nil
}

// Get resolves id or returns *UnknownSystemError.
func (s Systems) Get(id string) (ConstructionSystem, error) {
	sys, ok := s.byID[id]
	if !ok {
		return ConstructionSystem{}, &UnknownSystemError{ID: id}
	}
	return sys, nil
}

func (s Systems) Baseline() ConstructionSystem {
	return s.byID[s.baseline]
}

// All lists systems in declaration order, baseline included.
func (s Systems) All() []ConstructionSystem {
	out := make([]ConstructionSystem, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func (s Systems) Len() int {
	return len(s.order)
}
