package catalog

// Identifiers of the built-in entries.
const (
	BrickKingKong18    = "king_kong_18"
	BrickPandereta     = "pandereta"
	BrickConcreteBlock = "bloque_concreto"

	Mix1to5 = "1:5"

	SystemBaseline = "base-tradicional"
)

// Default reference prices in soles (PEN).
const (
	DefaultCostPerBrick     = 0.95
	DefaultCostPerCementBag = 26.50
	DefaultCostPerSandM3    = 55.00
)

// Defaults used by the comparison when the caller has no material data.
const (
	DefaultBaseCostPerM2 = 615.78
	DefaultAreaPerUnit   = 35.00
)

// DefaultData returns the built-in catalog contents. The caller owns the returned value.
func DefaultData() Data {
	return Data{
		Pricing: Pricing{
			CostPerBrick:     DefaultCostPerBrick,
			CostPerCementBag: DefaultCostPerCementBag,
			CostPerSandM3:    DefaultCostPerSandM3,
		},
		Bricks: []BrickGeometry{
			{ID: BrickKingKong18, Name: "Ladrillo King Kong 18 huecos", Length: 0.24, Height: 0.09, Width: 0.13},
			{ID: BrickPandereta, Name: "Ladrillo pandereta", Length: 0.23, Height: 0.09, Width: 0.12},
			{ID: BrickConcreteBlock, Name: "Bloque de concreto", Length: 0.39, Height: 0.19, Width: 0.14},
		},
		// Cement bags (42.5 kg) and coarse sand per m³ of mortar.
		Mixes: []MixProportion{
			{Ratio: "1:3", CementBagsPerM3: 10.5, SandM3PerM3: 0.95},
			{Ratio: "1:4", CementBagsPerM3: 8.9, SandM3PerM3: 1.00},
			{Ratio: Mix1to5, CementBagsPerM3: 7.4, SandM3PerM3: 1.05},
			{Ratio: "1:6", CementBagsPerM3: 6.3, SandM3PerM3: 1.07},
		},
		Systems: []ConstructionSystem{
			{
				ID:                SystemBaseline,
				Name:              "Albañilería Confinada (Base)",
				Description:       "Sistema base de ladrillo y concreto vaciado in situ.",
				CostFactor:        1.00,
				TimeFactor:        1.00,
				ThermalInsulation: "Bajo",
				CarbonFootprint:   "Alta (cemento Portland, ladrillo cocido)",
				KeyAdvantage:      "Mano de obra conocida en Perú.",
				Source:            "Presupuesto de referencia",
				Baseline:          true,
			},
			{
				ID:                "sip",
				Name:              "Paneles SIP",
				Description:       "Paneles estructurales aislados (OSB + EPS). Construcción en seco, ligera y de rápido montaje.",
				CostFactor:        0.67,
				TimeFactor:        0.38,
				ThermalInsulation: "Muy alto (núcleo de poliestireno)",
				CarbonFootprint:   "Baja-Media (70% menos que tradicional)",
				KeyAdvantage:      "Equilibrio costo-velocidad y alto aislamiento.",
				Source:            "Fichas técnicas de proveedores",
			},
			{
				ID:                "icf",
				Name:              "Sistema ICF",
				Description:       "Bloques de EPS que sirven de encofrado perdido para un núcleo de concreto armado.",
				CostFactor:        0.85,
				TimeFactor:        0.50,
				ThermalInsulation: "Superior (ahorro > 40% energía)",
				CarbonFootprint:   "Media-Alta (alto contenido de cemento)",
				KeyAdvantage:      "Máximo confort térmico y ahorro energético a largo plazo.",
				Source:            "Fichas técnicas de proveedores",
			},
			{
				ID:                "pp-reciclado",
				Name:              "Bloques PP reciclado",
				Description:       "Bloques encajables de polipropileno reciclado.",
				CostFactor:        0.60,
				TimeFactor:        0.24,
				ThermalInsulation: "Alto (propiedades del polímero)",
				CarbonFootprint:   "Muy baja (material 100% reciclado)",
				KeyAdvantage:      "El más rápido y económico. Fuerte impacto en sostenibilidad.",
				Source:            "Fichas técnicas de proveedores",
			},
		},
		Materials: []Material{
			{
				Name:               "Albañilería Confinada",
				Category:           "base",
				CostPerM2:          DefaultBaseCostPerM2,
				CO2Impact:          "Alto",
				Description:        "Muro de ladrillo King Kong 18 huecos asentado de soga con mortero 1:5.",
				RegionAvailability: "Costa, Sierra, Selva",
				IsBase:             true,
			},
			{
				Name:               "Panel SIP OSB/EPS",
				Category:           "optimized",
				CostPerM2:          480.00,
				CO2Impact:          "Bajo",
				EnergySavingsPct:   35,
				LaborReductionPct:  40,
				Description:        "Panel estructural aislado de 12 cm.",
				RegionAvailability: "Costa, Sierra",
			},
			{
				Name:               "Bloque ICF",
				Category:           "optimized",
				CostPerM2:          560.00,
				CO2Impact:          "Medio",
				EnergySavingsPct:   40,
				LaborReductionPct:  30,
				Description:        "Bloque de EPS con núcleo de concreto armado.",
				RegionAvailability: "Costa",
			},
			{
				Name:               "Bloque PP reciclado",
				Category:           "optimized",
				CostPerM2:          450.00,
				CO2Impact:          "Muy bajo",
				EnergySavingsPct:   25,
				LaborReductionPct:  50,
				Description:        "Bloque encajable de polipropileno reciclado.",
				RegionAvailability: "Costa",
			},
		},
		FAQs: defaultFAQs(),
	}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(DefaultData())
	if err != nil {
		panic("catalog: invalid built-in data: " + err.Error())
	}
	return c
}
