package masonry

// Waste allowances added on top of raw quantities.
const (
	BrickWaste  = 0.05
	MortarWaste = 0.10
)

const cmPerM = 100.0

// SeismicFactor is reported as-is; no structural adequacy check is computed.
const SeismicFactor = 1.0
