package risk

// Limits holds the hard policy thresholds the Governor enforces. The struct
// is passed by value everywhere so a run's parameters stay frozen: there is
// no global mutable policy state.
type Limits struct {
	// Price validation
	MinPrice float64 `json:"min_price" yaml:"min_price"`
	MaxPrice float64 `json:"max_price" yaml:"max_price"`

	// Liquidity floor (shares traded per day)
	MinLiquidity float64 `json:"min_liquidity" yaml:"min_liquidity"`

	// Entry rules
	MinConfidence     float64 `json:"min_confidence" yaml:"min_confidence"`
	MaxPositionSize   int     `json:"max_position_size" yaml:"max_position_size"`
	MaxSectorExposure float64 `json:"max_sector_exposure" yaml:"max_sector_exposure"`

	// Exit rules
	ForceExitConfidence float64 `json:"force_exit_confidence" yaml:"force_exit_confidence"`
	MaxDrawdown         float64 `json:"max_drawdown" yaml:"max_drawdown"`
}

// DefaultLimits returns the standard risk policy.
func DefaultLimits() Limits {
	return Limits{
		MinPrice:            5.0,
		MaxPrice:            1000.0,
		MinLiquidity:        100_000,
		MinConfidence:       62.0,
		MaxPositionSize:     10_000,
		MaxSectorExposure:   0.25,
		ForceExitConfidence: 45.0,
		MaxDrawdown:         0.08,
	}
}
