package engine

// Params are the externally configurable detector thresholds. Detectors take
// them by value, never as shared mutable state, so runs stay pure and safe
// to fan out.
type Params struct {
	SwingLookback           int     // symmetric window for swing detection
	MinBodyRatio            float64 // minimum |close-open|/(high-low) for an order block
	VolumeThreshold         float64 // order block volume vs trailing average
	LiquidityVolumeIncrease float64 // grab volume vs trailing average
	SweepThreshold          float64 // fraction price must sweep beyond a swing level
	StructureLookback       int     // rolling window for structure labels
	GrabRecency             int     // candles a grab stays active for scoring
	VolumeWindow            int     // trailing window for average volume
	ConfluenceHigh          int     // minimum score for the HIGH bucket
	ConfluenceLow           int     // minimum score for the MEDIUM bucket
}

// DefaultParams returns the standard thresholds.
func DefaultParams() Params {
	return Params{
		SwingLookback:           20,
		MinBodyRatio:            0.5,
		VolumeThreshold:         1.3,
		LiquidityVolumeIncrease: 1.8,
		SweepThreshold:          0.008,
		StructureLookback:       50,
		GrabRecency:             10,
		VolumeWindow:            20,
		ConfluenceHigh:          4,
		ConfluenceLow:           2,
	}
}
