package model

import "math"

// Candle represents a single price candle. Immutable once ingested.
type Candle struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume,omitempty"`
}

// Body returns the absolute open-close distance.
func (c Candle) Body() float64 { return math.Abs(c.Close - c.Open) }

// Range returns the high-low distance.
func (c Candle) Range() float64 { return c.High - c.Low }

func (c Candle) Bullish() bool { return c.Close > c.Open }
func (c Candle) Bearish() bool { return c.Close < c.Open }

// Degenerate reports whether the candle must be skipped by ratio-based
// detectors: zero range, negative values, or any non-finite field.
func (c Candle) Degenerate() bool {
	for _, v := range [5]float64{c.Open, c.High, c.Low, c.Close, c.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return true
		}
	}
	return c.High <= c.Low
}
