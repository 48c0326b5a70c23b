// Package series holds the validated, immutable candle table the detectors
// read. Structural problems are rejected here so the detectors never see
// malformed input.
package series

import (
	"errors"
	"fmt"

	"ictdetect/internal/model"
)

var (
	// ErrEmpty is returned when no candles were supplied.
	ErrEmpty = errors.New("series: no candles")
	// ErrNonMonotonic is returned when timestamps are not strictly increasing.
	ErrNonMonotonic = errors.New("series: timestamps not strictly increasing")
)

// Store is an ordered, read-only candle table. Index order is time order.
type Store struct {
	candles    []model.Candle
	degenerate int
}

// New validates and copies the candle set. Zero-length input and
// non-monotonic timestamps fail fast; degenerate candles are accepted but
// counted so callers can report them.
func New(candles []model.Candle) (*Store, error) {
	if len(candles) == 0 {
		return nil, ErrEmpty
	}
	owned := make([]model.Candle, len(candles))
	copy(owned, candles)

	degenerate := 0
	for i, c := range owned {
		if i > 0 && c.Timestamp <= owned[i-1].Timestamp {
			return nil, fmt.Errorf("%w: index %d (%d <= %d)",
				ErrNonMonotonic, i, c.Timestamp, owned[i-1].Timestamp)
		}
		if c.Degenerate() {
			degenerate++
		}
	}
	return &Store{candles: owned, degenerate: degenerate}, nil
}

// Len returns the number of candles.
func (s *Store) Len() int { return len(s.candles) }

// At returns the candle at index i.
func (s *Store) At(i int) model.Candle { return s.candles[i] }

// Candles exposes the full ordered series. Callers must treat the slice as
// read-only.
func (s *Store) Candles() []model.Candle { return s.candles }

// Window returns candles in [from, to), clamped to the valid range.
func (s *Store) Window(from, to int) []model.Candle {
	if from < 0 {
		from = 0
	}
	if to > len(s.candles) {
		to = len(s.candles)
	}
	if from >= to {
		return nil
	}
	return s.candles[from:to]
}

// DegenerateCount reports how many ingested candles were degenerate.
func (s *Store) DegenerateCount() int { return s.degenerate }

// TrailingAvgVolume averages volume over up to window candles strictly
// before index i. Returns 0 when no trailing candles exist.
func (s *Store) TrailingAvgVolume(i, window int) float64 {
	if window <= 0 {
		return 0
	}
	from := i - window
	if from < 0 {
		from = 0
	}
	if from >= i {
		return 0
	}
	var sum float64
	for j := from; j < i; j++ {
		sum += s.candles[j].Volume
	}
	return sum / float64(i-from)
}
