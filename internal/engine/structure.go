package engine

import (
	"ictdetect/internal/model"
	"ictdetect/internal/series"
)

// ClassifyStructure labels every index from the swing sequence inside a
// rolling window of lookback candles ending at that index. Strictly rising
// swing highs and swing lows give BULLISH, strictly falling both give
// BEARISH, anything else is RANGING. A window holding fewer than two swing
// highs or two swing lows is RANGING by policy: too little evidence to call
// a trend.
func ClassifyStructure(s *series.Store, swings []model.SwingPoint, lookback int) []model.StructureLabel {
	n := s.Len()
	labels := make([]model.StructureLabel, n)
	for i := range labels {
		labels[i] = model.StructureRanging
	}
	if lookback <= 0 {
		return labels
	}

	for i := 0; i < n; i++ {
		start := i - lookback + 1
		var highs, lows []float64
		for _, sw := range swings {
			if sw.Index > i {
				break
			}
			if sw.Index < start {
				continue
			}
			if sw.Kind == model.SwingHigh {
				highs = append(highs, sw.Price)
			} else {
				lows = append(lows, sw.Price)
			}
		}
		if len(highs) < 2 || len(lows) < 2 {
			continue
		}
		switch {
		case strictlyRising(highs) && strictlyRising(lows):
			labels[i] = model.StructureBullish
		case strictlyFalling(highs) && strictlyFalling(lows):
			labels[i] = model.StructureBearish
		}
	}
	return labels
}

func strictlyRising(vs []float64) bool {
	for i := 1; i < len(vs); i++ {
		if vs[i] <= vs[i-1] {
			return false
		}
	}
	return true
}

func strictlyFalling(vs []float64) bool {
	for i := 1; i < len(vs); i++ {
		if vs[i] >= vs[i-1] {
			return false
		}
	}
	return true
}
