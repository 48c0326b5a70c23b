package engine

import (
	"ictdetect/internal/model"
	"ictdetect/internal/series"
)

// DetectSwings finds local extrema over a symmetric window. A candle is a
// swing high only when its high is the strict maximum across
// [i-lookback, i+lookback]; the mirrored rule gives swing lows. Equal
// extremes are not swings, so a flat top never yields duplicate pivots.
// Output is in index order.
func DetectSwings(s *series.Store, lookback int) []model.SwingPoint {
	n := s.Len()
	if lookback <= 0 || n < 2*lookback+1 {
		return nil
	}

	var swings []model.SwingPoint
	for i := lookback; i < n-lookback; i++ {
		c := s.At(i)
		isHigh, isLow := true, true
		for j := i - lookback; j <= i+lookback; j++ {
			if j == i {
				continue
			}
			o := s.At(j)
			if o.High >= c.High {
				isHigh = false
			}
			if o.Low <= c.Low {
				isLow = false
			}
			if !isHigh && !isLow {
				break
			}
		}
		if isHigh {
			swings = append(swings, model.SwingPoint{Index: i, Kind: model.SwingHigh, Price: c.High})
		}
		if isLow {
			swings = append(swings, model.SwingPoint{Index: i, Kind: model.SwingLow, Price: c.Low})
		}
	}
	return swings
}
