package engine

import (
	"sort"

	"ictdetect/internal/model"
	"ictdetect/internal/series"
)

// DetectLiquidityGrabs finds stop-hunt sweeps beyond known swing levels.
// For a swing low at price L, a long grab fires at the first later candle
// that trades below L*(1-SweepThreshold) on volume of at least
// LiquidityVolumeIncrease times the trailing average and still closes back
// above L. Swing highs mirror to short grabs. Each swing reports at most
// one grab; a swing no candle ever qualifies against produces nothing.
// Output is sorted by candle index.
func DetectLiquidityGrabs(s *series.Store, swings []model.SwingPoint, p Params) []model.LiquidityGrab {
	n := s.Len()
	var grabs []model.LiquidityGrab
	for _, sw := range swings {
		for i := sw.Index + 1; i < n; i++ {
			c := s.At(i)
			if c.Degenerate() {
				continue
			}
			avgVol := s.TrailingAvgVolume(i, p.VolumeWindow)
			if avgVol <= 0 || c.Volume < p.LiquidityVolumeIncrease*avgVol {
				continue
			}

			if sw.Kind == model.SwingLow {
				if c.Low < sw.Price*(1-p.SweepThreshold) && c.Close > sw.Price {
					grabs = append(grabs, model.LiquidityGrab{
						Index:             i,
						Direction:         model.GrabLong,
						SweptLevel:        sw.Price,
						SweepMagnitudePct: (sw.Price - c.Low) / sw.Price * 100,
						ReversalConfirmed: true,
					})
					break
				}
			} else {
				if c.High > sw.Price*(1+p.SweepThreshold) && c.Close < sw.Price {
					grabs = append(grabs, model.LiquidityGrab{
						Index:             i,
						Direction:         model.GrabShort,
						SweptLevel:        sw.Price,
						SweepMagnitudePct: (c.High - sw.Price) / sw.Price * 100,
						ReversalConfirmed: true,
					})
					break
				}
			}
		}
	}
	// Grabs from different swings can interleave; present them in time order.
	sort.SliceStable(grabs, func(a, b int) bool { return grabs[a].Index < grabs[b].Index })
	return grabs
}
