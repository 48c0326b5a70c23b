package engine

import (
	"ictdetect/internal/model"
	"ictdetect/internal/series"
)

// DetectOrderBlocks flags candles whose body and volume mark institutional
// accumulation or distribution. A bullish block needs a body covering at
// least MinBodyRatio of the candle range, a close above the open, and
// volume of at least VolumeThreshold times the trailing average (window
// strictly before the candle). Bearish mirrors with close below open.
// Degenerate candles and candles with no trailing volume history are
// skipped. Output is in index order.
func DetectOrderBlocks(s *series.Store, p Params) []model.OrderBlock {
	n := s.Len()
	var blocks []model.OrderBlock
	for i := 0; i < n; i++ {
		c := s.At(i)
		if c.Degenerate() {
			continue
		}
		bodyRatio := c.Body() / c.Range()
		if bodyRatio < p.MinBodyRatio {
			continue
		}
		avgVol := s.TrailingAvgVolume(i, p.VolumeWindow)
		if avgVol <= 0 {
			continue
		}
		volRatio := c.Volume / avgVol
		if volRatio < p.VolumeThreshold {
			continue
		}

		var dir model.Direction
		switch {
		case c.Bullish():
			dir = model.DirectionBullish
		case c.Bearish():
			dir = model.DirectionBearish
		default:
			continue
		}

		ob := model.OrderBlock{
			StartIndex:      i,
			Direction:       dir,
			Top:             c.High,
			Bottom:          c.Low,
			Strength:        blockStrength(bodyRatio, volRatio, p.VolumeThreshold),
			MitigationIndex: -1,
		}
		// One-way latch: the first later candle overlapping the block
		// mitigates it. The block is retained either way.
		for j := i + 1; j < n; j++ {
			f := s.At(j)
			if f.Low <= ob.Top && f.High >= ob.Bottom {
				ob.Mitigated = true
				ob.MitigationIndex = j
				break
			}
		}
		blocks = append(blocks, ob)
	}
	return blocks
}

// blockStrength blends body ratio with volume ratio. The volume component
// saturates at twice the threshold so a single blow-off print cannot
// dominate the score.
func blockStrength(bodyRatio, volRatio, volThreshold float64) float64 {
	volComponent := volRatio / (2 * volThreshold)
	if volComponent > 1 {
		volComponent = 1
	}
	strength := (bodyRatio + volComponent) / 2
	if strength > 1 {
		return 1
	}
	if strength < 0 {
		return 0
	}
	return strength
}
