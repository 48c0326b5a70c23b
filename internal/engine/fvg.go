package engine

import (
	"ictdetect/internal/model"
	"ictdetect/internal/series"
)

// DetectFVGs scans consecutive candle triples for price imbalance. A
// bullish gap at index i exists when low[i+1] > high[i-1]; the gap spans
// [high[i-1], low[i+1]]. Bearish mirrors with high[i+1] < low[i-1]. A gap
// fills at the first later candle whose range reaches strictly inside it;
// filled is a one-way latch and gaps are never re-opened. Output is in
// index order.
func DetectFVGs(s *series.Store) []model.FairValueGap {
	n := s.Len()
	if n < 3 {
		return nil
	}

	var gaps []model.FairValueGap
	for i := 1; i < n-1; i++ {
		prev, next := s.At(i-1), s.At(i+1)

		if next.Low > prev.High {
			gaps = append(gaps, trackFill(s, model.FairValueGap{
				Index:     i,
				Direction: model.DirectionBullish,
				GapTop:    next.Low,
				GapBottom: prev.High,
				FillIndex: -1,
			}))
		}
		if next.High < prev.Low {
			gaps = append(gaps, trackFill(s, model.FairValueGap{
				Index:     i,
				Direction: model.DirectionBearish,
				GapTop:    prev.Low,
				GapBottom: next.High,
				FillIndex: -1,
			}))
		}
	}
	return gaps
}

// trackFill finds the first candle after the gap that trades back into it.
// Strict comparisons keep the candle whose wick merely touches a gap edge
// (the third candle of the triple in particular) from counting as a fill.
func trackFill(s *series.Store, g model.FairValueGap) model.FairValueGap {
	for j := g.Index + 1; j < s.Len(); j++ {
		f := s.At(j)
		if f.Low < g.GapTop && f.High > g.GapBottom {
			g.Filled = true
			g.FillIndex = j
			break
		}
	}
	return g
}
