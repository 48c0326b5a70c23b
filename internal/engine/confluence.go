package engine

import (
	"ictdetect/internal/model"
	"ictdetect/internal/series"
)

// OrderBlockActiveAt reports whether a block is in play at index i: it was
// created earlier and had not been mitigated before i. The candle that
// first trades into the block still counts, that touch is the signal.
func OrderBlockActiveAt(ob model.OrderBlock, i int) bool {
	return ob.StartIndex < i && (!ob.Mitigated || ob.MitigationIndex >= i)
}

// GapActiveAt is the same rule for fair value gaps.
func GapActiveAt(g model.FairValueGap, i int) bool {
	return g.Index < i && (!g.Filled || g.FillIndex >= i)
}

// GrabActiveAt reports whether a grab fired within recency candles up to
// and including i.
func GrabActiveAt(g model.LiquidityGrab, i, recency int) bool {
	return g.Index <= i && i-g.Index <= recency
}

// ScoreConfluence sums the binary factor contributions per index. The long
// side counts: an active bullish order block containing the close, an
// active bullish gap containing the close, a long grab within GrabRecency,
// and a bullish structure label. The short side mirrors with the bearish
// variants, so each side is bounded by four.
func ScoreConfluence(
	s *series.Store,
	blocks []model.OrderBlock,
	gaps []model.FairValueGap,
	grabs []model.LiquidityGrab,
	structure []model.StructureLabel,
	p Params,
) []model.ConfluenceScore {
	n := s.Len()
	scores := make([]model.ConfluenceScore, n)
	for i := 0; i < n; i++ {
		price := s.At(i).Close
		var long, short int

		if hasActiveBlock(blocks, i, price, model.DirectionBullish) {
			long++
		}
		if hasActiveBlock(blocks, i, price, model.DirectionBearish) {
			short++
		}
		if hasActiveGap(gaps, i, price, model.DirectionBullish) {
			long++
		}
		if hasActiveGap(gaps, i, price, model.DirectionBearish) {
			short++
		}
		if hasRecentGrab(grabs, i, p.GrabRecency, model.GrabLong) {
			long++
		}
		if hasRecentGrab(grabs, i, p.GrabRecency, model.GrabShort) {
			short++
		}
		if i < len(structure) {
			switch structure[i] {
			case model.StructureBullish:
				long++
			case model.StructureBearish:
				short++
			}
		}
		scores[i] = model.ConfluenceScore{LongScore: long, ShortScore: short}
	}
	return scores
}

// Bucket maps a score to its reporting tier.
func (p Params) Bucket(score int) model.ConfluenceBucket {
	switch {
	case score >= p.ConfluenceHigh:
		return model.ConfluenceHigh
	case score >= p.ConfluenceLow:
		return model.ConfluenceMedium
	default:
		return model.ConfluenceLow
	}
}

func hasActiveBlock(blocks []model.OrderBlock, i int, price float64, dir model.Direction) bool {
	for _, ob := range blocks {
		if ob.Direction == dir && OrderBlockActiveAt(ob, i) &&
			price >= ob.Bottom && price <= ob.Top {
			return true
		}
	}
	return false
}

func hasActiveGap(gaps []model.FairValueGap, i int, price float64, dir model.Direction) bool {
	for _, g := range gaps {
		if g.Direction == dir && GapActiveAt(g, i) &&
			price >= g.GapBottom && price <= g.GapTop {
			return true
		}
	}
	return false
}

func hasRecentGrab(grabs []model.LiquidityGrab, i, recency int, side model.GrabSide) bool {
	for _, g := range grabs {
		if g.Index > i {
			break
		}
		if g.Direction == side && GrabActiveAt(g, i, recency) {
			return true
		}
	}
	return false
}
