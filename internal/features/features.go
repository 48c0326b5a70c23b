// Package features flattens an analysis into the fixed-column numeric table
// the downstream classifier consumes. The classifier itself is a black box;
// only the column contract lives here.
package features

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"ictdetect/internal/engine"
	"ictdetect/internal/model"
	"ictdetect/internal/series"
)

// Columns is the stable exported column order. Renaming or reordering
// breaks the contract with the classifier.
var Columns = []string{
	"order_block_bullish",
	"order_block_bearish",
	"order_block_strength",
	"fvg_bullish",
	"fvg_bearish",
	"liquidity_grab_long",
	"liquidity_grab_short",
	"market_structure",
	"confluence_long",
	"confluence_short",
}

// Row is one per-index feature vector, zippable back onto the candle series
// by Index without re-running detection.
type Row struct {
	Index              int
	OrderBlockBullish  float64 // 0/1: close inside an active bullish block
	OrderBlockBearish  float64 // 0/1
	OrderBlockStrength float64 // strongest containing active block, 0 if none
	FVGBullish         float64 // 0/1: close inside an active bullish gap
	FVGBearish         float64 // 0/1
	LiquidityGrabLong  float64 // 0/1: long grab within the recency window
	LiquidityGrabShort float64 // 0/1
	MarketStructure    float64 // 1 bullish, -1 bearish, 0 ranging
	ConfluenceLong     float64
	ConfluenceShort    float64
}

// Values returns the row in Columns order.
func (r Row) Values() []float64 {
	return []float64{
		r.OrderBlockBullish,
		r.OrderBlockBearish,
		r.OrderBlockStrength,
		r.FVGBullish,
		r.FVGBearish,
		r.LiquidityGrabLong,
		r.LiquidityGrabShort,
		r.MarketStructure,
		r.ConfluenceLong,
		r.ConfluenceShort,
	}
}

// Build derives one row per candle using the same activity rules the
// confluence scorer applies.
func Build(s *series.Store, a *engine.Analysis, p engine.Params) []Row {
	rows := make([]Row, s.Len())
	for i := range rows {
		price := s.At(i).Close
		r := Row{Index: i}

		for _, ob := range a.OrderBlocks {
			if !engine.OrderBlockActiveAt(ob, i) || price < ob.Bottom || price > ob.Top {
				continue
			}
			switch ob.Direction {
			case model.DirectionBullish:
				r.OrderBlockBullish = 1
			case model.DirectionBearish:
				r.OrderBlockBearish = 1
			}
			if ob.Strength > r.OrderBlockStrength {
				r.OrderBlockStrength = ob.Strength
			}
		}
		for _, g := range a.Gaps {
			if !engine.GapActiveAt(g, i) || price < g.GapBottom || price > g.GapTop {
				continue
			}
			if g.Direction == model.DirectionBullish {
				r.FVGBullish = 1
			} else {
				r.FVGBearish = 1
			}
		}
		for _, g := range a.Grabs {
			if g.Index > i {
				break
			}
			if !engine.GrabActiveAt(g, i, p.GrabRecency) {
				continue
			}
			if g.Direction == model.GrabLong {
				r.LiquidityGrabLong = 1
			} else {
				r.LiquidityGrabShort = 1
			}
		}
		if i < len(a.Structure) {
			switch a.Structure[i] {
			case model.StructureBullish:
				r.MarketStructure = 1
			case model.StructureBearish:
				r.MarketStructure = -1
			}
		}
		if i < len(a.Confluence) {
			r.ConfluenceLong = float64(a.Confluence[i].LongScore)
			r.ConfluenceShort = float64(a.Confluence[i].ShortScore)
		}
		rows[i] = r
	}
	return rows
}

// WriteCSV writes the rows with an index column followed by Columns.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	header := append([]string{"index"}, Columns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, 0, len(header))
	for _, r := range rows {
		record = record[:0]
		record = append(record, strconv.Itoa(r.Index))
		for _, v := range r.Values() {
			record = append(record, strconv.FormatFloat(v, 'f', -1, 64))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", r.Index, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
