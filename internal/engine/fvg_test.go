package engine

import (
	"testing"

	"ictdetect/internal/model"
)

func TestDetectFVGsBullish(t *testing.T) {
	// low[2]=15 clears high[0]=12, leaving a gap at index 1.
	candles := []model.Candle{
		candle(0, 11, 12, 10, 11.5, 1000),
		candle(1, 12, 14.5, 11.9, 14.2, 1800),
		candle(2, 15.2, 16, 15, 15.8, 1200),
	}
	gaps := DetectFVGs(mustStore(t, candles))

	if len(gaps) != 1 {
		t.Fatalf("DetectFVGs() = %v, want exactly one gap", gaps)
	}
	g := gaps[0]
	if g.Index != 1 || g.Direction != model.DirectionBullish {
		t.Errorf("gap = %+v, want bullish at index 1", g)
	}
	if g.GapBottom != 12 || g.GapTop != 15 {
		t.Errorf("gap range = [%v, %v], want [12, 15]", g.GapBottom, g.GapTop)
	}
	if g.Filled || g.FillIndex != -1 {
		t.Errorf("fill = (%v, %d), want (false, -1): third candle only touches the edge", g.Filled, g.FillIndex)
	}
}

func TestDetectFVGsBearish(t *testing.T) {
	candles := []model.Candle{
		candle(0, 11, 12, 10, 10.5, 1000),
		candle(1, 10, 10.5, 7, 7.2, 2000),
		candle(2, 6.5, 6.9, 6, 6.2, 1200),
	}
	gaps := DetectFVGs(mustStore(t, candles))

	if len(gaps) != 1 {
		t.Fatalf("DetectFVGs() = %v, want exactly one gap", gaps)
	}
	g := gaps[0]
	if g.Index != 1 || g.Direction != model.DirectionBearish {
		t.Errorf("gap = %+v, want bearish at index 1", g)
	}
	if g.GapBottom != 6.9 || g.GapTop != 10 {
		t.Errorf("gap range = [%v, %v], want [6.9, 10]", g.GapBottom, g.GapTop)
	}
}

func TestDetectFVGsFill(t *testing.T) {
	candles := []model.Candle{
		candle(0, 11, 12, 10, 11.5, 1000),
		candle(1, 12, 14.5, 11.9, 14.2, 1800),
		candle(2, 15.2, 16, 15, 15.8, 1200),
		candle(3, 15.5, 15.8, 14, 14.2, 1100), // dips into the gap
		candle(4, 14.2, 14.5, 11, 11.2, 1300), // deeper, must not move the latch
	}
	gaps := DetectFVGs(mustStore(t, candles))

	if len(gaps) != 1 {
		t.Fatalf("got %d gaps, want 1", len(gaps))
	}
	g := gaps[0]
	if !g.Filled || g.FillIndex != 3 {
		t.Errorf("fill = (%v, %d), want (true, 3)", g.Filled, g.FillIndex)
	}
}

func TestDetectFVGsTooShort(t *testing.T) {
	candles := []model.Candle{
		candle(0, 11, 12, 10, 11.5, 1000),
		candle(1, 12, 14.5, 11.9, 14.2, 1800),
	}
	if gaps := DetectFVGs(mustStore(t, candles)); gaps != nil {
		t.Errorf("got %v, want nil for a two-candle series", gaps)
	}
}
