package engine

import (
	"math"
	"testing"

	"ictdetect/internal/model"
)

// flatCandles returns calm candles around price 100 with volume 1000.
func flatCandles(n int) []model.Candle {
	return generateTestCandles(n, func(i int) model.Candle {
		return candle(i, 100, 101, 99, 100, 1000)
	})
}

func TestDetectLiquidityGrabsLong(t *testing.T) {
	candles := flatCandles(6)
	// Sweeps below 100*(1-0.008)=99.2 on 2x volume and closes back above.
	candles[5] = candle(5, 100, 101.5, 98.5, 101, 2000)
	swings := []model.SwingPoint{{Index: 2, Kind: model.SwingLow, Price: 100}}

	grabs := DetectLiquidityGrabs(mustStore(t, candles), swings, DefaultParams())

	if len(grabs) != 1 {
		t.Fatalf("DetectLiquidityGrabs() = %v, want exactly one grab", grabs)
	}
	g := grabs[0]
	if g.Index != 5 || g.Direction != model.GrabLong {
		t.Errorf("grab = %+v, want long at index 5", g)
	}
	if g.SweptLevel != 100 {
		t.Errorf("swept level = %v, want 100", g.SweptLevel)
	}
	if math.Abs(g.SweepMagnitudePct-1.5) > 1e-9 {
		t.Errorf("sweep magnitude = %v%%, want 1.5%%", g.SweepMagnitudePct)
	}
	if !g.ReversalConfirmed {
		t.Errorf("reversal not confirmed")
	}
}

func TestDetectLiquidityGrabsShort(t *testing.T) {
	candles := flatCandles(6)
	candles[5] = candle(5, 100, 111.5, 99, 100.5, 2000)
	swings := []model.SwingPoint{{Index: 2, Kind: model.SwingHigh, Price: 110}}

	grabs := DetectLiquidityGrabs(mustStore(t, candles), swings, DefaultParams())

	if len(grabs) != 1 {
		t.Fatalf("got %v, want one short grab", grabs)
	}
	g := grabs[0]
	if g.Direction != model.GrabShort || g.Index != 5 {
		t.Errorf("grab = %+v, want short at index 5", g)
	}
	wantPct := (111.5 - 110) / 110 * 100
	if math.Abs(g.SweepMagnitudePct-wantPct) > 1e-9 {
		t.Errorf("sweep magnitude = %v%%, want %v%%", g.SweepMagnitudePct, wantPct)
	}
}

func TestDetectLiquidityGrabsFirstOnly(t *testing.T) {
	candles := flatCandles(8)
	candles[5] = candle(5, 100, 101.5, 98.5, 101, 2000)
	candles[6] = candle(6, 100, 101.5, 98.0, 101, 2200) // also qualifies, must be ignored
	swings := []model.SwingPoint{{Index: 2, Kind: model.SwingLow, Price: 100}}

	grabs := DetectLiquidityGrabs(mustStore(t, candles), swings, DefaultParams())

	if len(grabs) != 1 || grabs[0].Index != 5 {
		t.Errorf("got %v, want only the first qualifying candle (index 5)", grabs)
	}
}

func TestDetectLiquidityGrabsRequirements(t *testing.T) {
	tests := []struct {
		name  string
		sweep model.Candle
	}{
		{
			// closes below the swept level: no reversal
			name:  "no reversal close",
			sweep: candle(5, 100, 100.5, 98.5, 99, 2000),
		},
		{
			// volume below 1.8x trailing average
			name:  "no volume spike",
			sweep: candle(5, 100, 101.5, 98.5, 101, 1500),
		},
		{
			// inside the sweep threshold band
			name:  "sweep too shallow",
			sweep: candle(5, 100, 101.5, 99.5, 101, 2000),
		},
	}

	swings := []model.SwingPoint{{Index: 2, Kind: model.SwingLow, Price: 100}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candles := flatCandles(6)
			candles[5] = tt.sweep
			grabs := DetectLiquidityGrabs(mustStore(t, candles), swings, DefaultParams())
			if len(grabs) != 0 {
				t.Errorf("got %v, want no grabs", grabs)
			}
		})
	}
}
