package engine

import (
	"testing"

	"ictdetect/internal/model"
)

func TestDetectSwings(t *testing.T) {
	tests := []struct {
		name     string
		highs    []float64
		lows     []float64
		lookback int
		expected []model.SwingPoint
	}{
		{
			name:     "strict maximum becomes swing high",
			highs:    []float64{5, 6, 7, 10, 7, 6, 5},
			lows:     []float64{4, 4, 4, 4, 4, 4, 4}, // all tied, no swing lows
			lookback: 2,
			expected: []model.SwingPoint{{Index: 3, Kind: model.SwingHigh, Price: 10}},
		},
		{
			name:     "strict minimum becomes swing low",
			highs:    []float64{9, 9, 9, 9, 9, 9, 9},
			lows:     []float64{5, 4, 4, 2, 4, 4, 5},
			lookback: 2,
			expected: []model.SwingPoint{{Index: 3, Kind: model.SwingLow, Price: 2}},
		},
		{
			name:     "tied extremes are not swings",
			highs:    []float64{5, 6, 10, 7, 10, 6, 5},
			lows:     []float64{4, 4, 4, 4, 4, 4, 4},
			lookback: 2,
			expected: nil,
		},
		{
			name:     "series shorter than window",
			highs:    []float64{5, 10, 5},
			lows:     []float64{4, 4, 4},
			lookback: 2,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candles := make([]model.Candle, len(tt.highs))
			for i := range tt.highs {
				mid := (tt.highs[i] + tt.lows[i]) / 2
				candles[i] = candle(i, mid, tt.highs[i], tt.lows[i], mid, 1000)
			}
			got := DetectSwings(mustStore(t, candles), tt.lookback)
			if len(got) != len(tt.expected) {
				t.Fatalf("DetectSwings() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("swing %d = %+v, want %+v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestDetectSwingsIndexOrder(t *testing.T) {
	candles := generateTestCandles(40, func(i int) model.Candle {
		h := 10 + float64((i*7)%13)
		l := h - 3
		return candle(i, h-1, h, l, l+1, 1000)
	})
	swings := DetectSwings(mustStore(t, candles), 3)
	for i := 1; i < len(swings); i++ {
		if swings[i].Index < swings[i-1].Index {
			t.Fatalf("swings out of index order: %+v before %+v", swings[i-1], swings[i])
		}
	}
}
