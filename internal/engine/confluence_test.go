package engine

import (
	"testing"

	"ictdetect/internal/model"
)

func TestScoreConfluenceAllFactors(t *testing.T) {
	s := mustStore(t, flatCandles(16)) // closes at 100
	p := DefaultParams()

	blocks := []model.OrderBlock{
		{StartIndex: 2, Direction: model.DirectionBullish, Top: 101, Bottom: 99, Strength: 0.8, MitigationIndex: -1},
	}
	gaps := []model.FairValueGap{
		{Index: 2, Direction: model.DirectionBullish, GapTop: 100.5, GapBottom: 99.5, FillIndex: -1},
	}
	grabs := []model.LiquidityGrab{
		{Index: 4, Direction: model.GrabLong, SweptLevel: 100, ReversalConfirmed: true},
	}
	structure := make([]model.StructureLabel, 16)
	for i := range structure {
		structure[i] = model.StructureBullish
	}

	scores := ScoreConfluence(s, blocks, gaps, grabs, structure, p)

	if got := scores[5]; got.LongScore != 4 || got.ShortScore != 0 {
		t.Errorf("score at 5 = %+v, want {4 0}: all four long factors active", got)
	}
	// At index 2 the block and gap are only being created, the grab has not
	// fired yet; only structure contributes.
	if got := scores[2]; got.LongScore != 1 || got.ShortScore != 0 {
		t.Errorf("score at 2 = %+v, want {1 0}", got)
	}
	// The grab expires once it falls out of the recency window.
	beyond := 4 + p.GrabRecency + 1
	if got := scores[beyond]; got.LongScore != 3 {
		t.Errorf("score at %d = %+v, want long 3 after the grab expired", beyond, got)
	}
}

func TestScoreConfluenceMitigationCutoff(t *testing.T) {
	s := mustStore(t, flatCandles(10))
	p := DefaultParams()

	blocks := []model.OrderBlock{
		{StartIndex: 2, Direction: model.DirectionBullish, Top: 101, Bottom: 99,
			Strength: 0.8, Mitigated: true, MitigationIndex: 6},
	}
	scores := ScoreConfluence(s, blocks, nil, nil, nil, p)

	// The mitigating touch itself still counts; afterwards the block is spent.
	if scores[6].LongScore != 1 {
		t.Errorf("score at mitigation index = %+v, want long 1", scores[6])
	}
	if scores[7].LongScore != 0 {
		t.Errorf("score after mitigation = %+v, want long 0", scores[7])
	}
}

func TestScoreConfluenceShortSide(t *testing.T) {
	s := mustStore(t, flatCandles(8))
	p := DefaultParams()

	blocks := []model.OrderBlock{
		{StartIndex: 1, Direction: model.DirectionBearish, Top: 100.5, Bottom: 99.5, Strength: 0.7, MitigationIndex: -1},
	}
	grabs := []model.LiquidityGrab{
		{Index: 3, Direction: model.GrabShort, SweptLevel: 101, ReversalConfirmed: true},
	}
	structure := make([]model.StructureLabel, 8)
	for i := range structure {
		structure[i] = model.StructureBearish
	}

	scores := ScoreConfluence(s, blocks, nil, grabs, structure, p)

	if got := scores[4]; got.ShortScore != 3 || got.LongScore != 0 {
		t.Errorf("score at 4 = %+v, want {0 3}", got)
	}
}

func TestBucket(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		score int
		want  model.ConfluenceBucket
	}{
		{0, model.ConfluenceLow},
		{1, model.ConfluenceLow},
		{2, model.ConfluenceMedium},
		{3, model.ConfluenceMedium},
		{4, model.ConfluenceHigh},
		{7, model.ConfluenceHigh},
	}
	for _, tt := range tests {
		if got := p.Bucket(tt.score); got != tt.want {
			t.Errorf("Bucket(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
