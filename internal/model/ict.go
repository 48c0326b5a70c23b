package model

// Direction marks which side of the market a detection favours.
type Direction string

const (
	DirectionBullish Direction = "BULLISH"
	DirectionBearish Direction = "BEARISH"
)

// SwingKind distinguishes local highs from local lows.
type SwingKind string

const (
	SwingHigh SwingKind = "HIGH"
	SwingLow  SwingKind = "LOW"
)

// SwingPoint is a local price extremum relative to a symmetric window.
// A candle hosts at most one swing point per kind.
type SwingPoint struct {
	Index int       `json:"index"`
	Kind  SwingKind `json:"kind"`
	Price float64   `json:"price"`
}

// OrderBlock flags a candle as a likely institutional entry zone.
// Mitigated latches from false to true exactly once, when a later candle
// trades back into [Bottom, Top]; the block is kept afterwards for
// historical reporting. MitigationIndex is -1 until that happens.
type OrderBlock struct {
	StartIndex      int       `json:"start_index"`
	Direction       Direction `json:"direction"`
	Top             float64   `json:"top"`
	Bottom          float64   `json:"bottom"`
	Strength        float64   `json:"strength"`
	Mitigated       bool      `json:"mitigated"`
	MitigationIndex int       `json:"mitigation_index"`
}

// FairValueGap is a price range skipped by three consecutive candles.
// Filled is a one-way latch; FillIndex is -1 until the gap is revisited.
type FairValueGap struct {
	Index     int       `json:"index"`
	Direction Direction `json:"direction"`
	GapTop    float64   `json:"gap_top"`
	GapBottom float64   `json:"gap_bottom"`
	Filled    bool      `json:"filled"`
	FillIndex int       `json:"fill_index"`
}

// GrabSide is the trade direction a liquidity grab argues for.
type GrabSide string

const (
	GrabLong  GrabSide = "LONG"
	GrabShort GrabSide = "SHORT"
)

// LiquidityGrab records a stop-hunt sweep beyond a swing level that closed
// back inside. Immutable once emitted.
type LiquidityGrab struct {
	Index             int      `json:"index"`
	Direction         GrabSide `json:"direction"`
	SweptLevel        float64  `json:"swept_level"`
	SweepMagnitudePct float64  `json:"sweep_magnitude_pct"`
	ReversalConfirmed bool     `json:"reversal_confirmed"`
}

// StructureLabel classifies the trend at one index from the swing sequence
// inside a rolling window. Recomputed per window, not cumulative.
type StructureLabel string

const (
	StructureBullish StructureLabel = "BULLISH"
	StructureBearish StructureLabel = "BEARISH"
	StructureRanging StructureLabel = "RANGING"
)

// ConfluenceScore counts independent bullish and bearish factors active at
// one index. Each side sums four binary contributions.
type ConfluenceScore struct {
	LongScore  int `json:"long_score"`
	ShortScore int `json:"short_score"`
}

// ConfluenceBucket is the reporting tier of a confluence score.
type ConfluenceBucket string

const (
	ConfluenceHigh   ConfluenceBucket = "HIGH"
	ConfluenceMedium ConfluenceBucket = "MEDIUM"
	ConfluenceLow    ConfluenceBucket = "LOW"
)
