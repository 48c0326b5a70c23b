// Package engine implements the ICT structure detectors: swings, order
// blocks, fair value gaps, liquidity grabs, market structure, and the
// confluence score combining them. Every detector is a pure function of the
// series and its parameters; the engine only sequences them.
package engine

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ictdetect/internal/model"
	"ictdetect/internal/series"
)

// Analysis aggregates all detector outputs for one series. Structure and
// Confluence are aligned to the series index; the event slices are in index
// order.
type Analysis struct {
	Swings      []model.SwingPoint
	OrderBlocks []model.OrderBlock
	Gaps        []model.FairValueGap
	Grabs       []model.LiquidityGrab
	Structure   []model.StructureLabel
	Confluence  []model.ConfluenceScore
}

// Engine runs the full detection pipeline with one parameter set.
type Engine struct {
	params Params
	logger zerolog.Logger
}

// New creates an engine.
func New(params Params) *Engine {
	return &Engine{
		params: params,
		logger: log.With().Str("component", "engine").Logger(),
	}
}

// Params returns the parameter set the engine runs with.
func (e *Engine) Params() Params { return e.params }

// Analyze walks the series once per detector. Swings feed the grab and
// structure stages; the three event detectors are independent reads of the
// store, so they fan out across goroutines and join before scoring. A
// series too short for a detector yields an empty result for that detector,
// never a failure.
func (e *Engine) Analyze(s *series.Store) *Analysis {
	p := e.params
	if s.Len() < 2*p.SwingLookback+1 {
		e.logger.Warn().
			Int("candles", s.Len()).
			Int("required", 2*p.SwingLookback+1).
			Msg("series shorter than swing window, swing-dependent detectors will be empty")
	}
	if d := s.DegenerateCount(); d > 0 {
		e.logger.Debug().Int("degenerate_candles", d).Msg("degenerate candles will be skipped")
	}

	swings := DetectSwings(s, p.SwingLookback)

	a := &Analysis{Swings: swings}
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		a.OrderBlocks = DetectOrderBlocks(s, p)
	}()
	go func() {
		defer wg.Done()
		a.Gaps = DetectFVGs(s)
	}()
	go func() {
		defer wg.Done()
		a.Grabs = DetectLiquidityGrabs(s, swings, p)
	}()
	wg.Wait()

	a.Structure = ClassifyStructure(s, swings, p.StructureLookback)
	a.Confluence = ScoreConfluence(s, a.OrderBlocks, a.Gaps, a.Grabs, a.Structure, p)

	e.logger.Debug().
		Int("swings", len(a.Swings)).
		Int("order_blocks", len(a.OrderBlocks)).
		Int("fvgs", len(a.Gaps)).
		Int("grabs", len(a.Grabs)).
		Msg("analysis complete")
	return a
}
