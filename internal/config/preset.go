package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is an optional per-instrument tuning file. Only set fields
// override the environment-derived configuration; secrets never live here.
type Preset struct {
	Symbol   string `yaml:"symbol"`
	Interval string `yaml:"interval"`

	SwingLookback           *int     `yaml:"swing_lookback"`
	MinBodyRatio            *float64 `yaml:"min_body_ratio"`
	VolumeThreshold         *float64 `yaml:"volume_threshold"`
	LiquidityVolumeIncrease *float64 `yaml:"liquidity_volume_increase"`
	SweepThreshold          *float64 `yaml:"sweep_threshold"`
	StructureLookback       *int     `yaml:"structure_lookback"`
	GrabRecency             *int     `yaml:"grab_recency"`
	VolumeWindow            *int     `yaml:"volume_window"`
	ConfluenceHigh          *int     `yaml:"confluence_high"`
	ConfluenceLow           *int     `yaml:"confluence_low"`
}

// LoadPreset reads a YAML preset file.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse preset: %w", err)
	}
	return &p, nil
}

// Apply overlays the preset onto cfg.
func (p *Preset) Apply(cfg *Config) {
	if p.Symbol != "" {
		cfg.Symbol = p.Symbol
	}
	if p.Interval != "" {
		cfg.Interval = p.Interval
	}
	if p.SwingLookback != nil {
		cfg.SwingLookback = *p.SwingLookback
	}
	if p.MinBodyRatio != nil {
		cfg.MinBodyRatio = *p.MinBodyRatio
	}
	if p.VolumeThreshold != nil {
		cfg.VolumeThreshold = *p.VolumeThreshold
	}
	if p.LiquidityVolumeIncrease != nil {
		cfg.LiquidityVolumeIncrease = *p.LiquidityVolumeIncrease
	}
	if p.SweepThreshold != nil {
		cfg.SweepThreshold = *p.SweepThreshold
	}
	if p.StructureLookback != nil {
		cfg.StructureLookback = *p.StructureLookback
	}
	if p.GrabRecency != nil {
		cfg.GrabRecency = *p.GrabRecency
	}
	if p.VolumeWindow != nil {
		cfg.VolumeWindow = *p.VolumeWindow
	}
	if p.ConfluenceHigh != nil {
		cfg.ConfluenceHigh = *p.ConfluenceHigh
	}
	if p.ConfluenceLow != nil {
		cfg.ConfluenceLow = *p.ConfluenceLow
	}
}
