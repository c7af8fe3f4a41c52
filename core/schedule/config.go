package schedule

import (
	"fmt"
	"time"

	"github.com/kilianp07/schedgen/core/model"
)

// WindowConfig overrides a daytime window preset with "HH:MM" bounds.
type WindowConfig struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Config defines generation settings.
type Config struct {
	// IncludeFull keeps sections with no seat left as candidates.
	IncludeFull bool `json:"include_full"`
	// MaxSearchSpace caps the product of candidate sections per request.
	MaxSearchSpace uint64 `json:"max_search_space"`
	// TimeoutSeconds bounds the wall-clock time spent enumerating.
	TimeoutSeconds int `json:"timeout_seconds"`
	// SouthPrefix identifies south campus rooms (room label prefix).
	SouthPrefix string `json:"south_prefix"`
	// LuqueMarker identifies Crisanto Luque rooms (room label substring).
	LuqueMarker string `json:"luque_marker"`
	// Windows overrides the morning/evening/mixed presets.
	Windows map[string]WindowConfig `json:"windows"`
	// Generator names the enumeration strategy: backtracking or product.
	Generator string `json:"generator"`
}

// SetDefaults applies the values used by the offering forms.
func (c *Config) SetDefaults() {
	if c.MaxSearchSpace == 0 {
		c.MaxSearchSpace = 1_000_000
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 10
	}
	if c.SouthPrefix == "" {
		c.SouthPrefix = "SUR"
	}
	if c.LuqueMarker == "" {
		c.LuqueMarker = "SLUQ"
	}
	if c.Generator == "" {
		c.Generator = "backtracking"
	}
}

// Validate checks the window overrides and limits.
func (c Config) Validate() error {
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative")
	}
	_, err := c.windows()
	return err
}

func (c Config) windows() (map[model.Window]Bounds, error) {
	res := make(map[model.Window]Bounds, len(DefaultWindows))
	for w, b := range DefaultWindows {
		res[w] = b
	}
	for name, wc := range c.Windows {
		w, err := model.ParseWindow(name)
		if err != nil {
			return nil, err
		}
		start, err := model.ParseTimeOfDay(wc.Start)
		if err != nil {
			return nil, fmt.Errorf("window %s start: %w", name, err)
		}
		end, err := model.ParseTimeOfDay(wc.End)
		if err != nil {
			return nil, fmt.Errorf("window %s end: %w", name, err)
		}
		if start.Minutes() > end.Minutes() {
			return nil, fmt.Errorf("window %s starts after it ends", name)
		}
		res[w] = Bounds{Start: start.Minutes(), End: end.Minutes()}
	}
	return res, nil
}

// Options converts the configuration into planner options.
func (c Config) Options() (Options, error) {
	windows, err := c.windows()
	if err != nil {
		return Options{}, err
	}
	return Options{
		IncludeFull:    c.IncludeFull,
		SouthPrefix:    c.SouthPrefix,
		LuqueMarker:    c.LuqueMarker,
		Windows:        windows,
		MaxSearchSpace: c.MaxSearchSpace,
		Timeout:        time.Duration(c.TimeoutSeconds) * time.Second,
	}, nil
}
