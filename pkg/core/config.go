package core

import (
	"errors"
	"fmt"

	"fortio.org/struct2env"
)

// RenderConfig carries every knob the tracer and renderer read. It is built
// once at setup and passed down explicitly.
type RenderConfig struct {
	MaxDepth    int     `env:"MAX_DEPTH"`    // Reflection/refraction recursion limit
	Threshold   float64 `env:"THRESHOLD"`    // Skip secondary rays whose attenuation falls below this (0 = off)
	AAThreshold float64 `env:"AA_THRESHOLD"` // Corner color difference that triggers a pixel split
	MaxSplits   int     `env:"AA_SPLITS"`    // Maximum quadtree depth for adaptive supersampling
	BlockSize   int     `env:"BLOCK_SIZE"`   // Edge length in pixels of one worker task
	Workers     int     `env:"WORKERS"`      // Parallel workers (0 = use CPU count)
	Debug       bool    `env:"DEBUG"`        // Log per-light shading terms
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		MaxDepth:    3,
		Threshold:   0,
		AAThreshold: 0.1,
		MaxSplits:   3,
		BlockSize:   32,
		Workers:     0,
		Debug:       false,
	}
}

// LoadRenderConfigFromEnv overlays environment variables named prefix+TAG
// (e.g. RT_MAX_DEPTH) on top of the defaults.
func LoadRenderConfigFromEnv(prefix string) (RenderConfig, error) {
	config := DefaultRenderConfig()
	if errs := struct2env.SetFromEnv(prefix, &config); len(errs) > 0 {
		return config, fmt.Errorf("render config from environment: %w", errors.Join(errs...))
	}
	return config, nil
}

// Validate checks that the configuration can drive a render
func (c RenderConfig) Validate() error {
	var errs []error
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max depth must be >= 0, got %d", c.MaxDepth))
	}
	if c.Threshold < 0 {
		errs = append(errs, fmt.Errorf("threshold must be >= 0, got %g", c.Threshold))
	}
	if c.AAThreshold < 0 {
		errs = append(errs, fmt.Errorf("aa threshold must be >= 0, got %g", c.AAThreshold))
	}
	if c.MaxSplits < 0 {
		errs = append(errs, fmt.Errorf("aa splits must be >= 0, got %d", c.MaxSplits))
	}
	if c.BlockSize <= 0 {
		errs = append(errs, fmt.Errorf("block size must be > 0, got %d", c.BlockSize))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	return errors.Join(errs...)
}
