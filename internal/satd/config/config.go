// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

// Package config loads and validates the pipeline's configuration
// surface (spec §6): the classifier admission threshold, the lexical
// pattern lists, dependency-hop and SIR-weight tuning, and the commit
// window the (external) commit monitor is allowed to inspect.
//
// Configuration layers in priority order, lowest first: compiled-in
// defaults, an optional YAML file, then SATDRIPPLE_-prefixed
// environment variables. This mirrors the teacher's CLI, which reads
// a YAML file into a typed struct before executing commands, but adds
// an environment-variable layer and struct-tag validation on top.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// SIRWeights holds the composite score's (alpha, beta, gamma) mixing
// weights. They are renormalized to sum to 1 whenever set.
type SIRWeights struct {
	Alpha float64 `koanf:"alpha" validate:"gte=0"`
	Beta  float64 `koanf:"beta" validate:"gte=0"`
	Gamma float64 `koanf:"gamma" validate:"gte=0"`
}

// Normalized returns w scaled so Alpha+Beta+Gamma == 1. If the sum is
// zero, the default (0.4, 0.3, 0.3) is returned instead.
func (w SIRWeights) Normalized() SIRWeights {
	sum := w.Alpha + w.Beta + w.Gamma
	if sum <= 0 {
		return SIRWeights{Alpha: 0.4, Beta: 0.3, Gamma: 0.3}
	}
	return SIRWeights{Alpha: w.Alpha / sum, Beta: w.Beta / sum, Gamma: w.Gamma / sum}
}

// Config is the full configuration surface from spec §6.
type Config struct {
	ConfidenceThreshold float64    `koanf:"confidenceThreshold" validate:"gte=0,lte=1"`
	IncludeImplicit     bool       `koanf:"includeImplicit"`
	MaxDependencyHops   int        `koanf:"maxDependencyHops" validate:"gte=1,lte=5"`
	SIRWeightsRaw       SIRWeights `koanf:"sirWeights"`
	CustomPatterns      []string   `koanf:"customPatterns"`
	ExcludePatterns     []string   `koanf:"excludePatterns"`
	CommitWindowSize    int        `koanf:"commitWindowSize" validate:"gte=1"`
	BatchSize           int        `koanf:"batchSize" validate:"gte=1"`
	ClassifierTimeoutMS int        `koanf:"classifierTimeoutMs" validate:"gte=1"`
	BatchPacingMS       int        `koanf:"batchPacingMs" validate:"gte=0"`
}

// SIRWeights returns the renormalized SIR weights for this config.
func (c Config) SIRWeights() SIRWeights {
	return c.SIRWeightsRaw.Normalized()
}

// Default returns the configuration surface's documented defaults.
func Default() Config {
	return Config{
		ConfidenceThreshold: 0.7,
		IncludeImplicit:     true,
		MaxDependencyHops:   5,
		SIRWeightsRaw:       SIRWeights{Alpha: 0.4, Beta: 0.3, Gamma: 0.3},
		CommitWindowSize:    50,
		BatchSize:           10,
		ClassifierTimeoutMS: 60_000,
		BatchPacingMS:       250,
	}
}

var validate = validator.New()

// Validate checks the config's invariants using struct-tag rules,
// returning a single error describing every violation.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Load builds a Config by layering defaults, an optional YAML file at
// path (skipped if empty or missing), and SATDRIPPLE_-prefixed
// environment variables, then validates the result.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	def := Default()
	defaults := map[string]any{
		"confidenceThreshold": def.ConfidenceThreshold,
		"includeImplicit":     def.IncludeImplicit,
		"maxDependencyHops":   def.MaxDependencyHops,
		"sirWeights.alpha":    def.SIRWeightsRaw.Alpha,
		"sirWeights.beta":     def.SIRWeightsRaw.Beta,
		"sirWeights.gamma":    def.SIRWeightsRaw.Gamma,
		"commitWindowSize":    def.CommitWindowSize,
		"batchSize":           def.BatchSize,
		"classifierTimeoutMs": def.ClassifierTimeoutMS,
		"batchPacingMs":       def.BatchPacingMS,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return Config{}, fmt.Errorf("loading config defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("loading config file %q: %w", path, err)
		}
	}

	// Environment variable names are case-insensitive, so each
	// lowercased key is mapped back to its camelCase koanf key.
	canonical := make(map[string]string, len(defaults)+2)
	for key := range defaults {
		canonical[strings.ToLower(key)] = key
	}
	for _, key := range []string{"customPatterns", "excludePatterns"} {
		canonical[strings.ToLower(key)] = key
	}
	if err := k.Load(env.Provider("SATDRIPPLE_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "SATDRIPPLE_")
		s = strings.ReplaceAll(strings.ToLower(s), "_", ".")
		if key, ok := canonical[s]; ok {
			return key
		}
		return s
	}), nil); err != nil {
		return Config{}, fmt.Errorf("loading config env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
