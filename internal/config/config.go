package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fintrace-dev/fintrace/internal/analyze"
)

// Config represents the top-level fintrace.yaml configuration.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Export   ExportConfig   `yaml:"export"`
	Report   ReportConfig   `yaml:"report"`
}

// AnalysisConfig tunes the detection thresholds.
type AnalysisConfig struct {
	StructuringTolerance float64 `yaml:"structuring_tolerance"`
	StructuringMinCount  int     `yaml:"structuring_min_count"`
	Contamination        float64 `yaml:"contamination"`
	RandomSeed           int64   `yaml:"random_seed"`
	LargePercentile      float64 `yaml:"large_percentile"`
}

// ExportConfig names the analysis output files.
type ExportConfig struct {
	LedgerFile    string `yaml:"ledger_file"`
	AnomaliesFile string `yaml:"anomalies_file"`
}

// ReportConfig controls the printed report.
type ReportConfig struct {
	TopCounterparties int `yaml:"top_counterparties"`
}

// Load reads a fintrace.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the standard configuration.
func Default() *Config {
	p := analyze.DefaultParams()
	return &Config{
		Analysis: AnalysisConfig{
			StructuringTolerance: p.StructuringTolerance,
			StructuringMinCount:  p.StructuringMinCount,
			Contamination:        p.Contamination,
			RandomSeed:           p.Seed,
			LargePercentile:      p.LargePercentile,
		},
		Export: ExportConfig{
			LedgerFile:    "analysis.csv",
			AnomaliesFile: "anomalies.csv",
		},
		Report: ReportConfig{
			TopCounterparties: 10,
		},
	}
}

// Params converts the analysis section into engine parameters.
func (c *Config) Params() analyze.Params {
	return analyze.Params{
		StructuringTolerance: c.Analysis.StructuringTolerance,
		StructuringMinCount:  c.Analysis.StructuringMinCount,
		Contamination:        c.Analysis.Contamination,
		Seed:                 c.Analysis.RandomSeed,
		LargePercentile:      c.Analysis.LargePercentile,
	}
}
