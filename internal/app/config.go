package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// CellPath is a single .hcl file or a directory of .hcl files.
	CellPath string
	// OutDir is where generated .hoc files are written.
	OutDir string

	LogFormat string
	LogLevel  string

	// MaxProcLines is the statement budget per generated procedure.
	MaxProcLines int
	// Comments disables explanatory comments in the output when false.
	Comments bool
	// SegIDFunctions toggles the segment-id lookup procedures.
	SegIDFunctions bool
}

// NewConfig validates and normalizes a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.CellPath == "" {
		return nil, errors.New("CellPath is a required configuration field and cannot be empty")
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	if cfg.MaxProcLines <= 0 {
		return nil, errors.New("MaxProcLines must be positive")
	}
	return &cfg, nil
}
