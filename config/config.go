package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"mmreport/loader"
	"mmreport/operator"
)

var ErrInvalid = errors.New("invalid config")

// Reducers are the ops that may reduce a group of times to the value that
// speedup and efficiency are derived from.
var Reducers = []string{"median", "mean", "min", "max"}

func validReducer(name string) bool {
	for _, reducer := range Reducers {
		if reducer == name {
			return true
		}
	}
	return false
}

type Config struct {
	ResultsDir      string  `yaml:"results_dir"`
	PicturesDir     string  `yaml:"pictures_dir"`
	ReportsDir      string  `yaml:"reports_dir"`
	SequentialFile  string  `yaml:"sequential_file"`
	ParallelPattern string  `yaml:"parallel_pattern"`
	Bins            int     `yaml:"bins"`
	LogScale        bool    `yaml:"log_scale"`
	Reducer         string  `yaml:"reducer"`
	DPI             int     `yaml:"dpi"`
	WidthIn         float64 `yaml:"width_in"`
	HeightIn        float64 `yaml:"height_in"`
	Confidence      float64 `yaml:"confidence"`
	ArchiveDir      string  `yaml:"archive_dir"`
	CacheEnabled    bool    `yaml:"cache_enabled"`
}

func Default() *Config {
	conventions := loader.DefaultConventions()
	return &Config{
		ResultsDir:      "results",
		PicturesDir:     "pictures",
		ReportsDir:      "results",
		SequentialFile:  conventions.SequentialFile,
		ParallelPattern: conventions.ParallelPattern,
		Bins:            30,
		LogScale:        true,
		Reducer:         "median",
		DPI:             300,
		WidthIn:         10,
		HeightIn:        6,
		Confidence:      0.95,
		ArchiveDir:      "archive",
		CacheEnabled:    true,
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(buf, config); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

func (config *Config) Validate() error {
	switch {
	case config.ResultsDir == "":
		return fmt.Errorf("%w: results_dir is empty", ErrInvalid)
	case config.PicturesDir == "":
		return fmt.Errorf("%w: pictures_dir is empty", ErrInvalid)
	case config.ReportsDir == "":
		return fmt.Errorf("%w: reports_dir is empty", ErrInvalid)
	case config.SequentialFile == "" || config.ParallelPattern == "":
		return fmt.Errorf("%w: file naming conventions are empty", ErrInvalid)
	case config.Bins <= 0:
		return fmt.Errorf("%w: bins must be positive, got %d", ErrInvalid, config.Bins)
	case !validReducer(config.Reducer):
		return fmt.Errorf("%w: reducer must be one of %v, got %q", ErrInvalid, Reducers, config.Reducer)
	case config.DPI <= 0:
		return fmt.Errorf("%w: dpi must be positive, got %d", ErrInvalid, config.DPI)
	case config.WidthIn <= 0 || config.HeightIn <= 0:
		return fmt.Errorf("%w: chart size must be positive", ErrInvalid)
	case config.Confidence <= 0 || config.Confidence >= 1:
		return fmt.Errorf("%w: confidence must be in (0, 1), got %v", ErrInvalid, config.Confidence)
	}
	return nil
}

func (config *Config) Conventions() loader.Conventions {
	return loader.Conventions{
		SequentialFile:  config.SequentialFile,
		ParallelPattern: config.ParallelPattern,
	}
}

func (config *Config) Op() operator.Op {
	return operator.GetOpFromName(config.Reducer)
}
