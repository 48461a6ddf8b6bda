// Package config defines the classifier configuration surface and loads
// the YAML sources (settings, subject library, stop lists) that the
// excluded I/O layer feeds into the core.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/internalerr"
)

// Config is the explicit configuration value passed to every core entry
// point. There is no process-wide singleton; callers own their copy.
type Config struct {
	// MinConfidence is the inclusive acceptance threshold in [0,1].
	MinConfidence float64 `yaml:"min_confidence_threshold"`
	// KeywordTopN is the number of keywords returned per document.
	KeywordTopN int `yaml:"keyword_top_n"`
	// CacheSize bounds the result cache; 0 disables caching.
	CacheSize int `yaml:"cache_size"`

	// Tier constants.
	ExactConfidence float64 `yaml:"exact_confidence"`
	FuzzyCeiling    float64 `yaml:"fuzzy_ceiling"`
	ContextCeiling  float64 `yaml:"context_ceiling"`

	// MinTextLength is the minimum rune count for classifiable input.
	MinTextLength int `yaml:"min_text_length"`

	// Similarity blend weights.
	EditWeight     float64 `yaml:"edit_weight"`
	SequenceWeight float64 `yaml:"sequence_weight"`
}

// Default returns the documented defaults.
func Default() Config {
	return Config{
		MinConfidence:   0.80,
		KeywordTopN:     3,
		CacheSize:       20000,
		ExactConfidence: 0.95,
		FuzzyCeiling:    0.80,
		ContextCeiling:  0.65,
		MinTextLength:   2,
		EditWeight:      0.7,
		SequenceWeight:  0.3,
	}
}

// Validate fails fast on out-of-range values, before any document is
// processed.
func (c Config) Validate() error {
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("%w: min_confidence_threshold %.2f outside [0,1]", internalerr.ErrInvalidConfig, c.MinConfidence)
	}
	if c.KeywordTopN < 0 {
		return fmt.Errorf("%w: keyword_top_n %d negative", internalerr.ErrInvalidConfig, c.KeywordTopN)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("%w: cache_size %d negative", internalerr.ErrInvalidConfig, c.CacheSize)
	}
	for name, v := range map[string]float64{
		"exact_confidence": c.ExactConfidence,
		"fuzzy_ceiling":    c.FuzzyCeiling,
		"context_ceiling":  c.ContextCeiling,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s %.2f outside [0,1]", internalerr.ErrInvalidConfig, name, v)
		}
	}
	if c.FuzzyCeiling >= c.ExactConfidence {
		return fmt.Errorf("%w: fuzzy_ceiling %.2f must stay below exact_confidence %.2f",
			internalerr.ErrInvalidConfig, c.FuzzyCeiling, c.ExactConfidence)
	}
	if c.MinTextLength < 0 {
		return fmt.Errorf("%w: min_text_length %d negative", internalerr.ErrInvalidConfig, c.MinTextLength)
	}
	if c.EditWeight < 0 || c.SequenceWeight < 0 {
		return fmt.Errorf("%w: similarity weights must be non-negative", internalerr.ErrInvalidConfig)
	}
	if c.EditWeight+c.SequenceWeight == 0 {
		return fmt.Errorf("%w: similarity weights sum to zero", internalerr.ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads settings from a YAML file, layered over Default().
func LoadConfig(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SubjectSource is the YAML form of the subject library.
type SubjectSource struct {
	Categories []SubjectCategory `yaml:"categories"`
}

// SubjectCategory is one category definition in the source file.
type SubjectCategory struct {
	Name    string   `yaml:"name"`
	Terms   []string `yaml:"terms"`
	Aliases []string `yaml:"aliases"`
	Context []string `yaml:"context"`
}

// LoadSubjects loads category definitions from a YAML file.
func LoadSubjects(path string) (*SubjectSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var src SubjectSource
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("parse subjects: %w", err)
	}

	return &src, nil
}

// Stoplist is a flat YAML term list, shared by the stop-word and
// geo-name files.
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads terms from a YAML file.
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("parse stoplist: %w", err)
	}

	return &sl, nil
}
