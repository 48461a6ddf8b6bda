package config

import (
	"fmt"

	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/internalerr"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/stopterm"
	"github.com/TonyLu786/Smart-Document-Classifier/pkg/classifier/subject"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	SubjectsPath string
	StoplistPath string
	GeoPath      string
	ConfigPath   string
}

// Components holds all loaded configuration components
type Components struct {
	Library *subject.Library
	Filter  *stopterm.Filter
	Config  Config
}

// Load reads all configuration files and returns initialized components.
// The subject library is mandatory; stoplist and geo-name files fall back
// to the built-in defaults, and a missing config path means Default().
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	if l.SubjectsPath == "" {
		return nil, fmt.Errorf("loader: %w: subjects path is required", internalerr.ErrInvalidConfig)
	}
	src, err := LoadSubjects(l.SubjectsPath)
	if err != nil {
		return nil, fmt.Errorf("load subjects: %w", err)
	}
	cats := make([]subject.Category, len(src.Categories))
	for i, c := range src.Categories {
		cats[i] = subject.Category{
			Name:         c.Name,
			ExactTerms:   c.Terms,
			ContextTerms: c.Context,
			Aliases:      c.Aliases,
		}
	}
	comp.Library, err = subject.New(cats)
	if err != nil {
		return nil, fmt.Errorf("build subject library: %w", err)
	}

	stops := stopterm.DefaultStopWords()
	if l.StoplistPath != "" {
		sl, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		stops = sl.Terms
	}

	geo := stopterm.DefaultGeoNames()
	if l.GeoPath != "" {
		gl, err := LoadStoplist(l.GeoPath)
		if err != nil {
			return nil, fmt.Errorf("load geo names: %w", err)
		}
		geo = gl.Terms
	}
	comp.Filter = stopterm.New(stops, geo)

	if l.ConfigPath != "" {
		comp.Config, err = LoadConfig(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	} else {
		comp.Config = Default()
	}

	return comp, nil
}
