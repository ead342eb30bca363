package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jbdutton/rune-go/internal/compile"
)

// Manifest is an optional per-project rune.yaml, read from the current
// directory when present. It lets a project pin its compile options and
// entry sources instead of repeating flags on every invocation.
type Manifest struct {
	Sources  []string `yaml:"sources"`
	Cache    *bool    `yaml:"cache"`
	Warnings *bool    `yaml:"warnings"`
	Macros   *bool    `yaml:"macros"`
	Test     *bool    `yaml:"test"`
}

// loadManifest reads rune.yaml from the current directory. A missing file
// is not an error: it returns a zero Manifest so callers fall back to
// flag defaults.
func loadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// applyTo overlays manifest fields the user didn't override with a flag.
// Flags always win when explicitly set; flagSet reports which flag names
// the user passed on the command line.
func (m *Manifest) applyTo(opts *compile.Options, flagSet map[string]bool) {
	if m == nil {
		return
	}
	if m.Cache != nil && !flagSet["cache"] {
		opts.Bytecode = *m.Cache
	}
	if m.Warnings != nil && !flagSet["warnings"] {
		opts.Warnings = *m.Warnings
	}
	if m.Macros != nil && !flagSet["macros"] {
		opts.Macros = *m.Macros
	}
	if m.Test != nil && !flagSet["test"] {
		opts.Test = *m.Test
	}
}
