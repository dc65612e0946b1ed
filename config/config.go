// Package config loads fan base parameters from YAML files and named presets.
//
// A parameter file may name a preset and override any of its fields:
//
//	preset: merox
//	post_height: 5
//	triangle_side: 44
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fanparts/fanbase"
	"gopkg.in/yaml.v3"
)

// DefaultPreset is used when a file names no preset.
const DefaultPreset = "fan"

var presets = map[string]fanbase.Params{
	"fan":   fanbase.Default,
	"merox": fanbase.Merox,
}

// ErrUnknownPreset is returned for preset names not in PresetNames.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset returns the parameters of a named preset.
func Preset(name string) (fanbase.Params, error) {
	p, ok := presets[name]
	if !ok {
		return fanbase.Params{}, fmt.Errorf("%w %q (have %v)", ErrUnknownPreset, name, PresetNames())
	}
	return p, nil
}

// PresetNames lists the available presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// file is the on-disk layout. Params fields are inlined so that overrides
// sit next to the preset key.
type file struct {
	Preset         string `yaml:"preset,omitempty"`
	fanbase.Params `yaml:",inline"`
}

// Load reads a parameter file and validates the result.
func Load(path string) (fanbase.Params, error) {
	return LoadPreset(path, DefaultPreset)
}

// LoadPreset is like Load but a file naming no preset starts from fallback.
func LoadPreset(path, fallback string) (fanbase.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fanbase.Params{}, err
	}
	p, err := ParsePreset(data, fallback)
	if err != nil {
		return fanbase.Params{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes YAML parameters. Fields not present keep the value of the
// named preset, or of DefaultPreset when the document names none. Unknown
// keys are rejected.
func Parse(data []byte) (fanbase.Params, error) {
	return ParsePreset(data, DefaultPreset)
}

// ParsePreset is like Parse but a document naming no preset starts from fallback.
func ParsePreset(data []byte, fallback string) (fanbase.Params, error) {
	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return fanbase.Params{}, err
	}
	if head.Preset == "" {
		head.Preset = fallback
	}
	if head.Preset == "" {
		head.Preset = DefaultPreset
	}
	base, err := Preset(head.Preset)
	if err != nil {
		return fanbase.Params{}, err
	}
	f := file{Params: base}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return fanbase.Params{}, err
	}
	if err := f.Params.Validate(); err != nil {
		return fanbase.Params{}, err
	}
	return f.Params, nil
}

// Save writes p as YAML.
func Save(w io.Writer, p fanbase.Params) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return err
	}
	return enc.Close()
}
