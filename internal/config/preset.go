package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mohae/deepcopy"
	"gopkg.in/yaml.v3"

	"hybrid-sim/internal/model"
)

// Preset is a reusable technology block stored as YAML:
//
//	name: Utility PV 100 MW
//	solar:
//	  system_capacity_kw: 100000
type Preset struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Kind   model.TechKind `json:"kind"`
	File   string         `json:"file"`
	Params map[string]any `json:"params"`
}

// LoadPreset reads a preset file. The file must hold exactly one technology
// block; its ID is the file name without extension.
func LoadPreset(path string) (*Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("preset %s: %w", path, err)
	}

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p := &Preset{ID: id, Name: id, File: path}
	if name, ok := doc["name"].(string); ok && name != "" {
		p.Name = name
	}
	for _, kind := range model.KnownKinds {
		block, ok := doc[string(kind)]
		if !ok {
			continue
		}
		if p.Kind != "" {
			return nil, fmt.Errorf("preset %s: holds both %s and %s", path, p.Kind, kind)
		}
		params, ok := block.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("preset %s: %s must be a mapping", path, kind)
		}
		p.Kind = kind
		p.Params = params
	}
	if p.Kind == "" {
		return nil, fmt.Errorf("preset %s: no technology block", path)
	}
	return p, nil
}

// ListPresets loads every *.yaml preset in dir, sorted by ID. Files that fail
// to load are reported in skipped rather than failing the listing.
func ListPresets(dir string) (presets []Preset, skipped map[string]error, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	skipped = map[string]error{}
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		p, err := LoadPreset(filepath.Join(dir, e.Name()))
		if err != nil {
			skipped[e.Name()] = err
			continue
		}
		presets = append(presets, *p)
	}
	sort.Slice(presets, func(i, j int) bool { return presets[i].ID < presets[j].ID })
	return presets, skipped, nil
}

// MergeTechnology fills keys missing from block with preset values. Any key
// present in block wins, zero values included; nested mappings are filled
// key by key.
func MergeTechnology(block, preset map[string]any) error {
	if block == nil {
		return errors.New("merge preset: technology block is nil")
	}
	fillMissing(block, preset)
	return nil
}

func fillMissing(dst, src map[string]any) {
	for k, v := range src {
		cur, ok := dst[k]
		if !ok {
			dst[k] = deepcopy.Copy(v)
			continue
		}
		dm, dok := cur.(map[string]any)
		sm, sok := v.(map[string]any)
		if dok && sok {
			fillMissing(dm, sm)
		}
	}
}
