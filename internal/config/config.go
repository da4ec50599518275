package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"hybrid-sim/internal/data"
	"hybrid-sim/internal/hybrid"
	"hybrid-sim/internal/model"
)

// EnvPrefix marks environment overrides. Nested keys use "__", e.g.
// HYBRID_PROJECT_LIFETIME=30 or HYBRID_HYBRID__SITE__LAT=21.3.
const EnvPrefix = "HYBRID_"

// DefaultProjectLifetime is used when project_lifetime is omitted.
const DefaultProjectLifetime = 25

// Keys resolved at load time and removed from the plant config.
const (
	KeyPresetFile   = "preset_file"
	KeyScheduleFile = "desired_schedule_file"
)

var validate = validator.New()

// Config is the on-disk configuration shape (YAML or JSON).
type Config struct {
	ProjectLifetime int  `koanf:"project_lifetime" validate:"gt=0,lte=100"`
	Verbose         bool `koanf:"verbose"`
	ZeroPad         bool `koanf:"zero_pad"`

	// Hybrid is the plant configuration (site + technologies) handed to the
	// normalizer.
	Hybrid hybrid.RawConfig `koanf:"hybrid" validate:"required"`
	// Plant is passed to the engine untouched (e.g. a finance block).
	Plant map[string]any `koanf:"plant"`

	Output OutputConfig `koanf:"output"`
}

type OutputConfig struct {
	// HourlyCSV, when set, receives the year-one hourly series.
	HourlyCSV string `koanf:"hourly_csv"`
}

// Load reads path, applies environment overrides, resolves preset and
// schedule files relative to the config directory, then validates.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and resolves config, but does not default or validate it.
func LoadUnchecked(path string) (*Config, error) {
	k := koanf.New(".")
	var parser koanf.Parser
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider(EnvPrefix, "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	c := Config{Verbose: true}
	if err := k.UnmarshalWithConf("", &c, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}
	if err := c.resolveFiles(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) SetDefaults() {
	if c.ProjectLifetime == 0 {
		c.ProjectLifetime = DefaultProjectLifetime
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := validate.Struct(c); err != nil {
		return err
	}
	for _, key := range []string{hybrid.KeySite, hybrid.KeyTechnologies} {
		if _, ok := c.Hybrid[key].(map[string]any); !ok {
			return fmt.Errorf("hybrid.%s mapping is required", key)
		}
	}
	for name := range c.technologies() {
		if _, err := model.ParseTechKind(name); err != nil {
			return fmt.Errorf("hybrid.technologies: %w", err)
		}
	}
	return nil
}

func (c *Config) technologies() map[string]any {
	techs, _ := c.Hybrid[hybrid.KeyTechnologies].(map[string]any)
	return techs
}

// resolveFiles replaces preset_file and desired_schedule_file references with
// their contents. Explicit keys win over a preset.
func (c *Config) resolveFiles(dir string) error {
	if c.Hybrid == nil {
		return nil
	}
	for name, v := range c.technologies() {
		block, ok := v.(map[string]any)
		if !ok {
			continue
		}
		ref, ok := block[KeyPresetFile].(string)
		if !ok || ref == "" {
			continue
		}
		preset, err := LoadPreset(resolvePath(dir, ref))
		if err != nil {
			return fmt.Errorf("technologies.%s: %w", name, err)
		}
		if string(preset.Kind) != name {
			return fmt.Errorf("technologies.%s: preset %q is a %s preset", name, preset.ID, preset.Kind)
		}
		delete(block, KeyPresetFile)
		if err := MergeTechnology(block, preset.Params); err != nil {
			return fmt.Errorf("technologies.%s: %w", name, err)
		}
	}

	site, ok := c.Hybrid[hybrid.KeySite].(map[string]any)
	if !ok {
		return nil
	}
	ref, ok := site[KeyScheduleFile].(string)
	if !ok || ref == "" {
		return nil
	}
	delete(site, KeyScheduleFile)
	if _, explicit := site[hybrid.KeyDesiredSchedule]; explicit {
		return nil
	}
	schedule, err := data.LoadSchedule(resolvePath(dir, ref))
	if err != nil {
		return fmt.Errorf("site.%s: %w", KeyScheduleFile, err)
	}
	site[hybrid.KeyDesiredSchedule] = schedule
	return nil
}

// resolvePath interprets a relative ref against the config directory, falling
// back to the ref as given (relative to cwd) when that does not exist.
func resolvePath(dir, ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	cand := filepath.Join(dir, ref)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return ref
}
