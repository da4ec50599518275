package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybrid-sim/internal/hybrid"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimal = `hybrid:
  site:
    lat: 35.2
    lon: -101.9
  technologies:
    solar:
      system_capacity_kw: 1000
`

func techBlock(t *testing.T, c *Config, kind string) map[string]any {
	t.Helper()
	techs, ok := c.Hybrid[hybrid.KeyTechnologies].(map[string]any)
	require.True(t, ok)
	block, ok := techs[kind].(map[string]any)
	require.True(t, ok, kind)
	return block
}

func TestLoadDefaults(t *testing.T) {
	path := write(t, t.TempDir(), "config.yaml", minimal)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultProjectLifetime, c.ProjectLifetime)
	assert.True(t, c.Verbose)
	assert.False(t, c.ZeroPad)
	assert.Empty(t, c.Output.HourlyCSV)
	assert.EqualValues(t, 1000, techBlock(t, c, "solar")["system_capacity_kw"])
}

func TestLoadJSON(t *testing.T) {
	path := write(t, t.TempDir(), "config.json", `{
  "project_lifetime": 10,
  "verbose": false,
  "hybrid": {"site": {}, "technologies": {"wind": {}}},
  "plant": {"finance": {"discount_rate": 0.07}},
  "output": {"hourly_csv": "out.csv"}
}`)
	c, err := Load(path)
	require.NoError(t, err)

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"project_lifetime", c.ProjectLifetime, 10},
		{"verbose", c.Verbose, false},
		{"hourly_csv", c.Output.HourlyCSV, "out.csv"},
		{"plant passthrough", c.Plant["finance"].(map[string]any)["discount_rate"], 0.07},
	}
	for _, ch := range checks {
		assert.Equal(t, ch.want, ch.got, ch.name)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := write(t, t.TempDir(), "config.yaml", minimal)
	t.Setenv("HYBRID_PROJECT_LIFETIME", "30")
	t.Setenv("HYBRID_HYBRID__SITE__LAT", "21.3")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, c.ProjectLifetime)
	assert.Equal(t, "21.3", c.Hybrid[hybrid.KeySite].(map[string]any)["lat"])
}

func TestLoadRejects(t *testing.T) {
	cases := map[string]string{
		"no hybrid":          "project_lifetime: 5\n",
		"negative lifetime":  "project_lifetime: -1\n" + minimal,
		"unknown technology": "hybrid:\n  site: {}\n  technologies:\n    nuclear: {}\n",
		"no technologies":    "hybrid:\n  site: {}\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(write(t, t.TempDir(), "config.yaml", content))
			assert.Error(t, err)
		})
	}

	_, err := Load(write(t, t.TempDir(), "config.toml", minimal))
	assert.Error(t, err)
}

func TestLoadResolvesPresetRelativeToConfig(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "presets/pv.yaml", "name: PV\nsolar:\n  system_capacity_kw: 500\n  losses: 0.1\n")
	path := write(t, dir, "configs/config.yaml", `hybrid:
  site: {}
  technologies:
    solar:
      preset_file: ../presets/pv.yaml
      system_capacity_kw: 2000
`)
	c, err := Load(path)
	require.NoError(t, err)

	block := techBlock(t, c, "solar")
	assert.NotContains(t, block, KeyPresetFile)
	assert.EqualValues(t, 2000, block["system_capacity_kw"], "explicit key wins")
	assert.EqualValues(t, 0.1, block["losses"], "preset fills the rest")
}

func TestLoadPresetKindMismatch(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "wind.yaml", "wind:\n  num_turbines: 2\n")
	path := write(t, dir, "config.yaml", `hybrid:
  site: {}
  technologies:
    solar:
      preset_file: wind.yaml
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "wind preset")
}

func TestLoadScheduleFile(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "load.json", "[1, 2, 3]")
	path := write(t, dir, "config.yaml", `hybrid:
  site:
    desired_schedule_file: load.json
  technologies:
    solar: {}
`)
	c, err := Load(path)
	require.NoError(t, err)
	site := c.Hybrid[hybrid.KeySite].(map[string]any)
	assert.NotContains(t, site, KeyScheduleFile)
	assert.Equal(t, []float64{1, 2, 3}, site[hybrid.KeyDesiredSchedule])
}

func TestLoadScheduleFileDoesNotOverrideInline(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "config.yaml", `hybrid:
  site:
    desired_schedule: [4, 5]
    desired_schedule_file: missing.json
  technologies:
    solar: {}
`)
	c, err := Load(path)
	require.NoError(t, err)
	site := c.Hybrid[hybrid.KeySite].(map[string]any)
	assert.Len(t, site[hybrid.KeyDesiredSchedule], 2)
}

func TestLoadExampleConfigs(t *testing.T) {
	for _, name := range []string{"solar_wind_battery.yaml", "wave.yaml"} {
		t.Run(name, func(t *testing.T) {
			c, err := Load(filepath.Join("..", "..", "examples", "configs", name))
			require.NoError(t, err)
			assert.NotEmpty(t, c.Hybrid[hybrid.KeyTechnologies])
		})
	}
}
