package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "techsupport.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 16, cfg.Counts.FaultCodes)
	assert.Equal(t, 12, cfg.Counts.SourceFiles)
	assert.Equal(t, 60, cfg.ResolveDuration)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
seed: 77
counts:
  fault_codes: 20
interrupt_interval:
  min: 10
  max: 20
text:
  correct: "OK!"
debug:
  ignore_countdown: true
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, int32(77), cfg.Seed)
	assert.Equal(t, 20, cfg.Counts.FaultCodes)
	assert.Equal(t, 12, cfg.Counts.SourceFiles, "unset fields keep defaults")
	assert.Equal(t, 10, cfg.InterruptInterval.Min)
	assert.Equal(t, "OK!", cfg.Text.Correct)
	assert.Equal(t, DefaultConfig().Text.Incorrect, cfg.Text.Incorrect)
	assert.True(t, cfg.Debug.IgnoreCountdown)
}

func TestLoadConfigEnvWins(t *testing.T) {
	path := writeConfig(t, "seed: 77\nresolve_duration: 30\n")
	t.Setenv("TECHSUPPORT_SEED", "-5")
	t.Setenv("TECHSUPPORT_RESOLVE_DURATION", "45")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, int32(-5), cfg.Seed)
	assert.Equal(t, 45, cfg.ResolveDuration)
}

func TestLoadConfigBadEnv(t *testing.T) {
	t.Setenv("TECHSUPPORT_SEED", "not-a-number")
	_, err := LoadConfig("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := writeConfig(t, "seed: [1, 2\n")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no fault codes", func(c *Config) { c.Counts.FaultCodes = 0 }},
		{"too few patch files", func(c *Config) { c.Counts.PatchFiles = 8 }},
		{"too few source files", func(c *Config) { c.Counts.SourceFiles = 9 }},
		{"empty line range", func(c *Config) { c.LineRange.Max = c.LineRange.Min }},
		{"empty column range", func(c *Config) { c.ColumnRange.Max = 0 }},
		{"inverted interval", func(c *Config) { c.InterruptInterval.Min = 100 }},
		{"negative resolve", func(c *Config) { c.ResolveDuration = -1 }},
		{"no console", func(c *Config) { c.MessageCount = 0 }},
		{"no ticks", func(c *Config) { c.TicksPerSecond = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestExampleConfigMatchesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "techsupport.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
