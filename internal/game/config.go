package game

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/nmtechsupport/techsupport/internal/world"
)

// ErrInvalidConfig wraps every configuration fault found at construction.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds everything a session is built from.
type Config struct {
	Seed   int32        `yaml:"seed"`
	Counts world.Counts `yaml:"counts"`

	LineRange   world.Range `yaml:"line_range"`
	ColumnRange world.Range `yaml:"column_range"`

	// InterruptInterval bounds the idle countdown, in countdown steps.
	InterruptInterval world.Range `yaml:"interrupt_interval"`
	// ResolveDuration is the penalty countdown while a module is held.
	ResolveDuration int `yaml:"resolve_duration"`

	MessageCount   int `yaml:"message_count"`
	TicksPerSecond int `yaml:"ticks_per_second"`

	Text  TextConfig  `yaml:"text"`
	Debug DebugConfig `yaml:"debug"`
}

// TextConfig holds every line the console prints. Formats use fmt verbs.
type TextConfig struct {
	Start            string `yaml:"start"`             // serial number
	Error            string `yaml:"error"`             // module, code, file, line, column
	SelectedOption   string `yaml:"selected_option"`   // option
	UnselectedOption string `yaml:"unselected_option"` // option
	OptionConfirmed  string `yaml:"option_confirmed"`  // option
	ModuleReleased   string `yaml:"module_released"`   // module
	SelectVersion    string `yaml:"select_version"`
	SelectPatchFile  string `yaml:"select_patch_file"`
	SelectParameters string `yaml:"select_parameters"`
	Incorrect        string `yaml:"incorrect"`
	Correct          string `yaml:"correct"`
}

// DebugConfig short-circuits parts of the puzzle while testing a bomb.
type DebugConfig struct {
	IgnoreCountdown        bool `yaml:"ignore_countdown"`
	ForceVersionCorrect    bool `yaml:"force_version_correct"`
	ForcePatchFileCorrect  bool `yaml:"force_patch_file_correct"`
	ForceParametersCorrect bool `yaml:"force_parameters_correct"`
}

// DefaultConfig returns the configuration the manual is written against.
func DefaultConfig() Config {
	return Config{
		Seed:              0,
		Counts:            world.DefaultCounts(),
		LineRange:         world.Range{Min: 1, Max: 250},
		ColumnRange:       world.Range{Min: 1, Max: 100},
		InterruptInterval: world.Range{Min: 30, Max: 90},
		ResolveDuration:   60,
		MessageCount:      11,
		TicksPerSecond:    60,
		Text: TextConfig{
			Start:            "TechSupport v2.3 online. Bomb serial %s.",
			Error:            "%s crashed: error %s in %s at line %d, column %d.",
			SelectedOption:   "> %s",
			UnselectedOption: "  %s",
			OptionConfirmed:  "* %s",
			ModuleReleased:   "%s released.",
			SelectVersion:    "Select a version to roll back to:",
			SelectPatchFile:  "Select a patch file:",
			SelectParameters: "Select the parameters:",
			Incorrect:        "Selection rejected.",
			Correct:          "Selection accepted.",
		},
	}
}

// LoadConfig loads configuration with priority: env > file > defaults.
// A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	if path != "" {
		if err := loadConfigFile(path, &config); err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := loadConfigFromEnv(&config); err != nil {
		return config, err
	}

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func loadConfigFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func loadConfigFromEnv(config *Config) error {
	if v := os.Getenv("TECHSUPPORT_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return fmt.Errorf("%w: TECHSUPPORT_SEED: %v", ErrInvalidConfig, err)
		}
		config.Seed = int32(seed)
	}
	if v := os.Getenv("TECHSUPPORT_RESOLVE_DURATION"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: TECHSUPPORT_RESOLVE_DURATION: %v", ErrInvalidConfig, err)
		}
		config.ResolveDuration = d
	}
	return nil
}

// Validate reports the first configuration fault.
func (c Config) Validate() error {
	if err := c.Counts.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Counts.SourceFiles < minSourceFiles {
		return fmt.Errorf("%w: source_files must be at least %d, got %d", ErrInvalidConfig, minSourceFiles, c.Counts.SourceFiles)
	}
	if c.Counts.PatchFiles < minPatchFiles {
		return fmt.Errorf("%w: patch_files must be at least %d, got %d", ErrInvalidConfig, minPatchFiles, c.Counts.PatchFiles)
	}
	if c.LineRange.Min >= c.LineRange.Max {
		return fmt.Errorf("%w: line_range %v is empty", ErrInvalidConfig, c.LineRange)
	}
	if c.ColumnRange.Min >= c.ColumnRange.Max {
		return fmt.Errorf("%w: column_range %v is empty", ErrInvalidConfig, c.ColumnRange)
	}
	if c.InterruptInterval.Min < 0 || c.InterruptInterval.Min > c.InterruptInterval.Max {
		return fmt.Errorf("%w: interrupt_interval %v", ErrInvalidConfig, c.InterruptInterval)
	}
	if c.ResolveDuration < 0 {
		return fmt.Errorf("%w: resolve_duration must not be negative", ErrInvalidConfig)
	}
	if c.MessageCount < 1 {
		return fmt.Errorf("%w: message_count must be at least 1", ErrInvalidConfig)
	}
	if c.TicksPerSecond < 1 {
		return fmt.Errorf("%w: ticks_per_second must be at least 1", ErrInvalidConfig)
	}
	return nil
}
