// Package config loads and saves arena configuration.
//
// Display settings are stored in ~/.ai-arena/config.toml. Tournament
// settings are read by LoadTournamentSpec from the [tournament] table of a
// TOML file at a path the caller supplies.
//
// Config directory permissions: 0755 (rwxr-xr-x)
// Config file permissions: 0644 (rw-r--r--)
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultTheme is the default GUI theme name.
const DefaultTheme = "classic"

// Display holds GUI rendering options.
type Display struct {
	UseColors    bool
	ShowHelpText bool
	Theme        string
}

// DefaultDisplay returns a Display with default values.
func DefaultDisplay() Display {
	return Display{
		UseColors:    true,
		ShowHelpText: true,
		Theme:        DefaultTheme,
	}
}

// CompetitorSpec is one entrant as read from the config file.
type CompetitorSpec struct {
	ID       string `toml:"id"`
	HomeGame string `toml:"home_game"`
	Agent    string `toml:"agent"`
}

// TournamentSpec holds the tournament scheduler settings as read from the
// config file.
type TournamentSpec struct {
	Competitors    []CompetitorSpec `toml:"competitors"`
	NeutralGame    string           `toml:"neutral_game"`
	Rounds         int              `toml:"rounds"`
	SwapStarts     bool             `toml:"swap_starts"`
	PrimePause     bool             `toml:"prime_pause"`
	LogDir         string           `toml:"log_dir"`
	MaxConcurrency int              `toml:"max_concurrency"`
}

// DisplayFile is the TOML-decoded shape of the [display] table.
type DisplayFile struct {
	UseColors    bool   `toml:"use_colors"`
	ShowHelpText bool   `toml:"show_help_text"`
	Theme        string `toml:"theme"`
}

// ConfigFile is the full structure of the TOML configuration file.
type ConfigFile struct {
	Display    DisplayFile    `toml:"display"`
	Tournament TournamentSpec `toml:"tournament"`
}

func defaultConfigFile() ConfigFile {
	return ConfigFile{
		Display: DisplayFile{
			UseColors:    true,
			ShowHelpText: true,
			Theme:        DefaultTheme,
		},
		Tournament: TournamentSpec{
			Rounds:         1,
			MaxConcurrency: 1,
		},
	}
}

func displayFileToDisplay(df DisplayFile) Display {
	theme := df.Theme
	if theme == "" {
		theme = DefaultTheme
	}
	return Display{
		UseColors:    df.UseColors,
		ShowHelpText: df.ShowHelpText,
		Theme:        theme,
	}
}

// LoadDisplay reads the [display] table from ~/.ai-arena/config.toml. If the
// file doesn't exist or cannot be parsed, it returns DefaultDisplay(). This
// function never returns an error - a missing or broken config file is not
// fatal to running the GUI.
func LoadDisplay() Display {
	cf, ok := tryLoadConfigFile()
	if !ok {
		return DefaultDisplay()
	}
	return displayFileToDisplay(cf.Display)
}

// LoadTournamentSpec reads the [tournament] table from path. Unlike
// LoadDisplay, a missing or malformed tournament config is an error: a
// tournament run has no sensible default competitor list.
func LoadTournamentSpec(path string) (TournamentSpec, error) {
	var cf ConfigFile
	if _, err := toml.DecodeFile(path, &cf); err != nil {
		return TournamentSpec{}, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	if cf.Tournament.Rounds <= 0 {
		cf.Tournament.Rounds = 1
	}
	if len(cf.Tournament.Competitors) < 2 {
		return TournamentSpec{}, fmt.Errorf("config: %s must declare at least two competitors", path)
	}
	return cf.Tournament, nil
}

func tryLoadConfigFile() (ConfigFile, bool) {
	configPath, err := getConfigFilePath()
	if err != nil {
		return ConfigFile{}, false
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return ConfigFile{}, false
	}
	var cf ConfigFile
	if _, err := toml.DecodeFile(configPath, &cf); err != nil {
		return ConfigFile{}, false
	}
	return cf, true
}

// SaveDisplay writes display to ~/.ai-arena/config.toml, preserving any
// existing [tournament] table already on disk.
func SaveDisplay(display Display) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("config: getting config directory: %w", err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("config: creating config directory: %w", err)
	}

	cf, ok := tryLoadConfigFile()
	if !ok {
		cf = defaultConfigFile()
	}
	cf.Display = DisplayFile{
		UseColors:    display.UseColors,
		ShowHelpText: display.ShowHelpText,
		Theme:        display.Theme,
	}

	configPath, err := getConfigFilePath()
	if err != nil {
		return fmt.Errorf("config: getting config file path: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("config: creating config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(cf); err != nil {
		return fmt.Errorf("config: encoding config to TOML: %w", err)
	}
	return nil
}
