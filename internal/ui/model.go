// Package ui implements the Bubbletea GUI: a main menu, a setup screen for
// live matches, a live-match runner, and a replay viewer for saved match
// logs.
package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/arenahq/ai-arena/internal/config"
	"github.com/arenahq/ai-arena/internal/game"
	"github.com/arenahq/ai-arena/internal/loader"
	"github.com/arenahq/ai-arena/internal/matchengine"
	"github.com/arenahq/ai-arena/internal/replay"
)

// Screen identifies which view the Model currently renders.
type Screen int

const (
	ScreenMainMenu Screen = iota
	ScreenPlaySetup
	ScreenLiveMatch
	ScreenReplay
	ScreenDone
)

// setupField indexes the three text inputs on the play-setup screen.
type setupField int

const (
	fieldGame setupField = iota
	fieldP0
	fieldP1
	fieldCount
)

// Options configures how a Model is launched.
type Options struct {
	Registry *loader.Registry
	Config   config.Display
	// GameSpec/P0Spec/P1Spec pre-fill the setup screen; empty strings fall
	// back to the defaults ("tictactoe", "human", "random").
	GameSpec, P0Spec, P1Spec string
	// LoadLogPath, if set, skips the menu and opens a replay directly.
	LoadLogPath string
	// SaveLogPath is where a completed live match's log is written.
	SaveLogPath string
}

// Model is the Bubbletea application model.
type Model struct {
	opts  Options
	theme Theme

	screen   Screen
	registry *loader.Registry

	menuOptions   []string
	menuSelection int

	inputs      [3]textinput.Model
	focusField  setupField
	setupError  string

	liveGame    game.Game
	liveRunning bool
	liveResult  *matchengine.MatchResult
	liveErr     error

	rep       *replay.Replay
	repGame   game.Game
	repCursor int
	repErr    error

	clipboardMsg string

	termWidth, termHeight int
}

// NewModel builds a Model ready to run. If opts.LoadLogPath is set, the
// model requests a replay load as its first command.
func NewModel(opts Options) Model {
	theme := GetTheme(ParseThemeName(opts.Config.Theme))

	gameInput := textinput.New()
	gameInput.Placeholder = "tictactoe"
	gameInput.SetValue(orDefault(opts.GameSpec, ""))
	gameInput.CharLimit = 80
	gameInput.Width = 40

	p0Input := textinput.New()
	p0Input.Placeholder = "human"
	p0Input.SetValue(orDefault(opts.P0Spec, ""))
	p0Input.CharLimit = 120
	p0Input.Width = 40

	p1Input := textinput.New()
	p1Input.Placeholder = "random"
	p1Input.SetValue(orDefault(opts.P1Spec, ""))
	p1Input.CharLimit = 120
	p1Input.Width = 40

	screen := ScreenMainMenu
	if opts.LoadLogPath != "" {
		screen = ScreenReplay
	}

	m := Model{
		opts:        opts,
		theme:       theme,
		screen:      screen,
		registry:    opts.Registry,
		menuOptions: []string{"Play a match", "Open a replay", "Quit"},
		inputs:      [3]textinput.Model{gameInput, p0Input, p1Input},
		focusField:  fieldGame,
	}
	return m
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.opts.LoadLogPath != "" {
		return loadReplayCmd(m.registry, m.opts.LoadLogPath)
	}
	return nil
}
