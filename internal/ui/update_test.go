package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arenahq/ai-arena/internal/agent"
	"github.com/arenahq/ai-arena/internal/game"
	"github.com/arenahq/ai-arena/internal/games/tictactoe"
	"github.com/arenahq/ai-arena/internal/jsonvalue"
	"github.com/arenahq/ai-arena/internal/loader"
	"github.com/arenahq/ai-arena/internal/replay"
)

func testRegistryForUI() *loader.Registry {
	reg := loader.NewRegistry()
	reg.RegisterGame("tictactoe", func() (game.Game, error) { return tictactoe.New(), nil })
	reg.RegisterAgent("first-legal", func(string) (agent.Agent, error) { return agent.NewFirstLegalAgent(), nil })
	return reg
}

func TestMainMenuNavigationWraps(t *testing.T) {
	m := NewModel(Options{Registry: testRegistryForUI()})

	result, _ := m.handleMainMenuKeys(tea.KeyMsg{Type: tea.KeyUp})
	m = result.(Model)
	if m.menuSelection != len(m.menuOptions)-1 {
		t.Fatalf("expected wrap to last item, got selection %d", m.menuSelection)
	}

	result, _ = m.handleMainMenuKeys(tea.KeyMsg{Type: tea.KeyDown})
	m = result.(Model)
	if m.menuSelection != 0 {
		t.Fatalf("expected wrap back to first item, got selection %d", m.menuSelection)
	}
}

func TestMainMenuEnterOpensPlaySetup(t *testing.T) {
	m := NewModel(Options{Registry: testRegistryForUI()})
	m.menuSelection = 0

	result, _ := m.handleMainMenuKeys(tea.KeyMsg{Type: tea.KeyEnter})
	m = result.(Model)
	if m.screen != ScreenPlaySetup {
		t.Fatalf("expected ScreenPlaySetup, got %v", m.screen)
	}
}

func TestPlaySetupTabCyclesFocus(t *testing.T) {
	m := NewModel(Options{Registry: testRegistryForUI()})
	m.screen = ScreenPlaySetup
	m.focusField = fieldGame

	result, _ := m.handlePlaySetupKeys(tea.KeyMsg{Type: tea.KeyTab})
	m = result.(Model)
	if m.focusField != fieldP0 {
		t.Fatalf("expected focus on fieldP0, got %v", m.focusField)
	}
}

func TestPlaySetupEnterWithUnknownGameSetsError(t *testing.T) {
	m := NewModel(Options{Registry: testRegistryForUI()})
	m.screen = ScreenPlaySetup
	m.inputs[fieldGame].SetValue("not-a-real-game")

	result, _ := m.handlePlaySetupKeys(tea.KeyMsg{Type: tea.KeyEnter})
	m = result.(Model)
	if m.setupError == "" {
		t.Fatalf("expected a setup error for an unknown game")
	}
	if m.screen != ScreenPlaySetup {
		t.Fatalf("expected to stay on ScreenPlaySetup after a load error")
	}
}

func TestPlaySetupEnterWithValidSpecsLaunchesMatch(t *testing.T) {
	m := NewModel(Options{Registry: testRegistryForUI()})
	m.screen = ScreenPlaySetup
	m.inputs[fieldGame].SetValue("tictactoe")
	m.inputs[fieldP0].SetValue("first-legal")
	m.inputs[fieldP1].SetValue("first-legal")

	result, cmd := m.handlePlaySetupKeys(tea.KeyMsg{Type: tea.KeyEnter})
	m = result.(Model)
	if m.screen != ScreenLiveMatch {
		t.Fatalf("expected ScreenLiveMatch, got %v", m.screen)
	}
	if cmd == nil {
		t.Fatalf("expected a command to run the match")
	}
}

func TestReplayEscWithNoReplayLoadedReturnsToMenu(t *testing.T) {
	m := NewModel(Options{Registry: testRegistryForUI()})
	m.screen = ScreenReplay
	m.rep = nil

	result, _ := m.handleReplayKeys(tea.KeyMsg{Type: tea.KeyEsc})
	m = result.(Model)
	if m.screen != ScreenMainMenu {
		t.Fatalf("expected esc with no replay loaded to return to the menu")
	}
}

func TestReplayStepClampsAtBounds(t *testing.T) {
	reg := testRegistryForUI()
	g, err := reg.LoadGame("tictactoe")
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}

	m := NewModel(Options{Registry: reg})
	m.screen = ScreenReplay
	m.rep = &replay.Replay{States: []jsonvalue.Value{g.InitialState()}}
	m.repCursor = 0

	result, _ := m.handleReplayKeys(tea.KeyMsg{Type: tea.KeyLeft})
	m = result.(Model)
	if m.repCursor != 0 {
		t.Fatalf("expected cursor to clamp at 0, got %d", m.repCursor)
	}

	result, _ = m.handleReplayKeys(tea.KeyMsg{Type: tea.KeyRight})
	m = result.(Model)
	if m.repCursor != 0 {
		t.Fatalf("expected cursor to clamp at the only state, got %d", m.repCursor)
	}
}

func TestDoneScreenEnterReturnsToMenu(t *testing.T) {
	m := NewModel(Options{Registry: testRegistryForUI()})
	m.screen = ScreenDone

	res, _ := m.handleDoneKeys(tea.KeyMsg{Type: tea.KeyEnter})
	m = res.(Model)
	if m.screen != ScreenMainMenu {
		t.Fatalf("expected ScreenMainMenu after done, got %v", m.screen)
	}
}
