package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arenahq/ai-arena/internal/agent"
	"github.com/arenahq/ai-arena/internal/game"
	"github.com/arenahq/ai-arena/internal/loader"
	"github.com/arenahq/ai-arena/internal/matchengine"
	"github.com/arenahq/ai-arena/internal/replay"
)

type matchFinishedMsg struct {
	result matchengine.MatchResult
	err    error
}

type replayLoadedMsg struct {
	rep *replay.Replay
	g   game.Game
	err error
}

// logDocument mirrors the shape matchengine.writeLog produces, enough of it
// to recover the game name and move history for replay.
type logDocument struct {
	Game   string `json:"game"`
	Result struct {
		MoveHistory []matchengine.MoveRecord `json:"move_history"`
		Winner      *game.PlayerId           `json:"winner"`
		Reason      string                   `json:"reason"`
		Turns       int                      `json:"turns"`
	} `json:"result"`
}

// runMatchCmd plays a match to completion off the UI goroutine and reports
// the final result (or error) as a tea.Msg.
func runMatchCmd(g game.Game, a0, a1 agent.Agent, logPath string) tea.Cmd {
	return func() tea.Msg {
		result, err := matchengine.Play(context.Background(), g, [2]agent.Agent{a0, a1}, matchengine.Options{
			LogPath: logPath,
		})
		return matchFinishedMsg{result: result, err: err}
	}
}

// loadReplayCmd reads a match log from path and reconstructs its trajectory
// against a registered game, purely, off the UI goroutine.
func loadReplayCmd(reg *loader.Registry, path string) tea.Cmd {
	return func() tea.Msg {
		raw, err := os.ReadFile(path)
		if err != nil {
			return replayLoadedMsg{err: fmt.Errorf("reading %s: %w", path, err)}
		}
		var doc logDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return replayLoadedMsg{err: fmt.Errorf("parsing %s: %w", path, err)}
		}

		g, err := reg.LoadGame(doc.Game)
		if err != nil {
			return replayLoadedMsg{err: fmt.Errorf("loading game %q from log: %w", doc.Game, err)}
		}

		rep := replay.FromMatchResult(g, matchengine.MatchResult{
			Game:        doc.Game,
			Winner:      doc.Result.Winner,
			Reason:      doc.Result.Reason,
			Turns:       doc.Result.Turns,
			MoveHistory: doc.Result.MoveHistory,
		})
		return replayLoadedMsg{rep: &rep, g: g}
	}
}
