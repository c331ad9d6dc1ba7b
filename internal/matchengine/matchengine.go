// Package matchengine drives one match between two agents against a game,
// producing a deterministic MatchResult and an optional JSON log.
package matchengine

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arenahq/ai-arena/internal/agent"
	"github.com/arenahq/ai-arena/internal/game"
	"github.com/arenahq/ai-arena/internal/jsonvalue"
)

// ErrTimeout is the sentinel an Agent.SelectMove implementation should wrap
// (via fmt.Errorf("...: %w", matchengine.ErrTimeout)) when a per-turn
// deadline elapses without a reply, so the engine classifies the forfeit as
// "timeout" rather than the generic "agent_error".
var ErrTimeout = errors.New("agent turn deadline exceeded")

// MoveRecord is one entry of a match's move history.
type MoveRecord struct {
	Turn   int             `json:"turn"`
	Player game.PlayerId   `json:"player"`
	Move   jsonvalue.Value `json:"move"`
	// MS is the elapsed wall time of the agent call, in milliseconds. Nil
	// for moves where timing was not meaningful (never produced by this
	// engine, but kept nilable to match the wire schema).
	MS *float64 `json:"ms"`
	// Note is non-nil exactly when this record was not applied to the
	// state (a forfeit or error record). Per the trajectory-purity
	// invariant, a non-nil note only ever appears on the final record.
	// Always serialized (never omitted), so a clean move's record still
	// carries an explicit "note": null in the match log.
	Note *string `json:"note"`
}

// MatchResult is the final record of a match.
type MatchResult struct {
	Game   string        `json:"game"`
	Winner *game.PlayerId `json:"winner"`
	Reason string        `json:"reason"`
	Turns  int           `json:"turns"`
	MoveHistory []MoveRecord `json:"move_history"`
}

// Options configures a single call to Play.
type Options struct {
	MaxTurns   int
	PrimePause bool
	// LogPath, if non-empty, is where the match log is written on every
	// terminating path.
	LogPath string
	// PrimePrompt is invoked (turn) when prime_pause fires; it must block
	// until the operator signals continuation. When it is nil, PrimePause
	// has no effect. The engine does not check what kind of agents are
	// playing; keeping prime-pause off for subprocess-agent matches is the
	// caller's responsibility.
	PrimePrompt func(turn int)
}

const defaultMaxTurns = 10_000

// Play drives g to completion using agents[0] and agents[1], alternating
// starting with player 0. It never propagates an agent error or timeout to
// the caller: every such condition is converted into a forfeit MatchResult.
func Play(ctx context.Context, g game.Game, agents [2]agent.Agent, opts Options) (MatchResult, error) {
	maxTurns := opts.MaxTurns
	if maxTurns <= 0 {
		maxTurns = defaultMaxTurns
	}

	state := g.InitialState()
	history := make([]MoveRecord, 0, 32)
	player := game.PlayerId(0)

	finish := func(winner *game.PlayerId, reason string, turns int) (MatchResult, error) {
		result := MatchResult{
			Game:        g.Name(),
			Winner:      winner,
			Reason:      reason,
			Turns:       turns,
			MoveHistory: history,
		}
		if opts.LogPath != "" {
			if err := writeLog(opts.LogPath, g, state, result); err != nil {
				return result, fmt.Errorf("writing match log: %w", err)
			}
		}
		return result, nil
	}

	opponent := func(p game.PlayerId) game.PlayerId {
		return 1 - p
	}

	for turn := 1; turn <= maxTurns; turn++ {
		term := g.Terminal(state)
		if term.IsTerminal {
			return finish(term.Winner, term.Reason, turn-1)
		}

		legal := g.LegalMoves(state, player)
		if len(legal) == 0 {
			w := opponent(player)
			return finish(&w, "no_legal_moves", turn-1)
		}

		start := time.Now()
		move, err := agents[player].SelectMove(ctx, state, player, legal)
		elapsedMS := float64(time.Since(start).Milliseconds())

		if err != nil {
			reason := "agent_error"
			if errors.Is(err, ErrTimeout) {
				reason = "timeout"
			}
			history = append(history, MoveRecord{
				Turn: turn, Player: player, Move: move, MS: &elapsedMS, Note: &reason,
			})
			w := opponent(player)
			return finish(&w, reason, turn)
		}

		if !legalContains(legal, move) {
			illegal := "illegal_move"
			history = append(history, MoveRecord{
				Turn: turn, Player: player, Move: move, MS: &elapsedMS, Note: &illegal,
			})
			w := opponent(player)
			return finish(&w, "illegal_move", turn)
		}

		state, err = g.ApplyMove(state, player, move)
		if err != nil {
			applyErr := "agent_error"
			history = append(history, MoveRecord{
				Turn: turn, Player: player, Move: move, MS: &elapsedMS, Note: &applyErr,
			})
			w := opponent(player)
			return finish(&w, "agent_error", turn)
		}

		history = append(history, MoveRecord{Turn: turn, Player: player, Move: move, MS: &elapsedMS})

		if opts.PrimePause && isPrime(turn) && opts.PrimePrompt != nil {
			opts.PrimePrompt(turn)
		}

		player = opponent(player)
	}

	return finish(nil, "max_turns", maxTurns)
}

func legalContains(legal []jsonvalue.Value, move jsonvalue.Value) bool {
	for _, m := range legal {
		if jsonvalue.Equal(m, move) {
			return true
		}
	}
	return false
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for i := 2; i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

type logDocument struct {
	Game        string      `json:"game"`
	Result      MatchResult `json:"result"`
	FinalState  jsonvalue.Value `json:"final_state"`
	FinalRender string      `json:"final_render"`
}

// writeLog writes the match log atomically: to a temp file in the target
// directory, then renamed into place, so a reader never observes a partial
// file.
func writeLog(path string, g game.Game, finalState jsonvalue.Value, result MatchResult) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	doc := logDocument{
		Game:        g.Name(),
		Result:      result,
		FinalState:  finalState,
		FinalRender: g.Render(finalState),
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling match log: %w", err)
	}
	canonical, err := jsonvalue.Canonical(jsonDecodeAny(raw))
	if err != nil {
		return fmt.Errorf("canonicalizing match log: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".match-log-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp log file: %w", err)
	}
	tmpPath := tmp.Name()
	w := bufio.NewWriter(tmp)
	if _, err := w.Write(canonical); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing log contents: %w", err)
	}
	if _, err := w.WriteString("\n"); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing trailing newline: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("flushing log file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp log file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp log file into place: %w", err)
	}
	return nil
}

func jsonDecodeAny(raw []byte) jsonvalue.Value {
	var v any
	_ = json.Unmarshal(raw, &v)
	return v
}
