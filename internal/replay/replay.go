// Package replay reconstructs a match's state trajectory from a serialized
// MatchResult against the same Game, purely (no agents, no subprocesses).
package replay

import (
	"github.com/arenahq/ai-arena/internal/game"
	"github.com/arenahq/ai-arena/internal/jsonvalue"
	"github.com/arenahq/ai-arena/internal/matchengine"
)

// Replay is the reconstructed trajectory. States[0] is the initial state;
// States[i+1] is the result of applying Moves[i] (or, for a forfeit record,
// an unchanged copy of States[i]).
type Replay struct {
	Game     string
	Moves    []matchengine.MoveRecord
	States   []jsonvalue.Value
	Terminal game.Terminal
}

// FromMoveHistory replays moveHistory against g and computes the terminal
// verdict purely from the game's own rules.
func FromMoveHistory(g game.Game, moveHistory []matchengine.MoveRecord) Replay {
	states := make([]jsonvalue.Value, 0, len(moveHistory)+1)
	states = append(states, g.InitialState())

	for _, m := range moveHistory {
		if m.Note == nil {
			next, err := g.ApplyMove(states[len(states)-1], m.Player, m.Move)
			if err != nil {
				// A clean record that the game itself rejects is a
				// corrupted log; freeze rather than panic.
				states = append(states, states[len(states)-1])
				break
			}
			states = append(states, next)
			continue
		}
		// Forfeit/error record: state is unchanged, and replay stops here
		// per the trajectory-purity invariant (a non-nil note is always
		// the last record).
		states = append(states, states[len(states)-1])
		break
	}

	term := g.Terminal(states[len(states)-1])
	return Replay{Game: g.Name(), Moves: moveHistory, States: states, Terminal: term}
}

// FromMatchResult replays result.MoveHistory against g and, when the game
// rules do not consider the final state terminal, falls back to the
// engine-level verdict carried in result itself. This is how illegal-move,
// timeout, and agent-error forfeits survive replay even though no Game
// implements those reasons.
func FromMatchResult(g game.Game, result matchengine.MatchResult) Replay {
	rep := FromMoveHistory(g, result.MoveHistory)
	if rep.Terminal.IsTerminal {
		return rep
	}
	if result.Reason == "" {
		return rep
	}
	rep.Terminal = game.Terminal{IsTerminal: true, Winner: result.Winner, Reason: result.Reason}
	return rep
}
