// Package game defines the Game capability that concrete rule sets
// implement and the match engine drives.
package game

import "github.com/arenahq/ai-arena/internal/jsonvalue"

// PlayerId identifies a seat at the table: 0 or 1.
type PlayerId int

// Terminal describes whether a state ends the game and, if so, who won.
type Terminal struct {
	IsTerminal bool
	// Winner is nil for a draw or a non-terminal state.
	Winner *PlayerId
	// Reason is a short machine-stable tag such as "win", "draw",
	// "reach_level3", or "turn_limit". Empty when not terminal.
	Reason string
}

// Game is the contract a concrete rule set implements. Implementations
// must be deterministic and must not retain mutable references into the
// state values they are handed back by the engine: State values are JSON
// values (see jsonvalue.Value) and the engine treats them as immutable
// once produced.
type Game interface {
	// Name is the identifier used in CLI arguments and match logs.
	Name() string

	// InitialState returns the state of a fresh game, always with player 0
	// to move first.
	InitialState() jsonvalue.Value

	// LegalMoves returns every move available to player in state. The
	// returned slice must never be empty unless Terminal(state) reports
	// IsTerminal; the match engine treats an empty legal-move list on a
	// non-terminal state as a no_legal_moves forfeit.
	LegalMoves(state jsonvalue.Value, player PlayerId) []jsonvalue.Value

	// ApplyMove returns the state that results from player playing move.
	// move is always one of the values most recently returned by
	// LegalMoves for this exact state and player (the engine validates via
	// jsonvalue.Equal before calling). Implementations may still return an
	// error for defense in depth.
	ApplyMove(state jsonvalue.Value, player PlayerId, move jsonvalue.Value) (jsonvalue.Value, error)

	// Terminal reports whether state ends the game.
	Terminal(state jsonvalue.Value) Terminal

	// Render returns a human-readable rendering of state, used by the
	// play and replay CLI commands.
	Render(state jsonvalue.Value) string
}
