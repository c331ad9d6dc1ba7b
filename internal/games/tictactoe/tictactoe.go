// Package tictactoe implements the reference built-in Game: a 3x3 board
// with the standard three-in-a-row win condition.
package tictactoe

import (
	"fmt"
	"strings"

	"github.com/arenahq/ai-arena/internal/game"
	"github.com/arenahq/ai-arena/internal/jsonvalue"
)

// Game is the Tic-Tac-Toe rule set. State shape:
//
//	{"board": [0|1|2, ...9 cells]}
//
// Board cells: 0 empty, 1 marked by player 0, 2 marked by player 1. Whose
// turn it is is tracked by the match engine, not the state, per the Game
// capability's explicit player argument.
type Game struct{}

// New returns a fresh Tic-Tac-Toe rule set instance.
func New() *Game { return &Game{} }

func (Game) Name() string { return "tictactoe" }

func (Game) InitialState() jsonvalue.Value {
	board := make([]any, 9)
	for i := range board {
		board[i] = 0
	}
	return map[string]any{"board": board}
}

func board(state jsonvalue.Value) []any {
	m := state.(map[string]any)
	return m["board"].([]any)
}

func cell(b []any, i int) int {
	switch v := b[i].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

func (g *Game) LegalMoves(state jsonvalue.Value, player game.PlayerId) []jsonvalue.Value {
	if g.Terminal(state).IsTerminal {
		return nil
	}
	b := board(state)
	moves := make([]jsonvalue.Value, 0, 9)
	for i := 0; i < 9; i++ {
		if cell(b, i) == 0 {
			moves = append(moves, i)
		}
	}
	return moves
}

func (g *Game) ApplyMove(state jsonvalue.Value, player game.PlayerId, move jsonvalue.Value) (jsonvalue.Value, error) {
	idx, ok := asInt(move)
	if !ok || idx < 0 || idx > 8 {
		return nil, fmt.Errorf("tictactoe: invalid move %v", move)
	}
	b := board(state)
	if cell(b, idx) != 0 {
		return nil, fmt.Errorf("tictactoe: cell %d is not empty", idx)
	}

	newBoard := make([]any, 9)
	copy(newBoard, b)
	newBoard[idx] = int(player) + 1

	return map[string]any{"board": newBoard}, nil
}

var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// winner returns the marking player (0 or 1) if three-in-a-row exists, or -1.
func winner(b []any) int {
	for _, line := range winLines {
		a, c, d := cell(b, line[0]), cell(b, line[1]), cell(b, line[2])
		if a != 0 && a == c && c == d {
			return a - 1
		}
	}
	return -1
}

func (g *Game) Terminal(state jsonvalue.Value) game.Terminal {
	b := board(state)
	if w := winner(b); w >= 0 {
		p := game.PlayerId(w)
		return game.Terminal{IsTerminal: true, Winner: &p, Reason: "win"}
	}
	full := true
	for i := 0; i < 9; i++ {
		if cell(b, i) == 0 {
			full = false
			break
		}
	}
	if full {
		return game.Terminal{IsTerminal: true, Winner: nil, Reason: "draw"}
	}
	return game.Terminal{}
}

func (g *Game) Render(state jsonvalue.Value) string {
	b := board(state)
	glyph := func(v int) string {
		switch v {
		case 1:
			return "X"
		case 2:
			return "O"
		default:
			return "."
		}
	}
	var sb strings.Builder
	for row := 0; row < 3; row++ {
		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			cells[col] = glyph(cell(b, row*3+col))
		}
		sb.WriteString(strings.Join(cells, " "))
		if row < 2 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func asInt(v jsonvalue.Value) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
