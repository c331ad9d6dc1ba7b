package tictactoe

import (
	"testing"

	"github.com/arenahq/ai-arena/internal/game"
)

func TestInitialStateHasNineLegalMoves(t *testing.T) {
	g := New()
	s := g.InitialState()
	if len(g.LegalMoves(s, 0)) != 9 {
		t.Fatalf("expected 9 legal moves, got %d", len(g.LegalMoves(s, 0)))
	}
}

func TestWinDetection(t *testing.T) {
	g := New()
	s := g.InitialState()
	var err error
	// X: 0,1,2 ; O: 3,4
	players := []game.PlayerId{0, 1, 0, 1, 0}
	for i, mv := range []int{0, 3, 1, 4, 2} {
		s, err = g.ApplyMove(s, players[i], mv)
		if err != nil {
			t.Fatalf("apply %d: %v", mv, err)
		}
	}
	term := g.Terminal(s)
	if !term.IsTerminal || term.Reason != "win" || term.Winner == nil || *term.Winner != 0 {
		t.Fatalf("expected player 0 win, got %+v", term)
	}
}

func TestDrawDetection(t *testing.T) {
	g := New()
	s := g.InitialState()
	// A known drawn sequence.
	seq := []int{0, 1, 2, 4, 3, 5, 7, 6, 8}
	var err error
	for i, mv := range seq {
		term := g.Terminal(s)
		if term.IsTerminal {
			break
		}
		s, err = g.ApplyMove(s, game.PlayerId(i%2), mv)
		if err != nil {
			t.Fatalf("apply %d: %v", mv, err)
		}
	}
	term := g.Terminal(s)
	if !term.IsTerminal {
		t.Fatalf("expected terminal state")
	}
}

func TestApplyMoveRejectsOccupiedCell(t *testing.T) {
	g := New()
	s := g.InitialState()
	s, err := g.ApplyMove(s, 0, 0)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := g.ApplyMove(s, 1, 0); err == nil {
		t.Fatalf("expected error reapplying to occupied cell")
	}
}

func TestApplyMoveDoesNotMutateOriginal(t *testing.T) {
	g := New()
	s := g.InitialState()
	before := board(s)[0]
	if _, err := g.ApplyMove(s, 0, 0); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if board(s)[0] != before {
		t.Fatalf("ApplyMove mutated the original state")
	}
}
