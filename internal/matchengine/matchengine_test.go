package matchengine

import (
	"context"
	"errors"
	"testing"

	"github.com/arenahq/ai-arena/internal/agent"
	"github.com/arenahq/ai-arena/internal/game"
	"github.com/arenahq/ai-arena/internal/games/tictactoe"
	"github.com/arenahq/ai-arena/internal/jsonvalue"
)

type firstLegal struct{}

func (firstLegal) Name() string { return "first-legal" }
func (firstLegal) SelectMove(ctx context.Context, state jsonvalue.Value, player game.PlayerId, legal []jsonvalue.Value) (jsonvalue.Value, error) {
	return legal[0], nil
}

type illegalOnce struct{ fired bool }

func (a *illegalOnce) Name() string { return "illegal" }
func (a *illegalOnce) SelectMove(ctx context.Context, state jsonvalue.Value, player game.PlayerId, legal []jsonvalue.Value) (jsonvalue.Value, error) {
	return float64(999), nil
}

type erroring struct{}

func (erroring) Name() string { return "erroring" }
func (erroring) SelectMove(ctx context.Context, state jsonvalue.Value, player game.PlayerId, legal []jsonvalue.Value) (jsonvalue.Value, error) {
	return nil, errors.New("boom")
}

func TestTicTacToeFirstLegalVsFirstLegalTerminates(t *testing.T) {
	g := tictactoe.New()
	agents := [2]agent.Agent{firstLegal{}, firstLegal{}}
	result, err := Play(context.Background(), g, agents, Options{})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if result.Reason != "win" && result.Reason != "draw" {
		t.Fatalf("expected win or draw, got %q", result.Reason)
	}
	if result.Turns < 1 || result.Turns > 9 {
		t.Fatalf("expected turns in [1,9], got %d", result.Turns)
	}
	if len(result.MoveHistory) != result.Turns {
		t.Fatalf("expected move history length %d, got %d", result.Turns, len(result.MoveHistory))
	}
}

func TestIllegalMoveForfeit(t *testing.T) {
	g := tictactoe.New()
	agents := [2]agent.Agent{&illegalOnce{}, firstLegal{}}
	result, err := Play(context.Background(), g, agents, Options{})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if result.Reason != "illegal_move" {
		t.Fatalf("expected illegal_move, got %q", result.Reason)
	}
	if result.Winner == nil || *result.Winner != game.PlayerId(1) {
		t.Fatalf("expected winner=1, got %v", result.Winner)
	}
	if result.Turns != 1 {
		t.Fatalf("expected turns=1, got %d", result.Turns)
	}
	if len(result.MoveHistory) != 1 {
		t.Fatalf("expected one move record, got %d", len(result.MoveHistory))
	}
	rec := result.MoveHistory[0]
	if rec.Player != 0 || rec.Note == nil || *rec.Note != "illegal_move" {
		t.Fatalf("unexpected move record: %+v", rec)
	}
	if !jsonvalue.Equal(rec.Move, float64(999)) {
		t.Fatalf("expected recorded move 999, got %v", rec.Move)
	}
}

func TestAgentErrorForfeit(t *testing.T) {
	g := tictactoe.New()
	agents := [2]agent.Agent{erroring{}, firstLegal{}}
	result, err := Play(context.Background(), g, agents, Options{})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if result.Reason != "agent_error" {
		t.Fatalf("expected agent_error, got %q", result.Reason)
	}
	if result.Winner == nil || *result.Winner != game.PlayerId(1) {
		t.Fatalf("expected winner=1, got %v", result.Winner)
	}
	if result.Turns != 1 {
		t.Fatalf("expected turns=1, got %d", result.Turns)
	}
}
