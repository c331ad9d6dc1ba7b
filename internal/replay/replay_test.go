package replay

import (
	"testing"

	"github.com/arenahq/ai-arena/internal/game"
	"github.com/arenahq/ai-arena/internal/games/tictactoe"
	"github.com/arenahq/ai-arena/internal/matchengine"
)

func TestReplayFidelityOnCleanWin(t *testing.T) {
	g := tictactoe.New()
	// X plays 0,1,2; O plays 3,4. X wins on the top row.
	history := []matchengine.MoveRecord{
		{Turn: 1, Player: 0, Move: 0},
		{Turn: 2, Player: 1, Move: 3},
		{Turn: 3, Player: 0, Move: 1},
		{Turn: 4, Player: 1, Move: 4},
		{Turn: 5, Player: 0, Move: 2},
	}
	rep := FromMoveHistory(g, history)
	if len(rep.States) != 6 {
		t.Fatalf("expected 6 trajectory states, got %d", len(rep.States))
	}
	if !rep.Terminal.IsTerminal || rep.Terminal.Reason != "win" || rep.Terminal.Winner == nil || *rep.Terminal.Winner != 0 {
		t.Fatalf("expected player 0 win, got %+v", rep.Terminal)
	}
}

func TestReplayFreezesOnForfeit(t *testing.T) {
	g := tictactoe.New()
	history := []matchengine.MoveRecord{
		{Turn: 1, Player: 0, Move: 0},
		{Turn: 2, Player: 1, Move: 999, Note: noteStr("illegal_move")},
	}
	rep := FromMoveHistory(g, history)
	if len(rep.States) != 3 {
		t.Fatalf("expected 3 states, got %d", len(rep.States))
	}
	if !jsonEqualStates(rep.States[1], rep.States[2]) {
		t.Fatalf("expected states[1] == states[2] on forfeit, got %v vs %v", rep.States[1], rep.States[2])
	}
}

func TestReplayFallsBackToEngineVerdictOnForfeit(t *testing.T) {
	g := tictactoe.New()
	winner := game.PlayerId(0)
	result := matchengine.MatchResult{
		Game:   "tictactoe",
		Winner: &winner,
		Reason: "illegal_move",
		Turns:  2,
		MoveHistory: []matchengine.MoveRecord{
			{Turn: 1, Player: 0, Move: 0},
			{Turn: 2, Player: 1, Move: 999, Note: noteStr("illegal_move")},
		},
	}
	rep := FromMatchResult(g, result)
	if !rep.Terminal.IsTerminal || rep.Terminal.Reason != "illegal_move" {
		t.Fatalf("expected engine-level illegal_move verdict, got %+v", rep.Terminal)
	}
	if rep.Terminal.Winner == nil || *rep.Terminal.Winner != 0 {
		t.Fatalf("expected winner=0, got %v", rep.Terminal.Winner)
	}
}

func noteStr(s string) *string { return &s }

func jsonEqualStates(a, b any) bool {
	am := a.(map[string]any)
	bm := b.(map[string]any)
	ab := am["board"].([]any)
	bb := bm["board"].([]any)
	if len(ab) != len(bb) {
		return false
	}
	for i := range ab {
		if ab[i] != bb[i] {
			return false
		}
	}
	return true
}
