package tournament

import (
	"context"
	"math/rand"
	"testing"

	"github.com/arenahq/ai-arena/internal/agent"
	"github.com/arenahq/ai-arena/internal/game"
	"github.com/arenahq/ai-arena/internal/games/tictactoe"
	"github.com/arenahq/ai-arena/internal/loader"
)

func testRegistry() *loader.Registry {
	reg := loader.NewRegistry()
	reg.RegisterGame("tictactoe", func() (game.Game, error) { return tictactoe.New(), nil })
	reg.RegisterAgent("first-legal", func(string) (agent.Agent, error) { return agent.NewFirstLegalAgent(), nil })
	reg.RegisterAgent("random", func(string) (agent.Agent, error) {
		return agent.NewRandomAgent(rand.New(rand.NewSource(1))), nil
	})
	return reg
}

func TestRunProducesOneSummaryPerScheduledMatch(t *testing.T) {
	reg := testRegistry()
	competitors := []Competitor{
		{ID: "a", HomeGame: "tictactoe", Agent: "first-legal"},
		{ID: "b", HomeGame: "tictactoe", Agent: "random"},
	}
	opts := Options{NeutralGame: "tictactoe", Rounds: 2, SwapStarts: true}

	result, err := Run(context.Background(), reg, competitors, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// 1 pairing * 3 scenarios * 2 rounds * 2 (swap_starts) = 12 matches.
	if len(result.Matches) != 12 {
		t.Fatalf("expected 12 matches, got %d", len(result.Matches))
	}
	if result.Scoreboard["a"] == nil || result.Scoreboard["b"] == nil {
		t.Fatalf("expected scoreboard entries for both competitors, got %+v", result.Scoreboard)
	}

	totalDecided := 0
	for _, m := range result.Matches {
		if m.Winner != "" {
			totalDecided++
		}
	}
	totalPoints := result.Scoreboard["a"].Points + result.Scoreboard["b"].Points
	if totalPoints != totalDecided*3+ (len(result.Matches)-totalDecided)*2 {
		t.Fatalf("scoreboard points %d inconsistent with %d decided matches out of %d", totalPoints, totalDecided, len(result.Matches))
	}
}

func TestRunWithoutSwapStartsHalvesMatchCount(t *testing.T) {
	reg := testRegistry()
	competitors := []Competitor{
		{ID: "a", HomeGame: "tictactoe", Agent: "first-legal"},
		{ID: "b", HomeGame: "tictactoe", Agent: "first-legal"},
	}
	opts := Options{NeutralGame: "tictactoe", Rounds: 1, SwapStarts: false}

	result, err := Run(context.Background(), reg, competitors, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(result.Matches))
	}
}

func TestBoundedConcurrencyMatchesSequentialMatchCount(t *testing.T) {
	reg := testRegistry()
	competitors := []Competitor{
		{ID: "a", HomeGame: "tictactoe", Agent: "first-legal"},
		{ID: "b", HomeGame: "tictactoe", Agent: "random"},
		{ID: "c", HomeGame: "tictactoe", Agent: "random"},
	}
	opts := Options{NeutralGame: "tictactoe", Rounds: 1, SwapStarts: true, MaxConcurrency: 4}

	result, err := Run(context.Background(), reg, competitors, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// 3 pairings * 3 scenarios * 1 round * 2 (swap) = 18 matches.
	if len(result.Matches) != 18 {
		t.Fatalf("expected 18 matches, got %d", len(result.Matches))
	}
	for i, m := range result.Matches {
		if m.Game == "" {
			t.Fatalf("match %d missing game name", i)
		}
	}
}

func TestUnknownAgentSpecForfeitsRatherThanAborting(t *testing.T) {
	reg := testRegistry()
	competitors := []Competitor{
		{ID: "a", HomeGame: "tictactoe", Agent: "first-legal"},
		{ID: "b", HomeGame: "tictactoe", Agent: "does-not-exist"},
	}
	opts := Options{NeutralGame: "tictactoe", Rounds: 1, SwapStarts: false}

	result, err := Run(context.Background(), reg, competitors, opts)
	if err != nil {
		t.Fatalf("Run should isolate per-match failures, got error: %v", err)
	}
	if len(result.Matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(result.Matches))
	}
	for _, m := range result.Matches {
		if m.Winner != "a" || m.Reason != "agent_error" {
			t.Fatalf("expected a to win by agent_error against an unloadable opponent, got %+v", m)
		}
	}
}
