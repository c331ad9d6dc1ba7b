// Package agent defines the move-selection capability and the small set of
// in-process agents (random, first-legal, human) the arena ships with.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/arenahq/ai-arena/internal/game"
	"github.com/arenahq/ai-arena/internal/jsonvalue"
)

// Agent selects a move given a game state and the set of legal moves for
// that state. Implementations that hold external resources (subprocesses,
// open files) should also implement io.Closer; callers duck-type-check for
// it rather than requiring it on the interface, so trivial agents need not
// implement a no-op Close.
type Agent interface {
	// Name identifies the agent in match logs.
	Name() string

	// SelectMove returns one of legalMoves. player is the seat this agent
	// is playing this match. ctx carries the per-turn deadline;
	// implementations that cannot be interrupted mid-call (the in-process
	// agents here) may ignore it beyond an initial check.
	SelectMove(ctx context.Context, state jsonvalue.Value, player game.PlayerId, legalMoves []jsonvalue.Value) (jsonvalue.Value, error)
}

// Close closes a, if it implements io.Closer. Mirrors the duck-typed close
// check the tournament scheduler performs on agents it owns.
func Close(a Agent) error {
	if c, ok := a.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// RandomAgent picks uniformly among the legal moves.
type RandomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a RandomAgent seeded from rng. Pass nil to use the
// package-level default source.
func NewRandomAgent(rng *rand.Rand) *RandomAgent {
	return &RandomAgent{rng: rng}
}

func (a *RandomAgent) Name() string { return "random" }

func (a *RandomAgent) SelectMove(ctx context.Context, state jsonvalue.Value, player game.PlayerId, legalMoves []jsonvalue.Value) (jsonvalue.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(legalMoves) == 0 {
		return nil, fmt.Errorf("random agent: no legal moves")
	}
	if a.rng == nil {
		return legalMoves[rand.Intn(len(legalMoves))], nil
	}
	return legalMoves[a.rng.Intn(len(legalMoves))], nil
}

// FirstLegalAgent always plays the first move LegalMoves returned. Useful
// as a deterministic baseline opponent and for tests that need a
// predictable trajectory.
type FirstLegalAgent struct{}

func NewFirstLegalAgent() *FirstLegalAgent { return &FirstLegalAgent{} }

func (a *FirstLegalAgent) Name() string { return "first-legal" }

func (a *FirstLegalAgent) SelectMove(ctx context.Context, state jsonvalue.Value, player game.PlayerId, legalMoves []jsonvalue.Value) (jsonvalue.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(legalMoves) == 0 {
		return nil, fmt.Errorf("first-legal agent: no legal moves")
	}
	return legalMoves[0], nil
}

// HumanAgent prompts a human for a move index on a reader/writer pair,
// typically stdin/stdout.
type HumanAgent struct {
	in  *bufio.Reader
	out io.Writer
	// render, if set, is used to describe the state before prompting.
	render func(jsonvalue.Value) string
}

// NewHumanAgent returns a HumanAgent reading from in and writing prompts to
// out. render may be nil, in which case only the move list is printed.
func NewHumanAgent(in io.Reader, out io.Writer, render func(jsonvalue.Value) string) *HumanAgent {
	return &HumanAgent{in: bufio.NewReader(in), out: out, render: render}
}

func (a *HumanAgent) Name() string { return "human" }

func (a *HumanAgent) SelectMove(ctx context.Context, state jsonvalue.Value, player game.PlayerId, legalMoves []jsonvalue.Value) (jsonvalue.Value, error) {
	if a.render != nil {
		fmt.Fprintln(a.out, a.render(state))
	}
	for i, m := range legalMoves {
		fmt.Fprintf(a.out, "  [%d] %v\n", i, m)
	}
	for {
		fmt.Fprint(a.out, "your move (index): ")
		line, err := a.in.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("human agent: reading move: %w", err)
		}
		idx, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || idx < 0 || idx >= len(legalMoves) {
			fmt.Fprintln(a.out, "invalid selection, try again")
			continue
		}
		return legalMoves[idx], nil
	}
}
