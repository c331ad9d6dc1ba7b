// Package tournament implements the round-robin Tournament Scheduler: every
// unordered pair of competitors plays three scenarios (home for each side,
// plus a neutral game), optionally with seats swapped and repeated across
// rounds.
package tournament

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/arenahq/ai-arena/internal/agent"
	"github.com/arenahq/ai-arena/internal/loader"
	"github.com/arenahq/ai-arena/internal/matchengine"
)

// Competitor is one tournament entrant.
type Competitor struct {
	ID       string
	HomeGame string
	Agent    string
}

// MatchSummary is the recorded outcome of a single scheduled match.
type MatchSummary struct {
	Context string `json:"context"`
	Game    string `json:"game"`
	P0      string `json:"p0"`
	P1      string `json:"p1"`
	Winner  string `json:"winner,omitempty"`
	Reason  string `json:"reason"`
	Turns   int    `json:"turns"`
}

// ScoreLine is one competitor's running tally.
type ScoreLine struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
	Points int `json:"points"`
}

// Result is the full outcome of a tournament run.
type Result struct {
	StartedTsMS int64                 `json:"started_ts_ms"`
	DurationMS  int64                 `json:"duration_ms"`
	Matches     []MatchSummary        `json:"matches"`
	Scoreboard  map[string]*ScoreLine `json:"scoreboard"`
}

// Options configures a tournament run.
type Options struct {
	NeutralGame string
	Rounds      int
	SwapStarts  bool
	PrimePause  bool
	LogDir      string
	// MaxConcurrency bounds how many matches run simultaneously. 0 or 1
	// means sequential, matching the default scheduler behaviour; values
	// above 1 opt into the bounded-concurrency mode.
	MaxConcurrency int
}

type scheduledMatch struct {
	context    string
	gameName   string
	round      int
	p0ID, p1ID string
	p0, p1     Competitor
	logPath    string
}

func pairings(cs []Competitor) [][2]Competitor {
	var out [][2]Competitor
	for i := 0; i < len(cs); i++ {
		for j := i + 1; j < len(cs); j++ {
			out = append(out, [2]Competitor{cs[i], cs[j]})
		}
	}
	return out
}

func scoreboardInit(cs []Competitor) map[string]*ScoreLine {
	sb := make(map[string]*ScoreLine, len(cs))
	for _, c := range cs {
		sb[c.ID] = &ScoreLine{}
	}
	return sb
}

func applyResult(sb map[string]*ScoreLine, p0, p1, winner string) {
	if winner == "" {
		sb[p0].Draws++
		sb[p1].Draws++
		sb[p0].Points++
		sb[p1].Points++
		return
	}
	loser := p1
	if winner == p1 {
		loser = p0
	}
	sb[winner].Wins++
	sb[loser].Losses++
	sb[winner].Points += 3
}

// schedule enumerates every match the tournament must play, in deterministic
// order, before any of them run. Building the full plan up front is what
// lets the bounded-concurrency path fan work out without coordinating on
// pairing/scenario/round state mid-run.
func schedule(competitors []Competitor, opts Options) []scheduledMatch {
	var plan []scheduledMatch
	for _, pair := range pairings(competitors) {
		a, b := pair[0], pair[1]
		neutralStarter := a.ID
		if b.ID < a.ID {
			neutralStarter = b.ID
		}
		scenarios := []struct {
			context     string
			gameName    string
			p0Default   string
		}{
			{"home:" + a.ID, a.HomeGame, a.ID},
			{"home:" + b.ID, b.HomeGame, b.ID},
			{"neutral", opts.NeutralGame, neutralStarter},
		}

		for _, sc := range scenarios {
			for r := 0; r < opts.Rounds; r++ {
				p1Default := a.ID
				if sc.p0Default == a.ID {
					p1Default = b.ID
				}
				seatPairs := [][2]string{{sc.p0Default, p1Default}}
				if opts.SwapStarts {
					seatPairs = append(seatPairs, [2]string{p1Default, sc.p0Default})
				}

				for _, seats := range seatPairs {
					p0ID, p1ID := seats[0], seats[1]
					p0, p1 := a, b
					if p0ID != a.ID {
						p0, p1 = b, a
					}

					var logPath string
					if opts.LogDir != "" {
						safeCtx := safeContext(sc.context)
						logPath = filepath.Join(opts.LogDir, fmt.Sprintf("%s_vs_%s", a.ID, b.ID),
							fmt.Sprintf("%s_r%d_%s_starts.json", safeCtx, r, p0ID))
					}

					plan = append(plan, scheduledMatch{
						context:  sc.context,
						gameName: sc.gameName,
						round:    r,
						p0ID:     p0ID,
						p1ID:     p1ID,
						p0:       p0,
						p1:       p1,
						logPath:  logPath,
					})
				}
			}
		}
	}
	return plan
}

func safeContext(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == ':' {
			out = append(out, '_')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

func closeAgent(a agent.Agent) {
	_ = agent.Close(a)
}

func runOne(ctx context.Context, reg *loader.Registry, m scheduledMatch, opts Options) (MatchSummary, error) {
	g, err := reg.LoadGame(m.gameName)
	if err != nil {
		return forfeitedSummary(m, ""), fmt.Errorf("tournament: loading game %q: %w", m.gameName, err)
	}

	a0, err := reg.LoadAgent(m.p0.Agent, m.gameName)
	if err != nil {
		winnerID := m.p1ID
		if a1, err1 := reg.LoadAgent(m.p1.Agent, m.gameName); err1 != nil {
			winnerID = ""
		} else {
			closeAgent(a1)
		}
		return forfeitedSummary(m, winnerID), fmt.Errorf("tournament: loading agent for %q: %w", m.p0ID, err)
	}
	defer closeAgent(a0)

	a1, err := reg.LoadAgent(m.p1.Agent, m.gameName)
	if err != nil {
		return forfeitedSummary(m, m.p0ID), fmt.Errorf("tournament: loading agent for %q: %w", m.p1ID, err)
	}
	defer closeAgent(a1)

	res, err := matchengine.Play(ctx, g, [2]agent.Agent{a0, a1}, matchengine.Options{
		PrimePause: opts.PrimePause,
		LogPath:    m.logPath,
	})
	if err != nil {
		summary := MatchSummary{Context: m.context, Game: m.gameName, P0: m.p0ID, P1: m.p1ID, Reason: "engine_error"}
		return summary, fmt.Errorf("tournament: match %s vs %s (%s): %w", m.p0ID, m.p1ID, m.context, err)
	}

	var winnerID string
	if res.Winner != nil {
		if *res.Winner == 0 {
			winnerID = m.p0ID
		} else {
			winnerID = m.p1ID
		}
	}

	return MatchSummary{
		Context: m.context,
		Game:    res.Game,
		P0:      m.p0ID,
		P1:      m.p1ID,
		Winner:  winnerID,
		Reason:  res.Reason,
		Turns:   res.Turns,
	}, nil
}

// Run executes the full round-robin plan and returns the aggregate result.
// A single match failing to even start (game/agent load error, subprocess
// spawn failure) is recorded as a forfeit-shaped summary and does not abort
// the remaining schedule; matchengine.Play itself already turns in-match
// agent misbehaviour into a forfeit rather than an error. A scheduler-level
// I/O error — opts.LogDir cannot be created — aborts the run instead, since
// it would otherwise recur identically on every scheduled match.
func Run(ctx context.Context, reg *loader.Registry, competitors []Competitor, opts Options) (Result, error) {
	if opts.Rounds <= 0 {
		opts.Rounds = 1
	}
	if opts.LogDir != "" {
		if err := os.MkdirAll(opts.LogDir, 0o755); err != nil {
			return Result{}, fmt.Errorf("tournament: creating log dir %s: %w", opts.LogDir, err)
		}
	}
	started := time.Now()
	plan := schedule(competitors, opts)

	sb := scoreboardInit(competitors)
	summaries := make([]MatchSummary, len(plan))

	concurrency := opts.MaxConcurrency
	if concurrency <= 1 {
		for i, m := range plan {
			summary, _ := runOne(ctx, reg, m, opts)
			summaries[i] = summary
		}
	} else {
		if concurrency > len(plan) {
			concurrency = len(plan)
		}
		if concurrency < 1 {
			concurrency = 1
		}
		if err := runConcurrent(ctx, reg, plan, opts, summaries, concurrency); err != nil {
			return Result{}, err
		}
	}

	for _, s := range summaries {
		applyResult(sb, s.P0, s.P1, s.Winner)
	}

	return Result{
		StartedTsMS: started.UnixMilli(),
		DurationMS:  time.Since(started).Milliseconds(),
		Matches:     summaries,
		Scoreboard:  sb,
	}, nil
}

// runConcurrent is a fixed-size worker pool: a semaphore caps how many
// matches run at once while the coordinator launches work in plan order.
// Matches start in plan order; they may finish in any order, and each
// summary is stored at its plan index so the recorded order stays stable.
func runConcurrent(ctx context.Context, reg *loader.Registry, plan []scheduledMatch, opts Options, summaries []MatchSummary, concurrency int) error {
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, m := range plan {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		}
		wg.Add(1)
		go func(idx int, match scheduledMatch) {
			defer wg.Done()
			defer func() { <-sem }()
			summary, _ := runOne(ctx, reg, match, opts)
			summaries[idx] = summary
		}(i, m)
	}
	wg.Wait()
	return nil
}

// forfeitedSummary builds the synthetic result for a match that never
// started because its game or an agent failed to load; winnerID is the side
// whose agent did load successfully, or empty (scored as a draw) when
// neither side's agent loaded or the game itself failed to load.
func forfeitedSummary(m scheduledMatch, winnerID string) MatchSummary {
	return MatchSummary{
		Context: m.context,
		Game:    m.gameName,
		P0:      m.p0ID,
		P1:      m.p1ID,
		Winner:  winnerID,
		Reason:  "agent_error",
		Turns:   0,
	}
}
