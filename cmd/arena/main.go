// Package main is the entry point for the ai-arena command line tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/arenahq/ai-arena/internal/agent"
	"github.com/arenahq/ai-arena/internal/config"
	"github.com/arenahq/ai-arena/internal/game"
	"github.com/arenahq/ai-arena/internal/matchengine"
	"github.com/arenahq/ai-arena/internal/tournament"
	"github.com/arenahq/ai-arena/internal/version"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	var err error
	switch cmd {
	case "list-games":
		err = cmdListGames(args)
	case "play":
		err = cmdPlay(args)
	case "tournament":
		err = cmdTournament(args)
	case "gui":
		err = cmdGUI(args)
	case "-version", "--version", "version":
		printVersion()
		return
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: arena <list-games|play|tournament|gui> [flags]")
}

func printVersion() {
	fmt.Printf("ai-arena %s\n", version.Version)
	fmt.Printf("build date: %s\n", version.BuildDate)
	fmt.Printf("git commit: %s\n", version.GitCommit)
}

func cmdListGames(args []string) error {
	fs := flag.NewFlagSet("list-games", flag.ExitOnError)
	fs.Parse(args)

	names := builtinGameNames()
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

func cmdPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	p0Spec := fs.String("p0", "human", "agent0: human|random|first-legal|subprocess:<cmd>")
	p1Spec := fs.String("p1", "random", "agent1: human|random|first-legal|subprocess:<cmd>")
	primePause := fs.Bool("prime-pause", false, "pause after prime-numbered turns")
	logPath := fs.String("log", "", "write a JSON match log to this path")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("play requires a game name, e.g. arena play tictactoe")
	}
	gameSpec := fs.Arg(0)

	reg := newBuiltinRegistry()
	g, err := reg.LoadGame(gameSpec)
	if err != nil {
		return err
	}

	a0, err := reg.LoadAgent(*p0Spec, g.Name())
	if err != nil {
		return fmt.Errorf("resolving --p0: %w", err)
	}
	defer agent.Close(a0)

	a1, err := reg.LoadAgent(*p1Spec, g.Name())
	if err != nil {
		return fmt.Errorf("resolving --p1: %w", err)
	}
	defer agent.Close(a1)

	var primePrompt func(int)
	if *primePause {
		primePrompt = func(turn int) {
			fmt.Printf("-- turn %d (prime) --\npress enter to continue\n", turn)
			fmt.Scanln()
		}
	}

	result, err := matchengine.Play(context.Background(), g, [2]agent.Agent{a0, a1}, matchengine.Options{
		PrimePause:  *primePause,
		PrimePrompt: primePrompt,
		LogPath:     *logPath,
	})
	if err != nil {
		return err
	}

	fmt.Printf("game: %s\n", result.Game)
	fmt.Printf("winner: %s\n", winnerString(result.Winner))
	fmt.Printf("reason: %s\n", result.Reason)
	fmt.Printf("turns: %d\n", result.Turns)
	if *logPath != "" {
		fmt.Printf("log: %s\n", *logPath)
	}
	return nil
}

func cmdTournament(args []string) error {
	fs := flag.NewFlagSet("tournament", flag.ExitOnError)
	configPath := fs.String("config", "", "path to a tournament TOML config")
	outPath := fs.String("out", "", "write the JSON tournament result here (default: ~/.ai-arena/tournaments/<timestamp>.json)")
	fs.Parse(args)

	if *configPath == "" {
		return fmt.Errorf("tournament requires --config <path>")
	}

	spec, err := config.LoadTournamentSpec(*configPath)
	if err != nil {
		return err
	}

	reg := newBuiltinRegistry()
	competitors := make([]tournament.Competitor, len(spec.Competitors))
	for i, c := range spec.Competitors {
		competitors[i] = tournament.Competitor{ID: c.ID, HomeGame: c.HomeGame, Agent: c.Agent}
	}
	for _, c := range competitors {
		if _, err := reg.LoadGame(c.HomeGame); err != nil {
			return fmt.Errorf("competitor %q: %w", c.ID, err)
		}
	}

	result, err := tournament.Run(context.Background(), reg, competitors, tournament.Options{
		NeutralGame:    spec.NeutralGame,
		Rounds:         spec.Rounds,
		SwapStarts:     spec.SwapStarts,
		PrimePause:     spec.PrimePause,
		LogDir:         spec.LogDir,
		MaxConcurrency: spec.MaxConcurrency,
	})
	if err != nil {
		return err
	}

	resultPath := *outPath
	if resultPath == "" {
		resultPath, err = tournament.DefaultResultPath(result.StartedTsMS)
		if err != nil {
			return err
		}
	}
	if err := tournament.SaveTournamentResult(result, resultPath); err != nil {
		return err
	}

	fmt.Printf("matches: %d\n", len(result.Matches))
	ids := make([]string, 0, len(result.Scoreboard))
	for id := range result.Scoreboard {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		line := result.Scoreboard[id]
		fmt.Printf("%-16s wins=%d losses=%d draws=%d points=%d\n", id, line.Wins, line.Losses, line.Draws, line.Points)
	}
	fmt.Printf("result: %s\n", resultPath)
	return nil
}

func cmdGUI(args []string) error {
	fs := flag.NewFlagSet("gui", flag.ExitOnError)
	gameSpec := fs.String("game", "", "built-in game name for a live match")
	p0Spec := fs.String("p0", "human", "agent0 spec")
	p1Spec := fs.String("p1", "random", "agent1 spec")
	loadLog := fs.String("load-log", "", "open a JSON match log for replay instead of a live match")
	saveLog := fs.String("save-log", "", "write a JSON match log here when a live match ends")
	fs.Parse(args)

	return runGUI(guiOptions{
		gameSpec: *gameSpec,
		p0Spec:   *p0Spec,
		p1Spec:   *p1Spec,
		loadLog:  *loadLog,
		saveLog:  *saveLog,
	})
}

func winnerString(w *game.PlayerId) string {
	if w == nil {
		return "draw"
	}
	return fmt.Sprintf("%d", *w)
}
