package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/arenahq/ai-arena/internal/agent"
	"github.com/arenahq/ai-arena/internal/game"
	"github.com/arenahq/ai-arena/internal/games/skysummit"
	"github.com/arenahq/ai-arena/internal/games/tictactoe"
	"github.com/arenahq/ai-arena/internal/jsonvalue"
	"github.com/arenahq/ai-arena/internal/loader"
)

// newBuiltinRegistry returns a Registry populated with every built-in game
// and the in-process agent kinds. "subprocess:<cmd>" specs are resolved
// directly by loader.Registry.LoadAgent without needing a prior
// registration here.
func newBuiltinRegistry() *loader.Registry {
	reg := loader.NewRegistry()
	reg.RegisterGame("tictactoe", func() (game.Game, error) { return tictactoe.New(), nil })
	reg.RegisterGame("skysummit", func() (game.Game, error) { return skysummit.New(), nil })

	reg.RegisterAgent("random", func(string) (agent.Agent, error) {
		return agent.NewRandomAgent(rand.New(rand.NewSource(time.Now().UnixNano()))), nil
	})
	reg.RegisterAgent("first-legal", func(string) (agent.Agent, error) {
		return agent.NewFirstLegalAgent(), nil
	})
	reg.RegisterAgent("human", func(gameName string) (agent.Agent, error) {
		var render func(jsonvalue.Value) string
		if g, err := reg.LoadGame(gameName); err == nil {
			render = g.Render
		}
		return agent.NewHumanAgent(os.Stdin, os.Stdout, render), nil
	})
	return reg
}

func builtinGameNames() []string {
	return []string{"tictactoe", "skysummit"}
}
