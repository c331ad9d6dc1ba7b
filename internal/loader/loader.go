// Package loader resolves a game or agent spec string to a constructed
// instance. Go has no cross-platform runtime file-module loading
// equivalent to Python's importlib, so this substitutes a built-in registry
// of factories keyed by name, per the interface the protocol requires:
// spec -> factory.
package loader

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	shlex "github.com/anmitsu/go-shlex"

	"github.com/arenahq/ai-arena/internal/agent"
	"github.com/arenahq/ai-arena/internal/game"
	"github.com/arenahq/ai-arena/internal/subprocessagent"
)

// subprocessPrefix marks an agent spec as a subprocess command line rather
// than a registry lookup, e.g. "subprocess:python3 -u bot.py". This is part
// of the documented agent-spec grammar, not the dynamic-file-loading escape
// hatch, so it is handled here unconditionally rather than via the
// registered factory table.
const subprocessPrefix = "subprocess:"

// GameFactory constructs a fresh Game instance. Called once per match; a
// Game is never shared across concurrent matches.
type GameFactory func() (game.Game, error)

// AgentFactory constructs a fresh Agent instance for one match seat.
// gameName is the game being played in that match, which a subprocess-backed
// factory stamps into its wire protocol's "game" field; in-process factories
// may ignore it.
type AgentFactory func(gameName string) (agent.Agent, error)

// Registry holds the built-in game and agent factories. It is safe for
// concurrent use.
type Registry struct {
	mu     sync.RWMutex
	games  map[string]GameFactory
	agents map[string]AgentFactory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		games:  make(map[string]GameFactory),
		agents: make(map[string]AgentFactory),
	}
}

// RegisterGame registers a game factory under name. Re-registering the same
// name overwrites the previous entry.
func (r *Registry) RegisterGame(name string, factory GameFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[name] = factory
}

// RegisterAgent registers an agent factory under name.
func (r *Registry) RegisterAgent(name string, factory AgentFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents[name] = factory
}

// GameNames returns every registered game name, sorted.
func (r *Registry) GameNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.games))
	for n := range r.games {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadGame resolves name to a fresh Game instance via the registry. name
// that does not match a registered entry but looks like a `<file>:<symbol>`
// dynamic-load spec returns a clear unsupported error rather than silently
// failing, since this build has no runtime file-module loading.
func (r *Registry) LoadGame(name string) (game.Game, error) {
	r.mu.RLock()
	factory, ok := r.games[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("loader: no registry entry for game %q; dynamic file loading is not supported on this build", name)
	}
	return factory()
}

// LoadAgent resolves name to a fresh Agent instance, for a match playing
// gameName. A "subprocess:<cmd>" spec spawns that command directly; anything
// else is looked up in the registered factory table.
func (r *Registry) LoadAgent(name, gameName string) (agent.Agent, error) {
	if strings.HasPrefix(name, subprocessPrefix) {
		return loadSubprocessAgent(name, gameName)
	}

	r.mu.RLock()
	factory, ok := r.agents[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("loader: no registry entry for agent %q; dynamic file loading is not supported on this build", name)
	}
	return factory(gameName)
}

func loadSubprocessAgent(spec, gameName string) (agent.Agent, error) {
	cmdline := strings.TrimSpace(strings.TrimPrefix(spec, subprocessPrefix))
	if cmdline == "" {
		return nil, fmt.Errorf("subprocess agent requires a command, e.g. subprocess:python3 -u bot.py")
	}
	args, err := shlex.Split(cmdline, true)
	if err != nil {
		return nil, fmt.Errorf("loader: parsing subprocess command %q: %w", cmdline, err)
	}
	return subprocessagent.New(spec, gameName, args, subprocessagent.DefaultTimeout)
}
