// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/engine"
)

// Game describes a configured arcade game built on the engine.
// Games hold no run state; every run gets a fresh Mode from NewMode.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "racer", "snake").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Controls returns a one-line summary of the keys the game reacts to.
	Controls() string

	// NewMode loads the game's configuration and builds its physics mode.
	// The RuntimeConfig provides the config path and difficulty preset.
	NewMode(cfg core.RuntimeConfig) (engine.Mode, error)
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID       string
	Title    string
	Controls string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	g := f()
	infos[id] = GameInfo{ID: id, Title: g.Title(), Controls: g.Controls()}
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// NewController creates the game by ID, builds its mode from cfg and wraps
// it in an engine controller seeded from cfg.Seed.
func NewController(id string, cfg core.RuntimeConfig, opts ...engine.Option) (*engine.Controller, error) {
	g, err := Create(id)
	if err != nil {
		return nil, err
	}
	mode, err := g.NewMode(cfg)
	if err != nil {
		return nil, fmt.Errorf("registry: %s: %w", id, err)
	}
	opts = append([]engine.Option{engine.WithSeed(cfg.Seed)}, opts...)
	return engine.New(mode, opts...), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
