package game

import (
	"fmt"
	"sync"
)

// Registry manages game registration and guess routing.
// Games are consulted in registration order, so the first registered game
// wins when two live games both accept a token.
type Registry struct {
	games map[string]Game
	order []string
	mu    sync.RWMutex
}

// NewRegistry creates a new game registry.
func NewRegistry() *Registry {
	return &Registry{
		games: make(map[string]Game),
	}
}

// Register adds a game to the registry.
// If a game with the same command already exists, it is replaced in place.
func (r *Registry) Register(g Game) error {
	if g == nil {
		return fmt.Errorf("cannot register nil game")
	}
	if g.Command() == "" {
		return fmt.Errorf("game command cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[g.Command()]; !ok {
		r.order = append(r.order, g.Command())
	}
	r.games[g.Command()] = g
	return nil
}

// Route returns the first live game that accepts the guess.
// Returns ErrNoActiveGame when nothing claims it.
func (r *Registry) Route(guess Guess) (Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cmd := range r.order {
		g := r.games[cmd]
		if g.Active() && g.Accepts(guess) {
			return g, nil
		}
	}
	return nil, ErrNoActiveGame
}

// Commands returns all registered game commands in registration order.
func (r *Registry) Commands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	commands := make([]string, len(r.order))
	copy(commands, r.order)
	return commands
}

// Count returns the number of registered games.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}
