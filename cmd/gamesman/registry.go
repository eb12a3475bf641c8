package main

import (
	"github.com/gamesmanone/core/internal/game"
	"github.com/gamesmanone/core/internal/games/tictactoe"
)

// registry is the fixed set of games this build knows how to solve,
// keyed by the name each subcommand's <game> argument names. The
// source discovers games through a dynamically loaded module path;
// this port has exactly one reference game in tree
// (internal/games/tictactoe), so a literal map stands in for that
// lookup rather than a plugin loader with nothing to load.
var registry = map[string]func() game.Game{
	"tictactoe": func() game.Game { return tictactoe.New() },
}

// lookupGame resolves name to a fresh Game instance. variant is
// accepted for symmetry with spec.md §6's "<game> [<variant>]" but,
// with only one variant-free reference game registered, anything other
// than "" or "default" is rejected.
func lookupGame(name, variant string) (game.Game, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, errUnknownGame(name)
	}
	if variant != "" && variant != "default" {
		return nil, errUnknownVariant(name, variant)
	}
	return factory(), nil
}
