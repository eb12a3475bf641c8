package main

import "github.com/pkg/errors"

// ErrUnknownGame and ErrUnknownVariant are InvalidArgument-kind
// sentinels (spec.md §7) for a CLI argument naming a game or variant
// this build has no registry entry for.
var (
	ErrUnknownGame    = errors.New("gamesman: unknown game")
	ErrUnknownVariant = errors.New("gamesman: unknown variant")
)

func errUnknownGame(name string) error {
	return errors.Wrapf(ErrUnknownGame, "%q", name)
}

func errUnknownVariant(game, variant string) error {
	return errors.Wrapf(ErrUnknownVariant, "game %q, variant %q", game, variant)
}
