package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/gamesmanone/core/internal/types"
)

// ErrBadPosition is InvalidArgument-kind (spec.md §7): the `query`
// sub-command's <position> argument did not parse as "(tier=N, position=N)".
var ErrBadPosition = errors.New("gamesman: malformed position")

// parseTierPosition parses the "(tier=N, position=N)" form types.TierPosition.String
// produces, the CLI's own round-trippable encoding of spec.md §6's
// opaque <position> query argument.
func parseTierPosition(s string) (types.TierPosition, error) {
	s = strings.TrimPrefix(s, "(tier=")
	s = strings.TrimSuffix(s, ")")
	parts := strings.SplitN(s, ", position=", 2)
	if len(parts) != 2 {
		return types.TierPosition{}, errors.Wrapf(ErrBadPosition, "%q", s)
	}
	tier, err1 := strconv.ParseInt(parts[0], 10, 64)
	pos, err2 := strconv.ParseInt(parts[1], 10, 64)
	if err1 != nil || err2 != nil {
		return types.TierPosition{}, errors.Wrapf(ErrBadPosition, "%q", s)
	}
	return types.TierPosition{Tier: types.Tier(tier), Position: types.Position(pos)}, nil
}

// isArgError reports whether err is one of this command's own
// CLI-argument-level sentinels, as opposed to an error bubbled up from
// the core packages (which errkind.Of classifies instead).
func isArgError(err error) bool {
	return errors.Is(err, ErrUnknownGame) ||
		errors.Is(err, ErrUnknownVariant) ||
		errors.Is(err, ErrBadPosition)
}
