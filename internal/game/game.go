// Package game defines the contract the solver consumes: the function
// tables of the reference implementation become one Go interface, per
// the design note "Function-pointer tables in the source -> polymorphism
// here". A concrete game (internal/games/tictactoe, for example)
// implements Game and hands it to the solver manager.
package game

import "github.com/gamesmanone/core/internal/types"

// TierType classifies how a tier's solve may be scheduled.
type TierType int

const (
	// TierTypeUnknown means the solver must assume Loopy.
	TierTypeUnknown TierType = iota
	// TierTypeImmediateTransition tiers resolve in a single pass with no
	// propagation (every position is primitive or transitions once).
	TierTypeImmediateTransition
	// TierTypeLoopy tiers may contain cycles and require full retrograde
	// propagation.
	TierTypeLoopy
	// TierTypeLoopFree tiers only ever reach strictly smaller tiers, so a
	// single topological pass suffices.
	TierTypeLoopFree
)

// MaxChildTiers and MaxMoves bound the small sets child_tiers and
// generate_moves may return (spec §4.3: "≤ 128"/"≤ 4096"), mirroring the
// source's fixed-size stack arrays.
const (
	MaxChildTiers = 128
	MaxMoves      = 4096
)

// Game is the contract a concrete game implements and the solver
// consumes. Every method must be safe to call concurrently from
// multiple solver workers once initialization has returned (the
// contexts it relies on, e.g. hash.Context, are themselves read-only
// during solve per spec §3's lifecycle note).
type Game interface {
	// Name identifies the game for database paths and CLI subcommands.
	Name() string

	InitialTier() types.Tier
	InitialPosition() types.TierPosition

	// TierSize reports an upper bound N(t) on hashes in tier t; the
	// solver allocates (Value, Remoteness) vectors of this size.
	TierSize(t types.Tier) int64

	// ChildTiers returns the tiers this tier's positions can transition
	// into, deduplicated, with no more than MaxChildTiers entries.
	ChildTiers(t types.Tier) []types.Tier

	// GenerateMoves lists the legal moves from tp, deduplicated, with no
	// more than MaxMoves entries.
	GenerateMoves(tp types.TierPosition) []types.Move

	DoMove(tp types.TierPosition, m types.Move) types.TierPosition

	// Primitive returns the game-theoretic value if tp is terminal, or
	// types.Undecided otherwise.
	Primitive(tp types.TierPosition) types.Value

	// IsLegalPosition is a fast filter. It may over-approximate (declare
	// an unreachable position legal) but must never mark a reachable
	// position illegal.
	IsLegalPosition(tp types.TierPosition) bool
}

// TierSymmetric is implemented by games that collapse equivalent tiers
// to one canonical representative (spec §4.3 optional API).
type TierSymmetric interface {
	CanonicalTier(t types.Tier) types.Tier
	PositionInSymmetricTier(tp types.TierPosition, target types.Tier) types.TierPosition
}

// PositionSymmetric is implemented by games that additionally collapse
// positions within a tier under a symmetry group.
type PositionSymmetric interface {
	CanonicalPosition(tp types.TierPosition) types.TierPosition
}

// CanonicalChildGenerator fuses do-move with canonicalization so the
// solver never has to materialize a non-canonical child just to
// discard it immediately.
type CanonicalChildGenerator interface {
	CanonicalChildPositions(tp types.TierPosition) []types.TierPosition
	NumberOfCanonicalChildPositions(tp types.TierPosition) int
}

// ParentGenerator lets a game supply parent positions directly,
// letting the solver skip building a reverse graph for that tier
// (spec §4.5 "used when the game does not implement
// canonical_parent_positions").
type ParentGenerator interface {
	CanonicalParentPositions(child types.TierPosition, parentTier types.Tier) []types.TierPosition
}

// TierTyped is implemented by games that know ahead of time whether a
// tier is loopy, loop-free, or an immediate transition, letting the
// solver skip the generic classification scan.
type TierTyped interface {
	TierType(t types.Tier) TierType
}

// AutoGUIFormatter is implemented by games that can render a position
// or move as the AutoGUI string a web front-end displays (spec §6's
// JSON query response fields "autoguiPosition"/"autoguiMove"/"from"/
// "to"). Games that don't implement it fall back to a numeric encoding
// of the tier/position/move values themselves.
type AutoGUIFormatter interface {
	AutoGUIPosition(tp types.TierPosition) string
	// AutoGUIMove returns the move's AutoGUI string plus, where the move
	// has one, the board cells it moves a piece from and to (empty for a
	// placement move that has no "from").
	AutoGUIMove(tp types.TierPosition, m types.Move) (move, from, to string)
}
