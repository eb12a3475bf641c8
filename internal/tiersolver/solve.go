package tiersolver

import (
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/gamesmanone/core/internal/database"
	"github.com/gamesmanone/core/internal/game"
	"github.com/gamesmanone/core/internal/types"
)

// Options carries the solve-wide knobs of spec §4.9 ("Opts carry
// force, verbose, and a soft memory limit").
type Options struct {
	Force bool
	// Verbose is carried for callers that want to record the request
	// alongside Force/MemoryLimit; Solve itself controls log volume
	// through whatever logger SetLogger installed, set independently
	// (cmd/gamesman derives both from the same -v/--verbose flag).
	Verbose bool
	// MemoryLimit is a soft cap in bytes; zero means unbounded. It is
	// advisory only — see DESIGN.md for why the solver does not
	// enforce it strictly.
	MemoryLimit int64
}

// Solver runs the full tier-graph discovery, scheduling, and per-tier
// retrograde solves of spec §4.7 against one game and one database.
// The worker pool is grounded directly on the teacher's Lazy-SMP
// engine: NewEngine's workers []*Worker plus a shared atomic.Bool stop
// flag (internal/engine/engine.go, worker.go) becomes Workers plus
// Solver.cancel here.
type Solver struct {
	game    game.Game
	disk    *database.Disk
	db      *database.Solver
	workers int
	cancel  atomic.Bool
	log     *zap.SugaredLogger
}

// New builds a Solver with a worker count defaulting to
// runtime.NumCPU() (spec §5 "typical: number of hardware threads"),
// overridable the way the teacher's engine takes an explicit thread
// count rather than always reading the environment itself.
func New(g game.Game, disk *database.Disk, workers int) *Solver {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Solver{
		game:    g,
		disk:    disk,
		db:      database.NewSolver(disk),
		workers: workers,
		log:     zap.NewNop().Sugar(),
	}
}

// SetLogger replaces the solver's structured logger, used for
// tier-by-tier progress (size, worker count, cancellation). The
// default is a no-op logger so tests and library callers that never
// call this see no output.
func (s *Solver) SetLogger(log *zap.SugaredLogger) {
	s.log = log
}

// Cancel sets the cooperative cancellation flag (spec §5 "A single
// atomic boolean signals cooperative cancellation").
func (s *Solver) Cancel() {
	s.log.Info("cancellation requested")
	s.cancel.Store(true)
}

// Solve runs spec §4.7's top-level flow: discover the tier graph,
// compute the reverse-topological order, then solve each canonical
// tier in turn, flushing and freeing as it goes.
func (s *Solver) Solve(opts Options) error {
	graph := Discover(s.game)

	for _, tier := range graph.Order {
		if s.cancel.Load() {
			return ErrCancelled
		}

		if !opts.Force && s.disk.HasTier(tier) {
			continue
		}

		children := graph.Children[tier]
		for _, c := range children {
			if !s.disk.HasTier(c) {
				return ErrTierUnsolvable
			}
		}

		size := s.game.TierSize(tier)
		s.log.Infow("solving tier", "tier", tier, "size", size, "workers", s.workers, "children", children)
		if err := s.db.CreateSolvingTier(tier, size); err != nil {
			return err
		}
		mem := s.db.MemoryTier()

		if err := s.solveTierParallel(mem, tier, children, size); err != nil {
			s.db.FreeSolvingTier()
			s.log.Errorw("tier solve failed", "tier", tier, "error", err)
			return err
		}

		if err := s.db.FlushSolvingTier(opts.Force); err != nil {
			s.db.FreeSolvingTier()
			return err
		}
		s.db.FreeSolvingTier()
		s.log.Infow("tier solved", "tier", tier)
	}
	return nil
}

// GetValue and GetRemoteness dispatch a query against durable storage
// via a fresh probe, used by spec §4.9's get_value/get_remoteness.
func (s *Solver) GetValue(tp types.TierPosition) (types.Value, error) {
	probe, err := s.disk.NewProbe()
	if err != nil {
		return types.Undecided, err
	}
	defer probe.Close()
	return probe.Value(tp), nil
}

func (s *Solver) GetRemoteness(tp types.TierPosition) (types.Remoteness, error) {
	probe, err := s.disk.NewProbe()
	if err != nil {
		return 0, err
	}
	defer probe.Close()
	return probe.Remoteness(tp), nil
}

// solveTierParallel runs Phase A sequentially (it is pure I/O, done by
// a single thread per tier per spec §5), then splits Phase B's
// primitive scan across the worker pool (it has no cross-position
// dependency, the embarrassingly-parallel case spec §5 anticipates),
// then runs Phase C's frontier propagation on the coordinator: each
// level's ascending-order dependency (a Lose's remoteness is the
// level at which its counter hits zero) requires the whole level to
// finish before the next begins, so splitting it across workers would
// need a per-level merge barrier for a part of the solve that, unlike
// the scan, is dominated by pointer-chasing through small parent
// lists rather than raw position-count work.
func (s *Solver) solveTierParallel(mem *database.MemoryTier, tier types.Tier, children []types.Tier, size int64) error {
	ctx, err := newTierContext(s.game, mem, s.disk, tier, children, size)
	if err != nil {
		return err
	}

	s.scanPrimitivesParallel(ctx)
	if s.cancel.Load() {
		return ErrCancelled
	}

	runPropagation(ctx)
	sweepDraws(ctx)
	return nil
}

// scanPrimitivesParallel is Phase B, split across s.workers goroutines
// each owning a contiguous position range. Every write lands through
// MemoryTier (atomic) or ctx.undiscovered (atomic), so no additional
// locking is needed; the frontier entries a worker discovers go into
// its own Frontier and are merged into ctx.fr by this goroutine at the
// end (spec §5 "frontier has one instance per worker; merges... are
// done by a single coordinator").
func (s *Solver) scanPrimitivesParallel(ctx *tierContext) {
	n := s.workers
	if int64(n) > ctx.size {
		n = int(ctx.size)
	}
	if n <= 1 {
		runPrimitiveScan(ctx)
		return
	}

	chunk := (ctx.size + int64(n) - 1) / int64(n)
	pools := frontierPoolFor(n, ctx)

	var wg sync.WaitGroup
	for w := 0; w < n; w++ {
		lo := int64(w) * chunk
		hi := lo + chunk
		if hi > ctx.size {
			hi = ctx.size
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(lo, hi int64, local *tierContext) {
			defer wg.Done()
			scanPrimitiveRange(local, lo, hi)
		}(lo, hi, pools[w])
	}
	wg.Wait()

	for _, local := range pools {
		for rem := types.Remoteness(0); rem <= local.maxLevel; rem++ {
			mergeInto(ctx, local, rem)
		}
	}
}
