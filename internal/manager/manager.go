// Package manager holds the process-wide single-instance state spec.md
// §4.9 describes: at most one game, one solver, and one database
// active at a time. The design note "Global state → encapsulated
// process-wide singletons" becomes a struct with explicit Init/Close
// instead of the source's file-scope globals (manager, current_solver,
// current_game).
package manager

import (
	"github.com/gofrs/flock"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/gamesmanone/core/internal/analysis"
	"github.com/gamesmanone/core/internal/database"
	"github.com/gamesmanone/core/internal/game"
	"github.com/gamesmanone/core/internal/tiersolver"
	"github.com/gamesmanone/core/internal/types"
)

var (
	// ErrNotInitialized mirrors spec.md §7's UseBeforeInitialization
	// kind: Solve/Analyze/GetValue/GetRemoteness called before Init.
	ErrNotInitialized = errors.New("manager: not initialized")
	// ErrAlreadyInitialized guards the "at most one game... active"
	// invariant within a process.
	ErrAlreadyInitialized = errors.New("manager: already initialized")
)

// Manager is the process-wide context object. The zero value is not
// usable; construct with New.
type Manager struct {
	dataPath string
	lock     *flock.Flock

	game   game.Game
	disk   *database.Disk
	solver *tiersolver.Solver
}

// New returns an uninitialized Manager.
func New() *Manager {
	return &Manager{}
}

// Init constructs the chosen solver with the game-supplied API table
// and opens its database at dataPath (spec.md §4.9 "init(game,
// data_path)"). An OS-level exclusive lock on dataPath enforces
// single-active-game across processes, a stronger reading of "at most
// one game... active" than an in-process guard alone gives.
func (m *Manager) Init(g game.Game, dataPath string) error {
	if m.game != nil {
		return ErrAlreadyInitialized
	}

	lock := flock.New(dataPath + "/.gamesman.lock")
	locked, err := lock.TryLock()
	if err != nil {
		return errors.Wrap(err, "manager: acquiring data-path lock")
	}
	if !locked {
		return errors.Errorf("manager: data path %q is already locked by another process", dataPath)
	}

	disk, err := database.Open(dataPath, g.Name(), database.NoCompression{})
	if err != nil {
		lock.Unlock()
		return err
	}

	m.dataPath = dataPath
	m.lock = lock
	m.game = g
	m.disk = disk
	m.solver = tiersolver.New(g, disk, 0)
	return nil
}

// Close releases the database and the data-path lock, returning the
// Manager to its uninitialized state.
func (m *Manager) Close() error {
	if m.game == nil {
		return nil
	}
	err := m.disk.Close()
	m.lock.Unlock()
	m.game, m.disk, m.solver, m.lock = nil, nil, nil, nil
	return err
}

func (m *Manager) requireInit() error {
	if m.game == nil {
		return ErrNotInitialized
	}
	return nil
}

// Solve dispatches to the current solver (spec.md §4.9 "solve(opts)").
func (m *Manager) Solve(opts tiersolver.Options) error {
	if err := m.requireInit(); err != nil {
		return err
	}
	return m.solver.Solve(opts)
}

// Analyze runs the analysis aggregator of spec.md §4.8 over every
// tier the current solve discovered (spec.md §4.9 "analyze(opts)").
func (m *Manager) Analyze() (*analysis.Stats, error) {
	if err := m.requireInit(); err != nil {
		return nil, err
	}
	graph := tiersolver.Discover(m.game)
	return analysis.AnalyzeTiers(m.game, m.disk, graph.Order)
}

// GetValue and GetRemoteness dispatch a query against the current
// solver's durable storage (spec.md §4.9).
func (m *Manager) GetValue(tp types.TierPosition) (types.Value, error) {
	if err := m.requireInit(); err != nil {
		return types.Undecided, err
	}
	return m.solver.GetValue(tp)
}

func (m *Manager) GetRemoteness(tp types.TierPosition) (types.Remoteness, error) {
	if err := m.requireInit(); err != nil {
		return 0, err
	}
	return m.solver.GetRemoteness(tp)
}

// Game exposes the active game, used by callers (e.g. cmd/gamesman's
// getstart/getrandom) that need direct access to the API table rather
// than one of the dispatch methods above.
func (m *Manager) Game() game.Game {
	return m.game
}

// SetLogger forwards a structured logger to the active solver, used by
// cmd/gamesman to honor -v/--verbose and -q/--quiet.
func (m *Manager) SetLogger(log *zap.SugaredLogger) {
	if m.solver != nil {
		m.solver.SetLogger(log)
	}
}

// Disk exposes the active database, used by callers (e.g.
// cmd/gamesman's query sub-command) that need a probe directly rather
// than going through GetValue/GetRemoteness one call at a time.
func (m *Manager) Disk() *database.Disk {
	return m.disk
}
