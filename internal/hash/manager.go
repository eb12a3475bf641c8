package hash

import "sync"

// Manager is the process-wide label -> Context registry (spec §4.2
// "Multi-context manager"), replacing the teacher's single global
// *Engine (internal/engine/engine.go) with one registry slot per label
// instead of a single instance, per the design note "Global state ->
// encapsulated process-wide singletons".
type Manager struct {
	mu       sync.RWMutex
	contexts map[string]*Context
}

// NewManager returns an empty registry.
func NewManager() *Manager {
	return &Manager{contexts: make(map[string]*Context)}
}

// Add registers ctx under label, replacing any previous context sharing
// that label.
func (m *Manager) Add(label string, ctx *Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contexts[label] = ctx
}

// Get returns the context registered under label.
func (m *Manager) Get(label string) (*Context, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ctx, ok := m.contexts[label]
	if !ok {
		return nil, ErrUnknownLabel
	}
	return ctx, nil
}

// Remove deletes the context registered under label, if any.
func (m *Manager) Remove(label string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.contexts, label)
}

// Hash is a convenience that looks up label and hashes (board, turn)
// through it in one call.
func (m *Manager) Hash(label string, board []byte, turn int) (int64, error) {
	ctx, err := m.Get(label)
	if err != nil {
		return -1, err
	}
	return ctx.Hash(board, turn)
}

// Unhash is the Hash convenience's inverse.
func (m *Manager) Unhash(label string, h int64) ([]byte, int, error) {
	ctx, err := m.Get(label)
	if err != nil {
		return nil, 0, err
	}
	return ctx.Unhash(h)
}

// defaultManager backs the package-level single-context convenience
// functions below, for callers that only ever need one active context
// (the common case: one game, one board shape, spec §4.9's "at most one
// game... active").
var defaultManager = NewManager()

// DefaultManager returns the package-wide Manager singleton.
func DefaultManager() *Manager { return defaultManager }

const defaultLabel = "default"

// InitDefault builds a Context and registers it under the default
// label, discarding whatever was registered there before.
func InitDefault(boardSize int, playerMode PlayerMode, pieces, unordered []PieceSpec, validity ValidityFunc) error {
	ctx := NewContext()
	if err := ctx.Init(boardSize, playerMode, pieces, unordered, validity); err != nil {
		return err
	}
	defaultManager.Add(defaultLabel, ctx)
	return nil
}

// Hash hashes (board, turn) through the default context.
func Hash(board []byte, turn int) (int64, error) {
	return defaultManager.Hash(defaultLabel, board, turn)
}

// Unhash unhashes h through the default context.
func Unhash(h int64) ([]byte, int, error) {
	return defaultManager.Unhash(defaultLabel, h)
}

// NumPositions returns N for the default context.
func NumPositions() (int64, error) {
	ctx, err := defaultManager.Get(defaultLabel)
	if err != nil {
		return 0, err
	}
	return ctx.NumPositions(), nil
}
