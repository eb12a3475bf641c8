package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamesmanone/core/internal/database"
	"github.com/gamesmanone/core/internal/games/tictactoe"
	"github.com/gamesmanone/core/internal/tiersolver"
)

func TestBuildQueryResponseReflectsSolvedInitialPosition(t *testing.T) {
	g := tictactoe.New()
	disk, err := database.Open(t.TempDir(), g.Name(), database.NoCompression{})
	require.NoError(t, err)
	defer disk.Close()

	solver := tiersolver.New(g, disk, 0)
	require.NoError(t, solver.Solve(tiersolver.Options{}))

	probe, err := disk.NewProbe()
	require.NoError(t, err)
	defer probe.Close()

	start := g.InitialPosition()
	resp := buildQueryResponse(g, probe, start)

	assert.Equal(t, "draw", resp.PositionValue)
	assert.True(t, resp.Full)
	assert.Len(t, resp.Moves, 9)
	assert.Empty(t, resp.PartMoves)
	for _, m := range resp.Moves {
		assert.NotEqual(t, "unsolved", m.PositionValue)
	}
}
