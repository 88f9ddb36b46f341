package grid

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDirMergesTables(t *testing.T) {
	repo, report, err := LoadDir(filepath.Join("testdata", "basic"))
	require.NoError(t, err)
	require.NotNil(t, repo)

	assert.Equal(t, 9, repo.Len())
	assert.Equal(t, Bounds{Min: Coordinate{0, 0}, Max: Coordinate{2, 2}}, repo.Bounds())

	// Worst hazard wins when a cell has several.
	center, err := repo.Get(Coordinate{Row: 1, Col: 1})
	require.NoError(t, err)
	assert.Equal(t, "volcanic_vent", center.HazardType)
	assert.InDelta(t, 0.9, center.HazardSeverity, 1e-9)
	assert.InDelta(t, 3.5, center.CurrentSpeedMPS, 1e-9)
	assert.InDelta(t, 0.4, center.CurrentStability, 1e-9)

	// Cells without current rows keep the stable default.
	origin, err := repo.Get(Coordinate{Row: 0, Col: 0})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, origin.CurrentStability, 1e-9)
	assert.InDelta(t, 0.8, origin.ResourceAbundance, 1e-9)
	assert.Equal(t, []string{"Research Station Alpha"}, origin.POI)

	// Species rows accumulate density; threat keeps the max.
	reef, err := repo.Get(Coordinate{Row: 2, Col: 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.7, reef.SpeciesDensity, 1e-9)
	assert.InDelta(t, 0.8, reef.SpeciesThreat, 1e-9)
	assert.InDelta(t, 60, reef.CoralCoverPct, 1e-9)
	assert.InDelta(t, 0.8, reef.CoralHealth, 1e-9)

	// An empty numeric field falls back to the default, not an error.
	wreck, err := repo.Get(Coordinate{Row: 2, Col: 2})
	require.NoError(t, err)
	assert.Zero(t, wreck.ResourceAbundance)
	assert.InDelta(t, 0.5, wreck.ResourceValue, 1e-9)

	// The hazard row at (9,9) references no cell and is reported.
	require.NotNil(t, report)
	orphanWarned := false
	for _, w := range report.Warnings {
		if w.Field == "hazards.csv" {
			orphanWarned = true
		}
	}
	assert.True(t, orphanWarned, "expected orphan hazard warning, got %+v", report.Warnings)
}

func TestLoadDirMissingAuxFiles(t *testing.T) {
	repo, report, err := LoadDir(filepath.Join("testdata", "cellsonly"))
	require.NoError(t, err)

	assert.Equal(t, 2, repo.Len())
	rec, err := repo.Get(Coordinate{Row: 0, Col: 0})
	require.NoError(t, err)
	assert.Zero(t, rec.HazardSeverity)
	assert.Zero(t, rec.ResourceAbundance)
	assert.InDelta(t, 1.0, rec.CurrentStability, 1e-9)

	// One warning per absent auxiliary table.
	assert.Len(t, report.Warnings, 6)
	assert.True(t, report.Valid)
}

func TestLoadDirMissingCells(t *testing.T) {
	_, _, err := LoadDir(filepath.Join("testdata", "nope"))
	require.Error(t, err)
}

func TestRepositoryGetAndCoords(t *testing.T) {
	repo := NewMemoryRepository(map[Coordinate]CellRecord{
		{Row: 2, Col: 1}: {DepthM: 100},
		{Row: 0, Col: 3}: {DepthM: 200},
		{Row: 0, Col: 1}: {DepthM: 300},
	})

	_, err := repo.Get(Coordinate{Row: 5, Col: 5})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, Bounds{Min: Coordinate{0, 1}, Max: Coordinate{2, 3}}, repo.Bounds())

	// Row-major order is part of the contract.
	assert.Equal(t, []Coordinate{{0, 1}, {0, 3}, {2, 1}}, repo.Coords())
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{Min: Coordinate{0, 0}, Max: Coordinate{4, 4}}
	assert.True(t, b.Contains(Coordinate{0, 0}))
	assert.True(t, b.Contains(Coordinate{4, 4}))
	assert.False(t, b.Contains(Coordinate{5, 0}))
	assert.False(t, b.Contains(Coordinate{0, -1}))
	assert.Equal(t, 5, b.Rows())
	assert.Equal(t, 5, b.Cols())
}
