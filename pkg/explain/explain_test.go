package explain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayanamir1/AbyssGPT/pkg/grid"
	"github.com/rayanamir1/AbyssGPT/pkg/score"
)

func TestDescribeFullCell(t *testing.T) {
	repo := grid.NewMemoryRepository(map[grid.Coordinate]grid.CellRecord{
		{Row: 3, Col: 4}: {
			DepthM:            2200,
			TemperatureC:      3.7,
			Biome:             "hydrothermal_field",
			CurrentSpeedMPS:   2.1,
			CurrentStability:  0.3,
			HazardType:        "volcanic_vent",
			HazardSeverity:    0.8,
			CoralCoverPct:     40,
			CoralHealth:       0.6,
			Biodiversity:      0.5,
			SpeciesDensity:    0.4,
			SpeciesThreat:     0.7,
			ResourceAbundance: 0.5,
			ResourceValue:     0.6,
			ResourceImpact:    0.3,
			POI:               []string{"Vent Field Kraken"},
		},
	})
	model := score.NewModel(score.DefaultConfig())

	rep := Describe(repo, model, grid.Coordinate{Row: 3, Col: 4}, score.Balanced)

	require.False(t, rep.DataGap)
	assert.Equal(t, score.Balanced, rep.Profile)
	assert.Contains(t, rep.Answer, "Cell (3,4)")
	assert.Contains(t, rep.Answer, "2200 m")
	assert.Contains(t, rep.Answer, "hydrothermal_field")
	assert.Contains(t, rep.Answer, "volcanic_vent")
	assert.Contains(t, rep.Answer, "unstable")
	assert.Contains(t, rep.Answer, "Coral covers 40%")
	assert.Contains(t, rep.Answer, "Vent Field Kraken")
	assert.Contains(t, rep.Answer, "Scores:")

	assert.Greater(t, rep.Vector.Danger, 0.0)
	assert.Greater(t, rep.Combined, 0.0)
}

func TestDescribeQuietCellOmitsEmptySections(t *testing.T) {
	repo := grid.NewMemoryRepository(map[grid.Coordinate]grid.CellRecord{
		{Row: 0, Col: 0}: {DepthM: 800, TemperatureC: 6, Biome: "abyssal_plain", CurrentStability: 1},
	})
	model := score.NewModel(score.DefaultConfig())

	rep := Describe(repo, model, grid.Coordinate{Row: 0, Col: 0}, score.SafeRoute)

	assert.Contains(t, rep.Answer, "No active hazards")
	assert.NotContains(t, rep.Answer, "Coral")
	assert.NotContains(t, rep.Answer, "Mineral")
	assert.NotContains(t, rep.Answer, "Points of interest")
}

func TestDescribeDataGap(t *testing.T) {
	repo := grid.NewMemoryRepository(map[grid.Coordinate]grid.CellRecord{
		{Row: 0, Col: 0}: {CurrentStability: 1},
	})
	model := score.NewModel(score.DefaultConfig())

	rep := Describe(repo, model, grid.Coordinate{Row: 7, Col: 7}, score.SafeRoute)

	require.True(t, rep.DataGap)
	assert.Contains(t, rep.Answer, "No survey data")
	assert.Equal(t, score.ScaleMax, rep.Vector.Danger)
	assert.Zero(t, rep.Vector.Resource)
	assert.Equal(t, score.ScaleMax, rep.Combined)
}
