package score

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayanamir1/AbyssGPT/pkg/grid"
)

func defaultModel() *Model {
	return NewModel(DefaultConfig())
}

// sampleRecord is a mid-range cell used for known-value checks.
func sampleRecord() grid.CellRecord {
	return grid.CellRecord{
		DepthM:            3500,
		HazardSeverity:    0.8,
		CurrentSpeedMPS:   2.5,
		CurrentStability:  0.6,
		CoralHealth:       0.5,
		CoralCoverPct:     50,
		Biodiversity:      0.4,
		SpeciesDensity:    0.5,
		SpeciesThreat:     0.5,
		ResourceAbundance: 0.8,
		ResourceValue:     0.6,
		ResourceImpact:    0.4,
	}
}

func TestScoreKnownValues(t *testing.T) {
	v := defaultModel().Score(sampleRecord())

	// depth 0.5, severity 0.8, speed 0.5, instability 0.4 under the
	// default 0.25/0.50/0.10/0.15 blend.
	assert.InDelta(t, 63.5, v.Danger, 1e-9)
	// abundance 0.8, value 0.6, purity 0.6 under 0.50/0.35/0.15.
	assert.InDelta(t, 70.0, v.Resource, 1e-9)
	assert.InDelta(t, 48.5, v.EcoImpact, 1e-9)
}

func TestScoreVectorWithinRange(t *testing.T) {
	records := []grid.CellRecord{
		{},
		sampleRecord(),
		{DepthM: 99999, HazardSeverity: 5, CurrentSpeedMPS: 40, CurrentStability: -3,
			CoralHealth: -1, CoralCoverPct: 400, Biodiversity: 7, SpeciesDensity: 9,
			SpeciesThreat: 2, ResourceAbundance: 10, ResourceValue: 10, ResourceImpact: -4},
		{DepthM: -100, HazardSeverity: -1, CurrentStability: 2},
		{DepthM: math.NaN(), HazardSeverity: math.NaN(), ResourceAbundance: math.Inf(1)},
	}

	m := defaultModel()
	for _, rec := range records {
		v := m.Score(rec)
		for name, s := range map[string]float64{"danger": v.Danger, "resource": v.Resource, "eco": v.EcoImpact} {
			assert.False(t, math.IsNaN(s), "%s is NaN for %+v", name, rec)
			assert.GreaterOrEqual(t, s, 0.0, "%s below range for %+v", name, rec)
			assert.LessOrEqual(t, s, 100.0, "%s above range for %+v", name, rec)
		}
		for _, p := range Profiles() {
			c := m.Combine(v, p)
			assert.False(t, math.IsNaN(c))
			assert.GreaterOrEqual(t, c, 0.0, "combined negative under %s for %+v", p, rec)
			assert.LessOrEqual(t, c, 100.0)
		}
	}
}

func TestDangerMonotonicInHazard(t *testing.T) {
	m := defaultModel()
	rec := sampleRecord()

	prev := -1.0
	for _, sev := range []float64{0, 0.2, 0.5, 0.8, 1.0} {
		rec.HazardSeverity = sev
		d := m.Score(rec).Danger
		assert.GreaterOrEqual(t, d, prev, "danger decreased at severity %v", sev)
		prev = d
	}
}

func TestProfileOrderingFlips(t *testing.T) {
	m := defaultModel()

	// A: dangerous but resource-rich; B: calm, poor, moderately sensitive.
	a := ScoreVector{Danger: 80, Resource: 90, EcoImpact: 80}
	b := ScoreVector{Danger: 10, Resource: 20, EcoImpact: 40}

	// A safe-route query avoids A; a mining query prefers it.
	assert.Greater(t, m.Combine(a, SafeRoute), m.Combine(b, SafeRoute))
	assert.Less(t, m.Combine(a, Mining), m.Combine(b, Mining))

	// Mining and conservation rank the same pair in opposite orders.
	assert.Greater(t, m.Combine(a, Conservation), m.Combine(b, Conservation))
}

func TestMiningFavorsAbundantCleanDeposits(t *testing.T) {
	m := defaultModel()

	rich := grid.CellRecord{CurrentStability: 1, ResourceAbundance: 0.9, ResourceValue: 0.9, ResourceImpact: 0.1}
	fragile := grid.CellRecord{CurrentStability: 1, ResourceAbundance: 0.1, ResourceValue: 0.1,
		ResourceImpact: 0.9, CoralHealth: 0.1, CoralCoverPct: 90, Biodiversity: 0.9,
		SpeciesDensity: 0.9, SpeciesThreat: 0.9}

	costRich := m.Combine(m.Score(rich), Mining)
	costFragile := m.Combine(m.Score(fragile), Mining)
	assert.Less(t, costRich, costFragile, "mining must make rich low-impact cells cheap")
}

func TestDataGapIsConservative(t *testing.T) {
	m := defaultModel()
	repo := grid.NewMemoryRepository(map[grid.Coordinate]grid.CellRecord{
		{Row: 0, Col: 0}: {CurrentStability: 1},
	})

	v := m.ScoreAt(repo, grid.Coordinate{Row: 5, Col: 5})
	assert.Equal(t, ScaleMax, v.Danger)
	assert.Zero(t, v.Resource)
	assert.Equal(t, ScaleMax, v.EcoImpact)

	for _, p := range Profiles() {
		assert.GreaterOrEqual(t, m.Combine(v, p), 0.0)
	}
}

func TestMissingResourceFieldsStayFinite(t *testing.T) {
	m := defaultModel()
	rec := grid.CellRecord{DepthM: 1000, CurrentStability: 1}

	v := m.Score(rec)
	require.False(t, math.IsNaN(v.Resource))
	// Zero abundance and value leave only the purity term.
	assert.InDelta(t, DefaultConfig().Resource.Purity*ScaleMax, v.Resource, 1e-9)
}

func TestCombineUnknownProfileFallsBack(t *testing.T) {
	m := defaultModel()
	v := ScoreVector{Danger: 30, Resource: 30, EcoImpact: 30}
	assert.InDelta(t, m.Combine(v, Balanced), m.Combine(v, Profile("bogus")), 1e-9)
}
