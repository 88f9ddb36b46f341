// Package score turns raw per-cell seafloor attributes into normalized
// Danger, Resource, and EcologicalImpact sub-scores and blends them into
// a single combined cost under a named objective profile.
//
// All sub-scores live in [0,100]. Combined scores are convex blends of
// Danger, EcoImpact, and inverse Resource (100-Resource), so they are
// non-negative by construction; the pathfinder relies on this to keep
// every edge weight valid for Dijkstra.
package score

import (
	"math"

	"github.com/rayanamir1/AbyssGPT/pkg/grid"
)

// ScaleMax is the upper bound of every sub-score and combined score.
const ScaleMax = 100.0

// ScoreVector holds the three normalized sub-scores for one cell.
type ScoreVector struct {
	Danger    float64 `json:"danger"`
	Resource  float64 `json:"resource"`
	EcoImpact float64 `json:"eco_impact"`
}

// Model computes sub-scores and combined scores from a weight
// configuration. It is pure and safe for concurrent use.
type Model struct {
	cfg Config
}

// NewModel builds a scoring model from cfg. Callers should validate the
// configuration first (see ValidateConfig); NewModel does not re-check.
func NewModel(cfg Config) *Model {
	return &Model{cfg: cfg}
}

// Score derives the ScoreVector for one cell record.
func (m *Model) Score(rec grid.CellRecord) ScoreVector {
	return ScoreVector{
		Danger:    m.danger(rec),
		Resource:  m.resource(rec),
		EcoImpact: m.ecoImpact(rec),
	}
}

// ScoreAt fetches the record at c and scores it. A missing record is a
// data gap, not a failure: it yields the conservative vector (maximum
// danger, zero resource, maximum sensitivity) so unknown seabed is
// always expensive to cross and never attractive.
func (m *Model) ScoreAt(repo grid.Repository, c grid.Coordinate) ScoreVector {
	rec, err := repo.Get(c)
	if err != nil {
		return ScoreVector{Danger: ScaleMax, Resource: 0, EcoImpact: ScaleMax}
	}
	return m.Score(rec)
}

// Combine blends a score vector into one scalar cost under the profile.
// Unknown profiles fall back to Balanced.
func (m *Model) Combine(v ScoreVector, p Profile) float64 {
	w, ok := m.cfg.Profiles[p]
	if !ok {
		w = m.cfg.Profiles[Balanced]
	}
	cost := w.Danger*v.Danger + w.EcoImpact*v.EcoImpact + w.InvResource*(ScaleMax-v.Resource)
	return clamp(cost, 0, ScaleMax)
}

// CombinedAt is ScoreAt followed by Combine.
func (m *Model) CombinedAt(repo grid.Repository, c grid.Coordinate, p Profile) float64 {
	return m.Combine(m.ScoreAt(repo, c), p)
}

func (m *Model) danger(rec grid.CellRecord) float64 {
	w := m.cfg.Danger
	depth := clamp(rec.DepthM/m.cfg.Norms.MaxDepthM, 0, 1)
	speed := clamp(rec.CurrentSpeedMPS/m.cfg.Norms.MaxCurrentMPS, 0, 1)
	instability := 1 - clamp(rec.CurrentStability, 0, 1)
	severity := clamp(rec.HazardSeverity, 0, 1)

	s := w.Depth*depth + w.Hazard*severity + w.CurrentSpeed*speed + w.Instability*instability
	return clamp(s*ScaleMax, 0, ScaleMax)
}

func (m *Model) resource(rec grid.CellRecord) float64 {
	w := m.cfg.Resource
	abundance := clamp(rec.ResourceAbundance, 0, 1)
	value := clamp(rec.ResourceValue, 0, 1)
	// Purity rewards deposits that are cheap to extract cleanly.
	purity := 1 - clamp(rec.ResourceImpact, 0, 1)

	s := w.Abundance*abundance + w.Value*value + w.Purity*purity
	return clamp(s*ScaleMax, 0, ScaleMax)
}

func (m *Model) ecoImpact(rec grid.CellRecord) float64 {
	w := m.cfg.EcoImpact
	// Degraded reefs are the ones that cannot absorb further disturbance.
	fragility := 1 - clamp(rec.CoralHealth, 0, 1)
	cover := clamp(rec.CoralCoverPct/100, 0, 1)
	biodiversity := clamp(rec.Biodiversity, 0, 1)
	density := clamp(rec.SpeciesDensity, 0, 1)
	threat := clamp(rec.SpeciesThreat, 0, 1)

	s := w.CoralFragility*fragility + w.CoralCover*cover +
		w.Biodiversity*biodiversity + w.SpeciesDensity*density + w.SpeciesThreat*threat
	return clamp(s*ScaleMax, 0, ScaleMax)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}
