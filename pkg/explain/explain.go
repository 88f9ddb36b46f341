// Package explain renders a per-cell scoring result as human-readable
// prose plus the structured score payload consumed by the map layer.
package explain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rayanamir1/AbyssGPT/pkg/grid"
	"github.com/rayanamir1/AbyssGPT/pkg/score"
)

// CellReport is the full scoring-query output for one coordinate:
// prose, the score vector, the combined score under the requested
// profile, and the raw attributes it was derived from.
type CellReport struct {
	Coord    grid.Coordinate   `json:"coord"`
	Profile  score.Profile     `json:"profile"`
	Vector   score.ScoreVector `json:"vector"`
	Combined float64           `json:"combined"`
	Cell     grid.CellRecord   `json:"cell"`
	DataGap  bool              `json:"data_gap"`
	Answer   string            `json:"answer"`
}

// Describe scores the cell at c and assembles a narrative. A missing
// record is reported as a data gap with the conservative scores, never
// as an error.
func Describe(repo grid.Repository, model *score.Model, c grid.Coordinate, profile score.Profile) CellReport {
	rep := CellReport{Coord: c, Profile: profile}

	rec, err := repo.Get(c)
	if errors.Is(err, grid.ErrNotFound) {
		rep.DataGap = true
		rep.Vector = model.ScoreAt(repo, c)
		rep.Combined = model.Combine(rep.Vector, profile)
		rep.Answer = fmt.Sprintf(
			"No survey data covers (%d,%d). It is treated as maximally hazardous until mapped.",
			c.Row, c.Col)
		return rep
	}

	rep.Cell = rec
	rep.Vector = model.Score(rec)
	rep.Combined = model.Combine(rep.Vector, profile)

	parts := []string{
		describeCell(c, rec),
		describeCurrents(rec),
		describeHazard(rec),
		describeCoral(rec),
		describeResources(rec),
		describeLife(rec),
		describePOI(rec),
		describeScores(rep.Vector),
	}
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	rep.Answer = strings.Join(kept, " ")
	return rep
}

func describeCell(c grid.Coordinate, rec grid.CellRecord) string {
	biome := rec.Biome
	if biome == "" {
		biome = "uncharted"
	}
	return fmt.Sprintf("Cell (%d,%d) sits at ~%.0f m in a %s biome with water around %.1f°C.",
		c.Row, c.Col, rec.DepthM, biome, rec.TemperatureC)
}

func describeCurrents(rec grid.CellRecord) string {
	if rec.CurrentSpeedMPS <= 0 {
		return ""
	}
	stability := "stable"
	if rec.CurrentStability < 0.5 {
		stability = "unstable"
	}
	return fmt.Sprintf("Currents run at %.1f m/s and are %s.", rec.CurrentSpeedMPS, stability)
}

func describeHazard(rec grid.CellRecord) string {
	if rec.HazardSeverity <= 0 {
		return "No active hazards are recorded here."
	}
	kind := rec.HazardType
	if kind == "" {
		kind = "unclassified hazard"
	}
	return fmt.Sprintf("A %s with severity %.2f is active in this cell.", kind, rec.HazardSeverity)
}

func describeCoral(rec grid.CellRecord) string {
	if rec.CoralCoverPct <= 0 {
		return ""
	}
	return fmt.Sprintf("Coral covers %.0f%% of the seabed (health index %.2f, biodiversity %.2f).",
		rec.CoralCoverPct, rec.CoralHealth, rec.Biodiversity)
}

func describeResources(rec grid.CellRecord) string {
	if rec.ResourceAbundance <= 0 {
		return ""
	}
	return fmt.Sprintf("Mineral deposits show abundance %.2f and economic value %.2f, with extraction impact %.2f.",
		rec.ResourceAbundance, rec.ResourceValue, rec.ResourceImpact)
}

func describeLife(rec grid.CellRecord) string {
	if rec.SpeciesDensity <= 0 {
		return ""
	}
	s := fmt.Sprintf("Species density is %.2f", rec.SpeciesDensity)
	if rec.SpeciesThreat > 0.5 {
		s += ", including threatened populations"
	}
	return s + "."
}

func describePOI(rec grid.CellRecord) string {
	if len(rec.POI) == 0 {
		return ""
	}
	return fmt.Sprintf("Points of interest: %s.", strings.Join(rec.POI, ", "))
}

func describeScores(v score.ScoreVector) string {
	return fmt.Sprintf("Scores: danger %.0f, resource %.0f, ecological impact %.0f (0-100 scale).",
		v.Danger, v.Resource, v.EcoImpact)
}
