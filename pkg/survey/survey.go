// Package survey scores the whole grid under one objective profile,
// producing heatmap matrices for map rendering and ranked hotspot lists
// for zone recommendations.
package survey

import (
	"sort"

	"github.com/rayanamir1/AbyssGPT/pkg/grid"
	"github.com/rayanamir1/AbyssGPT/pkg/score"
)

// CellScore pairs a coordinate with its full scoring result.
type CellScore struct {
	Coord    grid.Coordinate   `json:"coord"`
	Vector   score.ScoreVector `json:"vector"`
	Combined float64           `json:"combined"`
}

// Heatmap computes the combined score of every cell in the repository
// bounds as a dense row-major matrix. Cells with no record carry the
// conservative data-gap score, so the matrix has no holes.
func Heatmap(repo grid.Repository, model *score.Model, profile score.Profile) [][]float64 {
	b := repo.Bounds()
	m := make([][]float64, b.Rows())
	for i := range m {
		m[i] = make([]float64, b.Cols())
		for j := range m[i] {
			c := grid.Coordinate{Row: b.Min.Row + i, Col: b.Min.Col + j}
			m[i][j] = model.CombinedAt(repo, c, profile)
		}
	}
	return m
}

// Rank scores every loaded cell and orders them best-first for the
// profile. "Best" is the cheapest combined score for every profile
// except Conservation, which surfaces the most ecologically sensitive
// cells as hotspots. Ties resolve in row-major coordinate order.
func Rank(repo grid.Repository, model *score.Model, profile score.Profile) []CellScore {
	coords := repo.Coords()
	scored := make([]CellScore, 0, len(coords))
	for _, c := range coords {
		v := model.ScoreAt(repo, c)
		scored = append(scored, CellScore{
			Coord:    c,
			Vector:   v,
			Combined: model.Combine(v, profile),
		})
	}

	descending := profile == score.Conservation
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Combined != scored[j].Combined {
			if descending {
				return scored[i].Combined > scored[j].Combined
			}
			return scored[i].Combined < scored[j].Combined
		}
		if scored[i].Coord.Row != scored[j].Coord.Row {
			return scored[i].Coord.Row < scored[j].Coord.Row
		}
		return scored[i].Coord.Col < scored[j].Coord.Col
	})
	return scored
}

// Top returns the n best cells for the profile.
func Top(repo grid.Repository, model *score.Model, profile score.Profile, n int) []CellScore {
	ranked := Rank(repo, model, profile)
	if n > len(ranked) {
		n = len(ranked)
	}
	if n < 0 {
		n = 0
	}
	return ranked[:n]
}
