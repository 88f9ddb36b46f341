package nav

import (
	"math"

	"github.com/rayanamir1/AbyssGPT/pkg/grid"
	"github.com/rayanamir1/AbyssGPT/pkg/score"
)

// Graph exposes the repository's coordinate space as a weighted grid
// graph under one objective profile. Nothing is materialized up front:
// neighbors and edge weights are computed on demand during frontier
// expansion, so sparse or large grids cost nothing until touched.
//
// A Graph is read-only and safe for concurrent searches.
type Graph struct {
	repo    grid.Repository
	model   *score.Model
	profile score.Profile
	opts    Options
	offsets [][2]int
}

// NewGraph binds a repository and scoring model into a grid graph for
// the given profile.
func NewGraph(repo grid.Repository, model *score.Model, profile score.Profile, opts Options) *Graph {
	offs := offsets4
	if opts.Conn == Conn8 {
		offs = offsets8
	}
	if opts.StepCost < 0 {
		opts.StepCost = 0
	}
	return &Graph{
		repo:    repo,
		model:   model,
		profile: profile,
		opts:    opts,
		offsets: offs,
	}
}

// InBounds reports whether c lies inside the repository extent.
func (g *Graph) InBounds(c grid.Coordinate) bool {
	return g.repo.Bounds().Contains(c)
}

// Neighbors returns the adjacent coordinates of c that are in bounds
// and have a cell record. Cells with no record at all are holes in the
// grid, not data gaps, so no edge leads to them.
func (g *Graph) Neighbors(c grid.Coordinate) []grid.Coordinate {
	out := make([]grid.Coordinate, 0, len(g.offsets))
	bounds := g.repo.Bounds()
	for _, d := range g.offsets {
		n := grid.Coordinate{Row: c.Row + d[0], Col: c.Col + d[1]}
		if !bounds.Contains(n) {
			continue
		}
		if _, err := g.repo.Get(n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

// CellCost returns the combined score of the cell at c under the
// graph's profile.
func (g *Graph) CellCost(c grid.Coordinate) float64 {
	return g.model.CombinedAt(g.repo, c, g.profile)
}

// Passable reports whether the cell at c is below the impassability
// threshold.
func (g *Graph) Passable(c grid.Coordinate) bool {
	return g.CellCost(c) < g.opts.Impassable
}

// EdgeWeight returns the cost of traversing between adjacent cells a
// and b: the geometric step length scaled by StepCost plus the average
// of the two endpoints' combined scores. Averaging smooths single-cell
// spikes; symmetry (weight(a,b) == weight(b,a)) follows directly.
func (g *Graph) EdgeWeight(a, b grid.Coordinate) float64 {
	return g.opts.StepCost*stepLength(a, b) + (g.CellCost(a)+g.CellCost(b))/2
}

// stepLength is the geometric distance of one grid step: 1 for
// orthogonal moves, sqrt(2) for diagonals.
func stepLength(a, b grid.Coordinate) float64 {
	if a.Row != b.Row && a.Col != b.Col {
		return math.Sqrt2
	}
	return 1
}
