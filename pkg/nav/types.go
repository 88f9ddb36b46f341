// Package nav exposes the seafloor dataset as a lazily generated grid
// graph and finds least-cost routes over it with Dijkstra's algorithm.
//
// Edge weights combine a geometric step length with the average of the
// two endpoint cells' combined scores under the active objective
// profile. Both components are non-negative, which Dijkstra requires.
package nav

import (
	"errors"
	"math"

	"github.com/rayanamir1/AbyssGPT/pkg/grid"
)

// Sentinel errors surfaced by the pathfinder.
var (
	// ErrInvalidCoordinate indicates a source or target outside the
	// repository bounds. It is a precondition failure reported before
	// any search work.
	ErrInvalidCoordinate = errors.New("nav: coordinate outside grid bounds")

	// ErrNoRoute indicates that no sequence of grid-adjacent steps
	// connects source to target. It is a normal search outcome, not a
	// fault; callers check it with errors.Is.
	ErrNoRoute = errors.New("nav: no route between coordinates")
)

// Connectivity selects neighbor adjacency: orthogonal only, or
// including diagonals.
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 adds the four diagonals.
	Conn8
)

var (
	offsets4 = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	offsets8 = [][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
)

// Options tunes graph generation and search behavior.
type Options struct {
	// Conn chooses 4- or 8-directional connectivity.
	Conn Connectivity
	// StepCost scales the geometric distance component of each edge
	// weight. Diagonal steps cost StepCost*sqrt(2).
	StepCost float64
	// Impassable treats cells whose combined score reaches the
	// threshold as walls: no edge leads into them. Disabled when +Inf.
	Impassable float64
}

// DefaultOptions returns 4-connectivity with a unit step cost and no
// impassability threshold.
func DefaultOptions() Options {
	return Options{
		Conn:       Conn4,
		StepCost:   1,
		Impassable: math.Inf(1),
	}
}

// Route is an ordered path of adjacent cells from source to target
// inclusive, with aggregate traversal statistics.
type Route struct {
	Cells           []grid.Coordinate `json:"cells"`
	TotalCost       float64           `json:"total_cost"`
	MaxDanger       float64           `json:"max_danger"`
	GeometricLength float64           `json:"geometric_length"`
}

// Steps returns the number of edges traversed.
func (r *Route) Steps() int {
	if len(r.Cells) == 0 {
		return 0
	}
	return len(r.Cells) - 1
}
