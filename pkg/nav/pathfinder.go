package nav

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/rayanamir1/AbyssGPT/pkg/grid"
)

// Pathfinder runs weighted shortest-path searches over a Graph. Each
// FindRoute call uses independent search state, so one Pathfinder may
// serve concurrent queries.
type Pathfinder struct {
	graph *Graph
}

// NewPathfinder wraps a graph for route searches.
func NewPathfinder(g *Graph) *Pathfinder {
	return &Pathfinder{graph: g}
}

// FindRoute computes the least-cost route from source to target.
//
// Outcomes:
//   - a Route on success (source == target yields a single-cell,
//     zero-cost route),
//   - ErrInvalidCoordinate if either endpoint lies outside the
//     repository bounds (checked before any search work),
//   - ErrNoRoute if the endpoints are not connected.
//
// Equal-cost paths resolve by frontier insertion order, so output is
// deterministic. Cancellation via ctx is checked between frontier pops;
// a cancelled search returns ctx.Err() with no partial result.
func (p *Pathfinder) FindRoute(ctx context.Context, source, target grid.Coordinate) (*Route, error) {
	g := p.graph
	if !g.InBounds(source) {
		return nil, fmt.Errorf("%w: source (%d,%d)", ErrInvalidCoordinate, source.Row, source.Col)
	}
	if !g.InBounds(target) {
		return nil, fmt.Errorf("%w: target (%d,%d)", ErrInvalidCoordinate, target.Row, target.Col)
	}
	if _, err := g.repo.Get(source); err != nil {
		return nil, fmt.Errorf("%w: source (%d,%d) has no cell", ErrNoRoute, source.Row, source.Col)
	}
	if _, err := g.repo.Get(target); err != nil {
		return nil, fmt.Errorf("%w: target (%d,%d) has no cell", ErrNoRoute, target.Row, target.Col)
	}

	if source == target {
		return p.assemble([]grid.Coordinate{source}, 0), nil
	}

	dist := map[grid.Coordinate]float64{source: 0}
	prev := map[grid.Coordinate]grid.Coordinate{}
	visited := map[grid.Coordinate]bool{}

	pq := &frontier{}
	heap.Init(pq)
	seq := 0
	heap.Push(pq, frontierItem{coord: source, cost: 0, seq: seq})

	for pq.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		item := heap.Pop(pq).(frontierItem)
		if visited[item.coord] {
			continue // stale lazy-decrease-key entry
		}
		visited[item.coord] = true

		if item.coord == target {
			return p.assemble(reconstruct(prev, source, target), item.cost), nil
		}

		for _, n := range g.Neighbors(item.coord) {
			if visited[n] || !g.Passable(n) {
				continue
			}
			tentative := item.cost + g.EdgeWeight(item.coord, n)
			if best, ok := dist[n]; ok && tentative >= best {
				continue
			}
			dist[n] = tentative
			prev[n] = item.coord
			seq++
			heap.Push(pq, frontierItem{coord: n, cost: tentative, seq: seq})
		}
	}

	return nil, fmt.Errorf("%w: (%d,%d) to (%d,%d)", ErrNoRoute,
		source.Row, source.Col, target.Row, target.Col)
}

// assemble computes route statistics for a finished path.
func (p *Pathfinder) assemble(cells []grid.Coordinate, totalCost float64) *Route {
	r := &Route{Cells: cells, TotalCost: totalCost}
	for i, c := range cells {
		if d := p.graph.model.ScoreAt(p.graph.repo, c).Danger; d > r.MaxDanger {
			r.MaxDanger = d
		}
		if i > 0 {
			r.GeometricLength += stepLength(cells[i-1], c)
		}
	}
	return r
}

func reconstruct(prev map[grid.Coordinate]grid.Coordinate, source, target grid.Coordinate) []grid.Coordinate {
	var rev []grid.Coordinate
	for c := target; ; c = prev[c] {
		rev = append(rev, c)
		if c == source {
			break
		}
	}
	cells := make([]grid.Coordinate, len(rev))
	for i, c := range rev {
		cells[len(rev)-1-i] = c
	}
	return cells
}

// frontierItem is one tentative entry in the search frontier.
type frontierItem struct {
	coord grid.Coordinate
	cost  float64
	seq   int
}

// frontier is a min-heap ordered by tentative cost, breaking ties by
// insertion order for deterministic results.
type frontier []frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(frontierItem)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}
