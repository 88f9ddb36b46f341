package grid

import "sort"

// MemoryRepository is the in-memory Repository used for a session.
// It is immutable once built, so concurrent queries need no locking.
type MemoryRepository struct {
	cells  map[Coordinate]CellRecord
	bounds Bounds
}

// NewMemoryRepository builds a repository from a coordinate->record map.
// Bounds are the min/max row and column over all keys.
func NewMemoryRepository(cells map[Coordinate]CellRecord) *MemoryRepository {
	r := &MemoryRepository{cells: make(map[Coordinate]CellRecord, len(cells))}
	first := true
	for c, rec := range cells {
		r.cells[c] = rec
		if first {
			r.bounds = Bounds{Min: c, Max: c}
			first = false
			continue
		}
		if c.Row < r.bounds.Min.Row {
			r.bounds.Min.Row = c.Row
		}
		if c.Col < r.bounds.Min.Col {
			r.bounds.Min.Col = c.Col
		}
		if c.Row > r.bounds.Max.Row {
			r.bounds.Max.Row = c.Row
		}
		if c.Col > r.bounds.Max.Col {
			r.bounds.Max.Col = c.Col
		}
	}
	return r
}

// Get implements Repository.
func (r *MemoryRepository) Get(c Coordinate) (CellRecord, error) {
	rec, ok := r.cells[c]
	if !ok {
		return CellRecord{}, ErrNotFound
	}
	return rec, nil
}

// Bounds implements Repository.
func (r *MemoryRepository) Bounds() Bounds { return r.bounds }

// Coords implements Repository. Row-major order keeps downstream
// heatmaps and rankings deterministic.
func (r *MemoryRepository) Coords() []Coordinate {
	out := make([]Coordinate, 0, len(r.cells))
	for c := range r.cells {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Len returns the number of loaded cell records.
func (r *MemoryRepository) Len() int { return len(r.cells) }
