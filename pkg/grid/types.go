package grid

import "errors"

// ErrNotFound indicates that no cell record exists at a coordinate.
// Callers treat this as a data gap, not a failure (see score.Model).
var ErrNotFound = errors.New("grid: no cell record at coordinate")

// Coordinate identifies one grid cell by row and column.
// It is a value type and is used as a map key throughout.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Bounds is the inclusive coordinate extent of a loaded dataset.
type Bounds struct {
	Min Coordinate `json:"min"`
	Max Coordinate `json:"max"`
}

// Contains reports whether c lies inside the bounds.
func (b Bounds) Contains(c Coordinate) bool {
	return c.Row >= b.Min.Row && c.Row <= b.Max.Row &&
		c.Col >= b.Min.Col && c.Col <= b.Max.Col
}

// Rows returns the number of rows covered by the bounds.
func (b Bounds) Rows() int { return b.Max.Row - b.Min.Row + 1 }

// Cols returns the number of columns covered by the bounds.
func (b Bounds) Cols() int { return b.Max.Col - b.Min.Col + 1 }

// CellRecord holds the raw per-cell attributes merged from all dataset
// tables. Records are read-only after loading; the scoring layer only
// takes snapshots.
//
// Severity, stability, indices, and resource fields are normalized to
// [0,1]. Coral cover is a percentage. Depth is meters, current speed m/s.
type CellRecord struct {
	DepthM       float64 `json:"depth_m"`
	TemperatureC float64 `json:"temperature_c"`
	Biome        string  `json:"biome"`

	CurrentSpeedMPS  float64 `json:"current_speed_mps"`
	CurrentStability float64 `json:"current_stability"`

	HazardType     string  `json:"hazard_type,omitempty"`
	HazardSeverity float64 `json:"hazard_severity"`

	CoralHealth   float64 `json:"coral_health"`
	CoralCoverPct float64 `json:"coral_cover_pct"`
	Biodiversity  float64 `json:"biodiversity"`

	SpeciesDensity float64 `json:"species_density"`
	SpeciesThreat  float64 `json:"species_threat"`

	ResourceAbundance    float64 `json:"resource_abundance"`
	ResourceValue        float64 `json:"resource_value"`
	ResourceImpact       float64 `json:"resource_impact"`
	ExtractionDifficulty float64 `json:"extraction_difficulty"`

	POI []string `json:"poi,omitempty"`
}

// Repository provides read-only access to the loaded seafloor dataset.
// Implementations must be safe for concurrent reads.
type Repository interface {
	// Get returns the record at c, or ErrNotFound if the dataset has
	// no row for that coordinate.
	Get(c Coordinate) (CellRecord, error)

	// Bounds returns the inclusive coordinate extent of the dataset.
	Bounds() Bounds

	// Coords returns every coordinate with a record, in row-major order.
	Coords() []Coordinate
}
