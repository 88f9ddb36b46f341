package grid

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rayanamir1/AbyssGPT/pkg/validation"
)

// Dataset table filenames expected inside a data directory.
const (
	cellsFile     = "cells.csv"
	currentsFile  = "currents.csv"
	hazardsFile   = "hazards.csv"
	coralsFile    = "corals.csv"
	resourcesFile = "resources.csv"
	lifeFile      = "life.csv"
	poiFile       = "poi.csv"
)

// LoadDir reads every dataset table from dir and merges them into one
// record per coordinate. cells.csv is the authoritative cell list; the
// remaining tables layer attributes onto it. Rows in auxiliary tables
// that reference a coordinate absent from cells.csv are dropped with a
// warning. Missing auxiliary files are tolerated: the affected
// attributes keep their conservative defaults (zero resource, stable
// current), which is the same data-gap handling the scoring layer
// applies per cell.
func LoadDir(dir string) (*MemoryRepository, *validation.Report, error) {
	report := validation.NewReport()

	base, err := readTable(filepath.Join(dir, cellsFile))
	if err != nil {
		return nil, report, fmt.Errorf("loading %s: %w", cellsFile, err)
	}

	cells := make(map[Coordinate]CellRecord, len(base))
	for _, row := range base {
		c, ok := rowCoord(row)
		if !ok {
			report.AddWarning(validation.Result{
				Level:   validation.LevelDataset,
				Message: "cells.csv row without valid row/col, skipped",
			})
			continue
		}
		cells[c] = CellRecord{
			DepthM:           row.float("depth_m", 0),
			TemperatureC:     row.float("temperature_c", 0),
			Biome:            row.text("biome"),
			CurrentStability: 1, // overridden by currents.csv when present
		}
	}
	if len(cells) == 0 {
		return nil, report, fmt.Errorf("loading %s: no valid cell rows", cellsFile)
	}

	loadAux(dir, currentsFile, cells, report, func(rec *CellRecord, row record) {
		rec.CurrentSpeedMPS = row.float("speed_mps", 0)
		rec.CurrentStability = row.float("stability", 1)
	})
	loadAux(dir, hazardsFile, cells, report, func(rec *CellRecord, row record) {
		// Keep the worst hazard when a cell has several.
		sev := row.float("severity", 0)
		if sev >= rec.HazardSeverity {
			rec.HazardSeverity = sev
			rec.HazardType = row.text("type")
		}
	})
	loadAux(dir, coralsFile, cells, report, func(rec *CellRecord, row record) {
		rec.CoralCoverPct = row.float("coral_cover_pct", 0)
		rec.CoralHealth = row.float("health_index", 0)
		rec.Biodiversity = row.float("biodiversity_index", 0)
	})
	loadAux(dir, resourcesFile, cells, report, func(rec *CellRecord, row record) {
		rec.ResourceAbundance = row.float("abundance", 0)
		rec.ResourceValue = row.float("economic_value", 0)
		rec.ResourceImpact = row.float("environmental_impact", 0)
		rec.ExtractionDifficulty = row.float("extraction_difficulty", 0)
	})
	loadAux(dir, lifeFile, cells, report, func(rec *CellRecord, row record) {
		// Densities accumulate across species; threat keeps the max.
		rec.SpeciesDensity += row.float("density", 0)
		if t := row.float("threat_level", 0); t > rec.SpeciesThreat {
			rec.SpeciesThreat = t
		}
	})
	loadAux(dir, poiFile, cells, report, func(rec *CellRecord, row record) {
		if name := row.text("name"); name != "" {
			rec.POI = append(rec.POI, name)
		}
	})

	repo := NewMemoryRepository(cells)
	report.AddInfo(validation.Result{
		Level: validation.LevelDataset,
		Message: fmt.Sprintf("loaded %d cells spanning rows %d-%d, cols %d-%d",
			repo.Len(), repo.bounds.Min.Row, repo.bounds.Max.Row,
			repo.bounds.Min.Col, repo.bounds.Max.Col),
	})
	return repo, report, nil
}

// loadAux reads one auxiliary table and applies each row to the matching
// cell record. A missing file is a warning, not an error.
func loadAux(dir, name string, cells map[Coordinate]CellRecord, report *validation.Report, apply func(*CellRecord, record)) {
	rows, err := readTable(filepath.Join(dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			report.AddWarning(validation.Result{
				Level:   validation.LevelDataset,
				Message: fmt.Sprintf("%s not found, defaults apply", name),
				Field:   name,
			})
			return
		}
		report.AddError(validation.Result{
			Level:   validation.LevelDataset,
			Message: fmt.Sprintf("reading %s: %v", name, err),
			Field:   name,
		})
		return
	}

	orphans := 0
	for _, row := range rows {
		c, ok := rowCoord(row)
		if !ok {
			continue
		}
		rec, exists := cells[c]
		if !exists {
			orphans++
			continue
		}
		apply(&rec, row)
		cells[c] = rec
	}
	if orphans > 0 {
		report.AddWarning(validation.Result{
			Level:       validation.LevelDataset,
			Message:     fmt.Sprintf("%s: %d rows reference coordinates absent from cells.csv", name, orphans),
			Field:       name,
			ActualValue: orphans,
		})
	}
}

// record is one parsed CSV row, keyed by header name.
type record map[string]string

func (r record) text(key string) string { return r[key] }

// float parses a numeric column, substituting def for missing, empty,
// or non-finite values so data gaps never poison downstream scores.
func (r record) float(key string, def float64) float64 {
	raw, ok := r[key]
	if !ok || raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

func rowCoord(r record) (Coordinate, bool) {
	row, err1 := strconv.Atoi(r["row"])
	col, err2 := strconv.Atoi(r["col"])
	if err1 != nil || err2 != nil {
		return Coordinate{}, false
	}
	return Coordinate{Row: row, Col: col}, true
}

// readTable parses a CSV file into header-keyed records. Short rows are
// padded by header position; extra fields are ignored.
func readTable(path string) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}

	var rows []record
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(record, len(header))
		for i, h := range header {
			if i < len(fields) {
				row[h] = fields[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
