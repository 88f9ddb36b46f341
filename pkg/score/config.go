package score

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rayanamir1/AbyssGPT/pkg/validation"
)

// Profile names an objective weighting scheme for combined scores.
type Profile string

const (
	Mining       Profile = "mining"
	Conservation Profile = "conservation"
	SafeRoute    Profile = "safe_route"
	Balanced     Profile = "balanced"
)

// Profiles lists every built-in objective profile.
func Profiles() []Profile {
	return []Profile{Mining, Conservation, SafeRoute, Balanced}
}

// ParseProfile maps a profile name to its constant, defaulting to
// Balanced for anything unrecognized.
func ParseProfile(name string) Profile {
	switch Profile(name) {
	case Mining, Conservation, SafeRoute, Balanced:
		return Profile(name)
	default:
		return Balanced
	}
}

// DangerWeights blends the risk inputs. Weights must sum to 1.
type DangerWeights struct {
	Depth        float64 `yaml:"depth"`
	Hazard       float64 `yaml:"hazard"`
	CurrentSpeed float64 `yaml:"current_speed"`
	Instability  float64 `yaml:"instability"`
}

// ResourceWeights blends the economic inputs. Weights must sum to 1.
type ResourceWeights struct {
	Abundance float64 `yaml:"abundance"`
	Value     float64 `yaml:"value"`
	Purity    float64 `yaml:"purity"`
}

// EcoWeights blends the ecological-sensitivity inputs. Weights must sum to 1.
type EcoWeights struct {
	CoralFragility float64 `yaml:"coral_fragility"`
	CoralCover     float64 `yaml:"coral_cover"`
	Biodiversity   float64 `yaml:"biodiversity"`
	SpeciesDensity float64 `yaml:"species_density"`
	SpeciesThreat  float64 `yaml:"species_threat"`
}

// ProfileWeights blends the three sub-scores into a combined cost.
// InvResource weights (ScaleMax - Resource), so resource-rich cells get
// cheaper as the weight grows. Weights must sum to 1.
type ProfileWeights struct {
	Danger      float64 `yaml:"danger"`
	EcoImpact   float64 `yaml:"eco_impact"`
	InvResource float64 `yaml:"inv_resource"`
}

// Norms holds the raw-attribute normalization caps.
type Norms struct {
	MaxDepthM     float64 `yaml:"max_depth_m"`
	MaxCurrentMPS float64 `yaml:"max_current_mps"`
}

// Config is the full weight table for the scoring model. Coefficients
// are deliberately configurable: the qualitative orderings are the
// contract, not the numbers.
type Config struct {
	Danger    DangerWeights              `yaml:"danger"`
	Resource  ResourceWeights            `yaml:"resource"`
	EcoImpact EcoWeights                 `yaml:"eco_impact"`
	Profiles  map[Profile]ProfileWeights `yaml:"profiles"`
	Norms     Norms                      `yaml:"normalization"`
}

// DefaultConfig returns the tuned baseline weights. Hazard severity
// dominates danger; mining trades resource against ecological impact
// evenly; conservation leans hard on sensitivity.
func DefaultConfig() Config {
	return Config{
		Danger: DangerWeights{
			Depth:        0.25,
			Hazard:       0.50,
			CurrentSpeed: 0.10,
			Instability:  0.15,
		},
		Resource: ResourceWeights{
			Abundance: 0.50,
			Value:     0.35,
			Purity:    0.15,
		},
		EcoImpact: EcoWeights{
			CoralFragility: 0.25,
			CoralCover:     0.20,
			Biodiversity:   0.15,
			SpeciesDensity: 0.20,
			SpeciesThreat:  0.20,
		},
		Profiles: map[Profile]ProfileWeights{
			SafeRoute:    {Danger: 1, EcoImpact: 0, InvResource: 0},
			Mining:       {Danger: 0, EcoImpact: 0.5, InvResource: 0.5},
			Conservation: {Danger: 0, EcoImpact: 0.75, InvResource: 0.25},
			Balanced:     {Danger: 1.0 / 3, EcoImpact: 1.0 / 3, InvResource: 1.0 / 3},
		},
		Norms: Norms{
			MaxDepthM:     7000,
			MaxCurrentMPS: 5,
		},
	}
}

// LoadConfig reads a weight table from a YAML file. Fields omitted from
// the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading weights file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing weights YAML: %w", err)
	}
	return cfg, nil
}

// ValidateConfig performs schema validation on a weight table: every
// weight non-negative, every group summing to 1, caps positive, and all
// four profiles present.
func ValidateConfig(cfg Config) *validation.Report {
	r := validation.NewReport()

	checkGroup(r, "danger", map[string]float64{
		"depth":         cfg.Danger.Depth,
		"hazard":        cfg.Danger.Hazard,
		"current_speed": cfg.Danger.CurrentSpeed,
		"instability":   cfg.Danger.Instability,
	})
	checkGroup(r, "resource", map[string]float64{
		"abundance": cfg.Resource.Abundance,
		"value":     cfg.Resource.Value,
		"purity":    cfg.Resource.Purity,
	})
	checkGroup(r, "eco_impact", map[string]float64{
		"coral_fragility": cfg.EcoImpact.CoralFragility,
		"coral_cover":     cfg.EcoImpact.CoralCover,
		"biodiversity":    cfg.EcoImpact.Biodiversity,
		"species_density": cfg.EcoImpact.SpeciesDensity,
		"species_threat":  cfg.EcoImpact.SpeciesThreat,
	})

	for _, p := range Profiles() {
		w, ok := cfg.Profiles[p]
		if !ok {
			r.AddError(validation.Result{
				Level:    validation.LevelSchema,
				Message:  fmt.Sprintf("profile %q missing from weight table", p),
				Field:    fmt.Sprintf("profiles.%s", p),
				Expected: "danger/eco_impact/inv_resource weights summing to 1",
			})
			continue
		}
		checkGroup(r, fmt.Sprintf("profiles.%s", p), map[string]float64{
			"danger":       w.Danger,
			"eco_impact":   w.EcoImpact,
			"inv_resource": w.InvResource,
		})
	}

	if cfg.Norms.MaxDepthM <= 0 {
		r.AddError(validation.Result{
			Level:       validation.LevelSchema,
			Message:     "normalization.max_depth_m must be positive",
			Field:       "normalization.max_depth_m",
			ActualValue: cfg.Norms.MaxDepthM,
			Expected:    "> 0",
		})
	}
	if cfg.Norms.MaxCurrentMPS <= 0 {
		r.AddError(validation.Result{
			Level:       validation.LevelSchema,
			Message:     "normalization.max_current_mps must be positive",
			Field:       "normalization.max_current_mps",
			ActualValue: cfg.Norms.MaxCurrentMPS,
			Expected:    "> 0",
		})
	}

	return r
}

func checkGroup(r *validation.Report, group string, weights map[string]float64) {
	sum := 0.0
	for name, w := range weights {
		if w < 0 {
			r.AddError(validation.Result{
				Level:       validation.LevelSchema,
				Message:     fmt.Sprintf("%s.%s must be non-negative", group, name),
				Field:       fmt.Sprintf("%s.%s", group, name),
				ActualValue: w,
				Expected:    ">= 0",
			})
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 0.01 {
		r.AddError(validation.Result{
			Level:       validation.LevelSchema,
			Message:     fmt.Sprintf("%s weights must sum to 1.0 (got %.4f)", group, sum),
			Field:       group,
			ActualValue: sum,
			Expected:    "1.0 (±0.01)",
			Suggestions: []string{fmt.Sprintf("rescale the %s weights so they sum to 1.0", group)},
		})
	}
}
