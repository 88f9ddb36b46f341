package score

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	report := ValidateConfig(DefaultConfig())
	assert.True(t, report.Valid, "default config invalid: %+v", report.Errors)
}

func TestValidateConfigRejectsBadSum(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Danger.Hazard = 0.9 // group now sums to 1.4

	report := ValidateConfig(cfg)
	require.False(t, report.Valid)
	found := false
	for _, e := range report.Errors {
		if e.Field == "danger" {
			found = true
		}
	}
	assert.True(t, found, "expected a danger group sum error, got %+v", report.Errors)
}

func TestValidateConfigRejectsNegativeWeight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resource.Abundance = -0.2
	cfg.Resource.Purity = 0.85 // keep the sum at 1 so only the sign fails

	report := ValidateConfig(cfg)
	assert.False(t, report.Valid)
}

func TestValidateConfigRequiresAllProfiles(t *testing.T) {
	cfg := DefaultConfig()
	delete(cfg.Profiles, Conservation)

	report := ValidateConfig(cfg)
	require.False(t, report.Valid)
	assert.Equal(t, "profiles.conservation", report.Errors[0].Field)
}

func TestValidateConfigRejectsBadNorms(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Norms.MaxDepthM = 0

	report := ValidateConfig(cfg)
	assert.False(t, report.Valid)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("testdata", "weights.yaml"))
	require.NoError(t, err)

	assert.InDelta(t, 0.60, cfg.Danger.Hazard, 1e-9)
	assert.InDelta(t, 6000, cfg.Norms.MaxDepthM, 1e-9)
	// Sections absent from the file keep their defaults.
	assert.InDelta(t, DefaultConfig().Resource.Abundance, cfg.Resource.Abundance, 1e-9)
	assert.Len(t, cfg.Profiles, 4)

	assert.True(t, ValidateConfig(cfg).Valid)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join("testdata", "nope.yaml"))
	assert.Error(t, err)
}

func TestParseProfile(t *testing.T) {
	assert.Equal(t, Mining, ParseProfile("mining"))
	assert.Equal(t, SafeRoute, ParseProfile("safe_route"))
	assert.Equal(t, Balanced, ParseProfile(""))
	assert.Equal(t, Balanced, ParseProfile("warp_drive"))
}
