package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReportIsValid(t *testing.T) {
	r := NewReport()
	assert.True(t, r.Valid)
	assert.Empty(t, r.Errors)
	assert.Empty(t, r.Warnings)
}

func TestAddErrorInvalidates(t *testing.T) {
	r := NewReport()
	r.AddError(Result{Level: LevelSchema, Message: "boom"})

	assert.False(t, r.Valid)
	assert.Equal(t, SeverityError, r.Errors[0].Severity)
	assert.Equal(t, "1 errors, 0 warnings, 0 info", r.Summary)
}

func TestWarningsAndInfoKeepValid(t *testing.T) {
	r := NewReport()
	r.AddWarning(Result{Level: LevelDataset, Message: "hm"})
	r.AddInfo(Result{Level: LevelDataset, Message: "fyi"})

	assert.True(t, r.Valid)
	assert.Equal(t, "0 errors, 1 warnings, 1 info", r.Summary)
}

func TestMergePropagatesInvalid(t *testing.T) {
	a := NewReport()
	a.AddWarning(Result{Level: LevelSpatial, Message: "w"})

	b := NewReport()
	b.AddError(Result{Level: LevelSchema, Message: "e"})

	a.Merge(b)
	assert.False(t, a.Valid)
	assert.Len(t, a.Errors, 1)
	assert.Len(t, a.Warnings, 1)
	assert.Equal(t, "1 errors, 1 warnings, 0 info", a.Summary)
}
