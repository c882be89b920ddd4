package nutrition

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dogAdult() Profile {
	return Profile{
		Species:    SpeciesDog,
		Stage:      StageAdult,
		Protein:    Range{Min: 18, Max: 70},
		Fat:        Range{Min: 5.5, Max: 45},
		Fiber:      Range{Max: 8},
		Calcium:    Range{Min: 1250, Max: 6250},
		Phosphorus: Range{Min: 1000, Max: 4000},
		CaPRatio:   Range{Min: 1, Max: 2},
	}
}

// 100 g materia seca, 1000 kcal: densidades == mg absolutos.
func balanced() Totals {
	t := Totals{
		Protein: 30, Fat: 15, Fiber: 3,
		Moisture: 300, TotalGrams: 400, Kcal: 1000,
		Calcium: 2000, Phosphorus: 1500,
	}
	t.CaPRatio = ratio(t.Calcium, t.Phosphorus)
	return t
}

func hasMention(list []string, word string) bool {
	for _, s := range list {
		if strings.Contains(s, word) {
			return true
		}
	}
	return false
}

func TestValidate_BalancedIsValid(t *testing.T) {
	res := Validate(balanced(), dogAdult())
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Violations)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 100, res.Score)
}

func TestValidate_CalciumBelowMinimumIsViolation(t *testing.T) {
	tot := balanced()
	tot.Calcium = 1000 // 1000 mg/1000kcal < 1250, fósforo igual
	tot.CaPRatio = ratio(tot.Calcium, tot.Phosphorus)

	res := Validate(tot, dogAdult())
	require.False(t, res.IsValid)
	assert.True(t, hasMention(res.Violations, "Calcium"))
	assert.True(t, hasMention(res.Violations, "AAFCO"))
	// ratio 0.67 también queda fuera
	assert.True(t, hasMention(res.Violations, "bone issues"))
}

func TestValidate_CalciumMonotonicity(t *testing.T) {
	p := dogAdult()
	for _, ca := range []float64{1249, 900, 500, 0} {
		tot := balanced()
		tot.Calcium = ca
		tot.CaPRatio = ratio(tot.Calcium, tot.Phosphorus)
		res := Validate(tot, p)
		assert.False(t, res.IsValid, "calcium %v", ca)
		assert.True(t, hasMention(res.Violations, "Calcium"), "calcium %v", ca)
	}
}

func TestValidate_MaximumIsWarningUnlessCritical(t *testing.T) {
	tot := balanced()
	tot.Calcium = 7000
	tot.Phosphorus = 3900
	tot.CaPRatio = ratio(tot.Calcium, tot.Phosphorus)

	res := Validate(tot, dogAdult())
	assert.True(t, res.IsValid)
	assert.True(t, hasMention(res.Warnings, "Calcium"))

	growth := dogAdult()
	growth.Stage = StageGrowth
	growth.Calcium = Range{Min: 3000, Max: 6250, CriticalMax: true}
	growth.Phosphorus = Range{Min: 2500, Max: 4000}

	res = Validate(tot, growth)
	assert.False(t, res.IsValid)
	assert.True(t, hasMention(res.Violations, "skeletal"))
}

func TestValidate_RatioHighIsWarning(t *testing.T) {
	tot := balanced()
	tot.Calcium = 5000
	tot.Phosphorus = 1500
	tot.CaPRatio = ratio(tot.Calcium, tot.Phosphorus)

	res := Validate(tot, dogAdult())
	assert.True(t, res.IsValid)
	assert.True(t, hasMention(res.Warnings, "Ca:P"))
	assert.Equal(t, 95, res.Score)
}

func TestValidate_ZeroPhosphorusFailsRatio(t *testing.T) {
	tot := balanced()
	tot.Phosphorus = 0
	tot.CaPRatio = ratio(tot.Calcium, tot.Phosphorus)

	res := Validate(tot, dogAdult())
	assert.False(t, res.IsValid)
	assert.True(t, hasMention(res.Violations, "Phosphorus"))
	assert.True(t, hasMention(res.Violations, "Ca:P"))
}

func TestValidate_CatTaurine(t *testing.T) {
	std, err := DefaultStandards()
	require.NoError(t, err)

	tot := balanced()
	tot.Protein = 40
	tot.Calcium, tot.Phosphorus = 2000, 1600
	tot.CaPRatio = ratio(tot.Calcium, tot.Phosphorus)
	tot.Taurine = 100

	res, err := std.Validate(tot, SpeciesCat, StageAdult)
	require.NoError(t, err)
	assert.False(t, res.IsValid)
	assert.True(t, hasMention(res.Violations, "life-threatening"))

	tot.Taurine = 400
	res, err = std.Validate(tot, SpeciesCat, StageAdult)
	require.NoError(t, err)
	assert.True(t, res.IsValid, "violations: %v", res.Violations)
}

func TestValidate_LowProteinAndFiberCap(t *testing.T) {
	tot := balanced()
	tot.Protein = 10
	tot.Fiber = 12

	res := Validate(tot, dogAdult())
	assert.False(t, res.IsValid)
	assert.True(t, hasMention(res.Violations, "Protein"))
	assert.True(t, hasMention(res.Warnings, "Fiber"))
}

func TestDefaultStandards_AllSpeciesAndStages(t *testing.T) {
	std, err := DefaultStandards()
	require.NoError(t, err)

	for _, sp := range AllSpecies {
		for _, st := range []Stage{StageGrowth, StageAdult, StageSenior} {
			p, err := std.Profile(sp, st)
			require.NoError(t, err, "%s/%s", sp, st)
			assert.Equal(t, sp, p.Species)
			assert.Equal(t, st, p.Stage)
			assert.True(t, p.CaPRatio.HasMin())
		}
	}

	p, err := std.Profile(SpeciesDog, StageGrowth)
	require.NoError(t, err)
	assert.True(t, p.Calcium.CriticalMax)

	p, err = std.Profile(SpeciesCat, StageAdult)
	require.NoError(t, err)
	assert.True(t, p.Taurine.HasMin())
}

func TestStandards_ProfileFallbacks(t *testing.T) {
	std := NewStandards(dogAdult())

	p, err := std.Profile(SpeciesDog, StageSenior)
	require.NoError(t, err)
	assert.Equal(t, StageAdult, p.Stage)

	_, err = std.Profile(SpeciesCat, StageAdult)
	assert.ErrorIs(t, err, ErrNoStandard)
}
