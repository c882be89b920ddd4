package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpecies(t *testing.T) {
	cases := map[string]Species{
		"dog":         SpeciesDog,
		"Dogs":        SpeciesDog,
		" cats ":      SpeciesCat,
		"birds":       SpeciesBird,
		"Reptiles":    SpeciesReptile,
		"pocket-pets": SpeciesPocketPet,
		"pocket_pet":  SpeciesPocketPet,
		"Guinea Pig":  SpeciesPocketPet,
	}
	for in, want := range cases {
		got, err := ParseSpecies(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSpecies("dragon")
	assert.ErrorIs(t, err, ErrUnsupportedSpecies)
	_, err = ParseSpecies("")
	assert.ErrorIs(t, err, ErrUnsupportedSpecies)
}

func TestSpeciesValid(t *testing.T) {
	for _, sp := range AllSpecies {
		assert.True(t, sp.Valid(), sp)
	}
	assert.False(t, Species("Dogs").Valid())
}

func TestParseLifeStage(t *testing.T) {
	cases := []struct {
		sp   Species
		raw  string
		want LifeStage
		st   Stage
	}{
		{SpeciesDog, "", LifeStageAdult, StageAdult},
		{SpeciesDog, "baby", LifeStageBaby, StageGrowth},
		{SpeciesDog, "Young", LifeStageYoung, StageGrowth},
		{SpeciesDog, "senior", LifeStageSenior, StageSenior},
		{SpeciesDog, "0.5", LifeStageBaby, StageGrowth},
		{SpeciesDog, "3", LifeStageAdult, StageAdult},
		{SpeciesDog, "7", LifeStageSenior, StageSenior},
		{SpeciesDog, "9 years", LifeStageSenior, StageSenior},
		{SpeciesCat, "8", LifeStageAdult, StageAdult},
		{SpeciesCat, "12", LifeStageSenior, StageSenior},
		{SpeciesPocketPet, "4", LifeStageSenior, StageSenior},
		{SpeciesPocketPet, "0.1", LifeStageBaby, StageGrowth},
		{SpeciesBird, "ancient", LifeStageAdult, StageAdult},
		{SpeciesReptile, "-2", LifeStageAdult, StageAdult},
	}
	for _, c := range cases {
		got := ParseLifeStage(c.sp, c.raw)
		assert.Equal(t, c.want, got, "%s %q", c.sp, c.raw)
		assert.Equal(t, c.st, ResolveStage(c.sp, c.raw), "%s %q", c.sp, c.raw)
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t, "chicken thigh", NormalizeKey("  Chicken_Thigh "))
	assert.Equal(t, "dubia roaches", NormalizeKey("dubia-roaches"))
	assert.Equal(t, []string{"sardine"}, Tokens("Sardines"))
	assert.Equal(t, []string{"blueberry"}, Tokens("blueberries"))
	assert.Equal(t, []string{"pea"}, Tokens("peas"))
	assert.Equal(t, []string{"grass"}, Tokens("grass"))
	assert.Equal(t, []string{"oat"}, Tokens("oats"))
	assert.Empty(t, Tokens("   "))
}
