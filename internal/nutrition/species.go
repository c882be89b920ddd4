package nutrition

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnsupportedSpecies = errors.New("unsupported species")
)

// Species define las categorías de mascota soportadas.
// @Enum dog, cat, bird, reptile, pocket-pet
type Species string

const (
	SpeciesDog       Species = "dog"
	SpeciesCat       Species = "cat"
	SpeciesBird      Species = "bird"
	SpeciesReptile   Species = "reptile"
	SpeciesPocketPet Species = "pocket-pet"
)

// AllSpecies en orden estable (listados, CLI, tests).
var AllSpecies = []Species{SpeciesDog, SpeciesCat, SpeciesBird, SpeciesReptile, SpeciesPocketPet}

var speciesAliases = map[string]Species{
	"dog":            SpeciesDog,
	"dogs":           SpeciesDog,
	"puppy":          SpeciesDog,
	"cat":            SpeciesCat,
	"cats":           SpeciesCat,
	"kitten":         SpeciesCat,
	"bird":           SpeciesBird,
	"birds":          SpeciesBird,
	"parrot":         SpeciesBird,
	"budgie":         SpeciesBird,
	"cockatiel":      SpeciesBird,
	"reptile":        SpeciesReptile,
	"reptiles":       SpeciesReptile,
	"gecko":          SpeciesReptile,
	"bearded dragon": SpeciesReptile,
	"pocket pet":     SpeciesPocketPet,
	"pocket pets":    SpeciesPocketPet,
	"pocketpet":      SpeciesPocketPet,
	"pocketpets":     SpeciesPocketPet,
	"hamster":        SpeciesPocketPet,
	"guinea pig":     SpeciesPocketPet,
	"rabbit":         SpeciesPocketPet,
	"chinchilla":     SpeciesPocketPet,
}

// ParseSpecies acepta el valor canónico, plurales y algunos alias comunes.
func ParseSpecies(s string) (Species, error) {
	key := NormalizeKey(s)
	if sp, ok := speciesAliases[key]; ok {
		return sp, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedSpecies, s)
}

func (s Species) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesBird, SpeciesReptile, SpeciesPocketPet:
		return true
	}
	return false
}

// Stage es la etapa usada para elegir el perfil de estándares.
type Stage string

const (
	StageGrowth Stage = "growth"
	StageAdult  Stage = "adult"
	StageSenior Stage = "senior"
)

// LifeStage es la etapa de vida declarada por el dueño.
type LifeStage string

const (
	LifeStageBaby   LifeStage = "baby"
	LifeStageYoung  LifeStage = "young"
	LifeStageAdult  LifeStage = "adult"
	LifeStageSenior LifeStage = "senior"
)

// edad (años) a partir de la cual se considera senior
var seniorAge = map[Species]float64{
	SpeciesDog:       7,
	SpeciesCat:       10,
	SpeciesBird:      15,
	SpeciesReptile:   10,
	SpeciesPocketPet: 4,
}

// edad (años) por debajo de la cual se considera cría
var babyAge = map[Species]float64{
	SpeciesDog:       1,
	SpeciesCat:       1,
	SpeciesBird:      1,
	SpeciesReptile:   1,
	SpeciesPocketPet: 0.25,
}

// ParseLifeStage interpreta "baby|young|adult|senior" o una edad numérica en años.
// Vacío o desconocido se trata como adulto.
func ParseLifeStage(sp Species, raw string) LifeStage {
	key := NormalizeKey(raw)
	switch key {
	case "baby", "puppy", "kitten", "juvenile":
		return LifeStageBaby
	case "young":
		return LifeStageYoung
	case "senior", "geriatric":
		return LifeStageSenior
	case "adult", "":
		return LifeStageAdult
	}

	age, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSuffix(key, " years"), " year"), 64)
	if err != nil || age < 0 {
		return LifeStageAdult
	}
	if age < babyAge[sp] {
		return LifeStageBaby
	}
	if s, ok := seniorAge[sp]; ok && age >= s {
		return LifeStageSenior
	}
	return LifeStageAdult
}

// Stage resuelve la etapa de estándares: baby y young -> growth.
func (l LifeStage) Stage() Stage {
	switch l {
	case LifeStageBaby, LifeStageYoung:
		return StageGrowth
	case LifeStageSenior:
		return StageSenior
	default:
		return StageAdult
	}
}

// ResolveStage es un atajo para ParseLifeStage(...).Stage().
func ResolveStage(sp Species, raw string) Stage {
	return ParseLifeStage(sp, raw).Stage()
}
