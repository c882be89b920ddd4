package nutrition

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoStandard       = errors.New("no nutrient standard for species/stage")
	ErrInvalidStandards = errors.New("invalid standards table")
)

//go:embed data/standards.yaml
var standardsYAML []byte

// Range es un rango [Min, Max]. Max == 0 significa sin máximo.
// CriticalMax convierte el exceso en violación en lugar de warning.
type Range struct {
	Min         float64 `yaml:"min" json:"min"`
	Max         float64 `yaml:"max" json:"max,omitempty"`
	CriticalMax bool    `yaml:"critical_max" json:"critical_max,omitempty"`
}

func (r Range) HasMin() bool { return r.Min > 0 }
func (r Range) HasMax() bool { return r.Max > 0 }

// Bounded indica que el rango tiene punto medio (sirve para puntuar cercanía).
func (r Range) Bounded() bool { return r.HasMax() && r.Max > r.Min }

func (r Range) Mid() float64 { return (r.Min + r.Max) / 2 }

// Profile es la tabla de requerimientos para una especie y etapa.
// Proteína/grasa/fibra en % materia seca; calcio, fósforo y taurina en mg/1000 kcal.
type Profile struct {
	Species Species `yaml:"-" json:"species"`
	Stage   Stage   `yaml:"-" json:"stage"`

	Protein    Range `yaml:"protein" json:"protein"`
	Fat        Range `yaml:"fat" json:"fat"`
	Fiber      Range `yaml:"fiber" json:"fiber"`
	Calcium    Range `yaml:"calcium" json:"calcium"`
	Phosphorus Range `yaml:"phosphorus" json:"phosphorus"`
	CaPRatio   Range `yaml:"ca_p_ratio" json:"ca_p_ratio"`

	// Nutriente crítico por especie (taurina en gatos). Min == 0: no aplica.
	Taurine Range `yaml:"taurine" json:"taurine,omitempty"`
}

// Standards indexa perfiles por especie y etapa. Solo lectura.
type Standards struct {
	profiles map[Species]map[Stage]Profile
}

// LoadStandards lee la tabla YAML: species -> stage -> profile.
func LoadStandards(r io.Reader) (*Standards, error) {
	var raw map[string]map[string]Profile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStandards, err)
	}

	s := &Standards{profiles: make(map[Species]map[Stage]Profile, len(raw))}
	for spName, stages := range raw {
		sp, err := ParseSpecies(spName)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStandards, err)
		}
		byStage := make(map[Stage]Profile, len(stages))
		for stName, p := range stages {
			st := Stage(NormalizeKey(stName))
			switch st {
			case StageGrowth, StageAdult, StageSenior:
			default:
				return nil, fmt.Errorf("%w: %s: unknown stage %q", ErrInvalidStandards, sp, stName)
			}
			p.Species = sp
			p.Stage = st
			byStage[st] = p
		}
		s.profiles[sp] = byStage
	}
	return s, nil
}

// NewStandards arma una tabla a partir de perfiles ya construidos (tests, datos sintéticos).
func NewStandards(profiles ...Profile) *Standards {
	s := &Standards{profiles: make(map[Species]map[Stage]Profile)}
	for _, p := range profiles {
		if s.profiles[p.Species] == nil {
			s.profiles[p.Species] = make(map[Stage]Profile)
		}
		s.profiles[p.Species][p.Stage] = p
	}
	return s
}

func DefaultStandards() (*Standards, error) {
	return LoadStandards(bytes.NewReader(standardsYAML))
}

// Profile devuelve el perfil; si falta la etapa pedida cae al perfil adulto.
func (s *Standards) Profile(sp Species, st Stage) (Profile, error) {
	stages, ok := s.profiles[sp]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrNoStandard, sp)
	}
	if p, ok := stages[st]; ok {
		return p, nil
	}
	if p, ok := stages[StageAdult]; ok {
		return p, nil
	}
	return Profile{}, fmt.Errorf("%w: %s/%s", ErrNoStandard, sp, st)
}

// Validate busca el perfil de la especie/etapa y valida contra él.
func (s *Standards) Validate(t Totals, sp Species, st Stage) (Result, error) {
	p, err := s.Profile(sp, st)
	if err != nil {
		return Result{}, err
	}
	return Validate(t, p), nil
}
