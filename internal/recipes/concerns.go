package recipes

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"

	"pet-plates/internal/nutrition"

	"gopkg.in/yaml.v3"
)

//go:embed data/concerns.yaml
var concernsYAML []byte

// Concern describe qué ingredientes ayudan o conviene evitar para una condición.
type Concern struct {
	Name             string   `yaml:"-" json:"name"`
	Aliases          []string `yaml:"aliases" json:"aliases,omitempty"`
	Beneficial       []string `yaml:"beneficial" json:"beneficial"`
	Avoid            []string `yaml:"avoid" json:"avoid"`
	CalorieAdjustPct float64  `yaml:"calorie_adjust_pct" json:"calorie_adjust_pct,omitempty"`

	beneficial map[string]struct{}
	avoid      map[string]struct{}
}

func (c *Concern) Helps(ingredientID string) bool {
	_, ok := c.beneficial[nutrition.NormalizeKey(ingredientID)]
	return ok
}

func (c *Concern) Hurts(ingredientID string) bool {
	_, ok := c.avoid[nutrition.NormalizeKey(ingredientID)]
	return ok
}

// Concerns es la tabla de condiciones, indexada por nombre y alias normalizados.
type Concerns struct {
	byKey map[string]*Concern
	names []string
}

func LoadConcerns(r io.Reader) (*Concerns, error) {
	var f struct {
		Concerns map[string]*Concern `yaml:"concerns"`
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("load concerns: %w", err)
	}

	cs := &Concerns{byKey: make(map[string]*Concern)}
	for name, c := range f.Concerns {
		if c == nil {
			c = &Concern{}
		}
		c.Name = name
		c.beneficial = keySet(c.Beneficial)
		c.avoid = keySet(c.Avoid)

		for _, k := range append([]string{name}, c.Aliases...) {
			key := nutrition.NormalizeKey(k)
			if prev, dup := cs.byKey[key]; dup && prev != c {
				return nil, fmt.Errorf("load concerns: %q used by %s and %s", k, prev.Name, name)
			}
			cs.byKey[key] = c
		}
		cs.names = append(cs.names, name)
	}
	sort.Strings(cs.names)
	return cs, nil
}

func DefaultConcerns() (*Concerns, error) {
	return LoadConcerns(bytes.NewReader(concernsYAML))
}

func keySet(list []string) map[string]struct{} {
	out := make(map[string]struct{}, len(list))
	for _, s := range list {
		out[nutrition.NormalizeKey(s)] = struct{}{}
	}
	return out
}

// Resolve traduce los tags del dueño a condiciones conocidas; los desconocidos se ignoran.
func (cs *Concerns) Resolve(tags []string) []*Concern {
	if cs == nil {
		return nil
	}
	seen := map[*Concern]bool{}
	out := make([]*Concern, 0, len(tags))
	for _, t := range tags {
		c, ok := cs.byKey[nutrition.NormalizeKey(t)]
		if !ok || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func (cs *Concerns) Names() []string {
	if cs == nil {
		return nil
	}
	return append([]string(nil), cs.names...)
}
