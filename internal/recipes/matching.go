package recipes

import "pet-plates/internal/nutrition"

// matcher excluye ingredientes por alergia o prohibición explícita.
//
// Un término coincide cuando sus palabras aparecen seguidas y completas en el id,
// el nombre o algún tag de alérgeno del ingrediente: "pea" no excluye "peanut",
// "peanut" sí excluye "peanut butter", "fish" excluye salmón por su tag.
type matcher struct {
	terms [][]string
	raw   []string
}

func newMatcher(lists ...[]string) matcher {
	var m matcher
	for _, list := range lists {
		for _, s := range list {
			toks := nutrition.Tokens(s)
			if len(toks) == 0 {
				continue
			}
			m.terms = append(m.terms, toks)
			m.raw = append(m.raw, s)
		}
	}
	return m
}

func (m matcher) empty() bool { return len(m.terms) == 0 }

// match devuelve el término que excluye al ingrediente.
func (m matcher) match(ing nutrition.Ingredient) (string, bool) {
	if m.empty() {
		return "", false
	}
	fields := make([][]string, 0, 2+len(ing.Allergens))
	fields = append(fields, nutrition.Tokens(ing.ID), nutrition.Tokens(ing.Name))
	for _, a := range ing.Allergens {
		fields = append(fields, nutrition.Tokens(a))
	}

	for i, term := range m.terms {
		for _, f := range fields {
			if containsRun(f, term) {
				return m.raw[i], true
			}
		}
	}
	return "", false
}

func containsRun(hay, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(hay) {
		return false
	}
	for i := 0; i+len(needle) <= len(hay); i++ {
		ok := true
		for j := range needle {
			if hay[i+j] != needle[j] {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// NameMatches es la versión pública de la regla, útil para chequear recetas ya armadas.
func NameMatches(term, name string) bool {
	return containsRun(nutrition.Tokens(name), nutrition.Tokens(term))
}
