package nutrition

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeKey baja a minúsculas, cambia '_' y '-' por espacio y colapsa espacios.
// Es la identidad canónica de ingredientes, especies y tags.
func NormalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Tokens devuelve las palabras (letras y dígitos) de la clave normalizada, con plural simple plegado
// ("sardines" -> "sardine", "berries" -> "berry").
func Tokens(s string) []string {
	fields := strings.FieldsFunc(NormalizeKey(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, singular(f))
	}
	return out
}

func singular(tok string) string {
	n := utf8.RuneCountInString(tok)
	switch {
	case n > 4 && strings.HasSuffix(tok, "ies"):
		return strings.TrimSuffix(tok, "ies") + "y"
	case n > 3 && strings.HasSuffix(tok, "s") && !strings.HasSuffix(tok, "ss"):
		return strings.TrimSuffix(tok, "s")
	default:
		return tok
	}
}
