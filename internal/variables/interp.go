package variables

import (
	"errors"
	"fmt"
	"strings"
)

// Interpolate replaces {{key}} references inside s with evaluated values.
//
// Rules:
// - Escaping: \{{ and \}} produce literal braces.
// - Unknown variables are errors (to avoid silent typos).
func Interpolate(s string, values map[string]string) (string, error) {
	var out strings.Builder
	out.Grow(len(s))

	var errs []string

	for i := 0; i < len(s); {
		// Escapes
		if s[i] == '\\' && i+2 < len(s) && s[i+1] == '{' && s[i+2] == '{' {
			out.WriteString("{{")
			i += 3
			continue
		}
		if s[i] == '\\' && i+2 < len(s) && s[i+1] == '}' && s[i+2] == '}' {
			out.WriteString("}}")
			i += 3
			continue
		}

		// Interpolation
		if i+1 < len(s) && s[i] == '{' && s[i+1] == '{' {
			end := strings.Index(s[i+2:], "}}")
			if end < 0 {
				// No closing braces; treat literally.
				out.WriteByte(s[i])
				i++
				continue
			}
			end = i + 2 + end
			name := strings.TrimSpace(s[i+2 : end])
			i = end + 2

			value, ok := values[name]
			if !ok {
				errs = append(errs, fmt.Sprintf("unknown variable: %s", name))
				out.WriteString("{{" + name + "}}")
				continue
			}
			out.WriteString(value)
			continue
		}

		out.WriteByte(s[i])
		i++
	}

	if len(errs) > 0 {
		return out.String(), errors.New(strings.Join(errs, "; "))
	}
	return out.String(), nil
}
