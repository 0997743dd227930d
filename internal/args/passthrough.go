package args

import (
	"strings"

	"github.com/spf13/pflag"
)

// SplitPassthrough divides a raw token stream into a leading run of known
// flags and the trailing tokens that belong to the aliased program. The
// leading run ends at the first token that is not a registered flag; from
// there on nothing is interpreted, so flag-shaped tokens survive verbatim.
// A bare "--" also ends the leading run and is dropped.
func SplitPassthrough(flags *pflag.FlagSet, tokens []string) (leading, trailing []string) {
	i := 0
	for i < len(tokens) {
		t := tokens[i]
		if t == "--" {
			return leading, tokens[i+1:]
		}

		switch {
		case strings.HasPrefix(t, "--"):
			name := t[2:]
			inline := false
			if eq := strings.Index(name, "="); eq >= 0 {
				name = name[:eq]
				inline = true
			}
			f := flags.Lookup(name)
			if f == nil {
				return leading, tokens[i:]
			}
			leading = append(leading, t)
			i++
			if !inline && f.NoOptDefVal == "" && i < len(tokens) {
				// Value-taking flag in the separate-token form.
				leading = append(leading, tokens[i])
				i++
			}

		case strings.HasPrefix(t, "-") && len(t) > 1:
			f := flags.ShorthandLookup(t[1:2])
			if f == nil {
				return leading, tokens[i:]
			}
			leading = append(leading, t)
			i++
			if len(t) == 2 && f.NoOptDefVal == "" && i < len(tokens) {
				leading = append(leading, tokens[i])
				i++
			}

		default:
			return leading, tokens[i:]
		}
	}
	return leading, nil
}
