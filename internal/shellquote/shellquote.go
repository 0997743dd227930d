// Package shellquote renders argv tokens as shell-safe command-line text.
package shellquote

import "strings"

// specials are bytes a POSIX shell would interpret inside an unquoted word.
const specials = " \t\n\"'`$&|;<>(){}[]*?!#~\\"

// Quote wraps s in single quotes, escaping any internal single quotes.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// QuoteIfNeeded quotes tokens the shell would otherwise reinterpret, so an
// argv can be appended to a command line and re-parsed into the same words.
func QuoteIfNeeded(s string) string {
	if s == "" {
		return "''"
	}
	if strings.ContainsAny(s, specials) {
		return Quote(s)
	}
	return s
}

// Join renders argv as a single command-line fragment separated by spaces.
func Join(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = QuoteIfNeeded(arg)
	}
	return strings.Join(quoted, " ")
}
