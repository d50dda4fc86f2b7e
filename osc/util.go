package osc

import (
	"regexp"
	"strings"
)

////
// Utility and helper functions
////

// getRegEx compiles and returns a regular expression object for the given
// address `pattern`.
func getRegEx(pattern string) (*regexp.Regexp, error) {
	r := strings.NewReplacer(
		".", `\.`, // Escape all '.' in the pattern
		"(", `\(`, // Escape all '(' in the pattern
		")", `\)`, // Escape all ')' in the pattern
		"*", "[^/]*", // A '*' matches zero or more chars within one part
		"{", "(", // Change a '{' to '('
		",", "|", // Change a ',' to '|'
		"}", ")", // Change a '}' to ')'
		"?", "[^/]", // A '?' matches one char within one part
	)

	return regexp.Compile("^" + r.Replace(pattern) + "$")
}
