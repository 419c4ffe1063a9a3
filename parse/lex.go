package parse

import "strings"

// Split tokenizes a raw input line on runs of whitespace. There are no
// quoting or escaping semantics; blank input yields an empty token list.
func Split(s string) []string {
	return strings.Fields(s)
}
