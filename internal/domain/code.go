package domain

import "strings"

// CodeSeparator joins the four symbols of a catalog code ("1-2-3-4").
const CodeSeparator = "-"

// Wildcard matches any symbol in the same position of an entry code.
const Wildcard = "$"

// CodeLength is the number of symbols in a catalog code.
const CodeLength = 4

// validSymbols is the alphabet shared by entry codes and queries.
var validSymbols = map[string]bool{
	"1": true, "2": true, "3": true, "4": true, Wildcard: true,
}

// SplitCode splits a code string into its symbols.
// Returns false if the code does not have exactly four symbols
// or contains a symbol outside the alphabet.
func SplitCode(code string) ([]string, bool) {
	parts := strings.Split(code, CodeSeparator)
	if len(parts) != CodeLength {
		return nil, false
	}
	for _, p := range parts {
		if !validSymbols[p] {
			return nil, false
		}
	}
	return parts, true
}

// JoinCode joins symbols into a code string.
func JoinCode(symbols []string) string {
	return strings.Join(symbols, CodeSeparator)
}

// ValidCode reports whether code is a well-formed 4-symbol code.
func ValidCode(code string) bool {
	_, ok := SplitCode(code)
	return ok
}

// CodeMatches reports whether an entry code matches a query code.
// The wildcard symbol in the query matches any entry symbol in the
// same position, in all four positions. Malformed codes never match.
func CodeMatches(queryCode, entryCode string) bool {
	query, ok := SplitCode(queryCode)
	if !ok {
		return false
	}
	entry, ok := SplitCode(entryCode)
	if !ok {
		return false
	}
	for i := range query {
		if query[i] == Wildcard {
			continue
		}
		if query[i] != entry[i] {
			return false
		}
	}
	return true
}
