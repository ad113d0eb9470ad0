package judge

import "strings"

// OutputsMatch reports whether the actual output matches the expected output.
// Both sides are trimmed of leading and trailing whitespace, then compared
// byte for byte. No whitespace collapsing and no numeric tolerance.
func OutputsMatch(actual, expected string) bool {
	return strings.TrimSpace(actual) == strings.TrimSpace(expected)
}
