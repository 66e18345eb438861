package hooks

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateMatcher accepts "", "*", a tool name, or a "a|b|c" list of names
func ValidateMatcher(matcher string) error {
	if matcher == "" || matcher == "*" {
		return nil
	}
	for _, part := range strings.Split(matcher, "|") {
		if part == "" {
			return fmt.Errorf("matcher %q has an empty alternative", matcher)
		}
		if strings.IndexFunc(part, unicode.IsSpace) >= 0 {
			return fmt.Errorf("matcher %q must not contain whitespace", matcher)
		}
		if strings.ContainsAny(part, "*?[]") {
			return fmt.Errorf("matcher %q: patterns other than a lone * are not supported", matcher)
		}
	}
	return nil
}

// MatchTool reports whether matcher selects the tool. Alternatives are
// compared against both the bare and the server-qualified name.
func MatchTool(matcher, toolName, qualifiedName string) bool {
	if matcher == "" || matcher == "*" {
		return true
	}
	for _, part := range strings.Split(matcher, "|") {
		if part == toolName || part == qualifiedName {
			return true
		}
	}
	return false
}
