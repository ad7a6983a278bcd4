// Package validation provides text validation shared by administrative domains.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// disallowed matches any character outside word characters, whitespace,
// and the permitted punctuation set.
var disallowed = regexp.MustCompile(`[^\w\s\[\](),.!?:"'_$£#@+=&%*/-]`)

// Text checks that value is non-empty after trimming, within the rune
// limit, and free of disallowed characters.
func Text(field, value string, limit int) error {
	trimmed := strings.TrimSpace(value)

	if trimmed == "" {
		return fmt.Errorf("%s must not be empty", field)
	}
	if utf8.RuneCountInString(trimmed) > limit {
		return fmt.Errorf("%s exceeds %d characters", field, limit)
	}
	if found := disallowed.FindString(trimmed); found != "" {
		return fmt.Errorf("%s contains disallowed character %q", field, found)
	}

	return nil
}
