// Package sqldb holds dialect-neutral SQL helpers shared by the postgres
// and sqlite drivers.
package sqldb

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	dangerousChars = regexp.MustCompile(`[;'"\\()]`)
	segmentPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
)

// QuoteIdentifier validates and double-quotes a column or table name.
// It accepts "col", "alias.col" and "table alias". Both postgres and
// sqlite accept the double-quoted form.
func QuoteIdentifier(name string) (string, error) {
	if dangerousChars.MatchString(name) {
		return "", fmt.Errorf("identifier contains dangerous characters: %s", name)
	}

	parts := strings.Split(name, " ")
	if len(parts) > 2 {
		return "", fmt.Errorf("invalid identifier format (too many parts): %s", name)
	}

	quoted, err := quoteDotted(parts[0])
	if err != nil {
		return "", err
	}
	if len(parts) == 1 {
		return quoted, nil
	}

	if !segmentPattern.MatchString(parts[1]) {
		return "", fmt.Errorf("invalid identifier alias: %s", parts[1])
	}
	return fmt.Sprintf(`%s "%s"`, quoted, parts[1]), nil
}

func quoteDotted(name string) (string, error) {
	segments := strings.Split(name, ".")
	if len(segments) > 2 {
		return "", fmt.Errorf("invalid identifier format (too many segments): %s", name)
	}
	for i, seg := range segments {
		if !segmentPattern.MatchString(seg) {
			return "", fmt.Errorf("invalid identifier segment at position %d: %s", i, seg)
		}
		segments[i] = `"` + seg + `"`
	}
	return strings.Join(segments, "."), nil
}
