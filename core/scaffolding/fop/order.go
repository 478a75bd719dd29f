package fop

import (
	"fmt"
	"strings"
)

// Set of directions for data ordering.
const (
	ASC  = "ASC"
	DESC = "DESC"
)

// By names a store column and a direction.
type By struct {
	Field     string
	Direction string
}

func NewBy(field string, direction string) By {
	return By{Field: field, Direction: direction}
}

// ParseOrder maps an external field name to a store column through
// mappings. Empty inputs fall back to defaultOrder's parts.
func ParseOrder(mappings map[string]string, field string, direction string, defaultOrder By) (By, error) {
	by := defaultOrder

	if field != "" {
		column, ok := mappings[field]
		if !ok {
			return By{}, fmt.Errorf("unknown order field %q", field)
		}
		by.Field = column
	}

	if direction != "" {
		switch d := strings.ToUpper(direction); d {
		case ASC, DESC:
			by.Direction = d
		default:
			return By{}, fmt.Errorf("unknown direction %q", direction)
		}
	}

	return by, nil
}
