package sqldb

import (
	"bytes"
	"fmt"
	"strings"
)

// Set of directions for data ordering.
const (
	ASC  = "ASC"
	DESC = "DESC"
)

// WriteOrderBy appends an ORDER BY clause for orderField, with pkField as a
// tie breaker in the same direction. NULLs sort last in both directions so
// postgres and sqlite agree.
func WriteOrderBy(buf *bytes.Buffer, orderField, pkField, direction string) error {
	dir := strings.ToUpper(direction)
	if dir != ASC && dir != DESC {
		return fmt.Errorf("invalid order direction: %s", direction)
	}

	quotedOrder, err := QuoteIdentifier(orderField)
	if err != nil {
		return fmt.Errorf("invalid order field name: %w", err)
	}
	fmt.Fprintf(buf, " ORDER BY %s %s NULLS LAST", quotedOrder, dir)

	if pkField != "" && pkField != orderField {
		quotedPK, err := QuoteIdentifier(pkField)
		if err != nil {
			return fmt.Errorf("invalid pk field name: %w", err)
		}
		fmt.Fprintf(buf, ", %s %s", quotedPK, dir)
	}
	return nil
}
