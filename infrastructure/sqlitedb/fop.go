package sqlitedb

import (
	"bytes"

	"github.com/jrazmi/zentask/infrastructure/sqldb"
)

// AddOrderByClause adds an ORDER BY clause, using pkField as tie breaker.
func AddOrderByClause(buf *bytes.Buffer, orderField, pkField, direction string) error {
	return sqldb.WriteOrderBy(buf, orderField, pkField, direction)
}

// AddPageClause adds LIMIT and OFFSET placeholders and their arguments.
func AddPageClause(limit, offset int, args []any, buf *bytes.Buffer) []any {
	buf.WriteString(" LIMIT ? OFFSET ?")
	return append(args, limit, offset)
}
