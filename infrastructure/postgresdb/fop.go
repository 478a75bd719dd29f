package postgresdb

import (
	"bytes"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/zentask/infrastructure/sqldb"
)

// AddOrderByClause adds an ORDER BY clause, using pkField as tie breaker.
func AddOrderByClause(buf *bytes.Buffer, orderField, pkField, direction string) error {
	return sqldb.WriteOrderBy(buf, orderField, pkField, direction)
}

// AddLimitClause adds LIMIT clause to the query buffer
func AddLimitClause(limit int, data pgx.NamedArgs, buf *bytes.Buffer) {
	buf.WriteString(" LIMIT @limit")
	data["limit"] = limit
}

// AddPageClause adds LIMIT and OFFSET for offset pagination.
func AddPageClause(limit, offset int, data pgx.NamedArgs, buf *bytes.Buffer) {
	AddLimitClause(limit, data, buf)
	buf.WriteString(" OFFSET @offset")
	data["offset"] = offset
}

// AliasedOrderField creates an aliased field name for queries with table aliases
func AliasedOrderField(field string, alias string) string {
	return fmt.Sprintf("%s.%s", alias, field)
}
