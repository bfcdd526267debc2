package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// timeColumn parses an RFC3339 timestamp stored in a TEXT column,
// naming the column in the error on failure.
func timeColumn(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed %s timestamp: %w", column, err)
	}
	return t, nil
}

// paginate builds LIMIT and OFFSET clauses for values > 0.
func paginate(limit, offset int) (string, []any) {
	var clause strings.Builder
	var args []any
	if limit > 0 {
		clause.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	if offset > 0 {
		clause.WriteString(" OFFSET ?")
		args = append(args, offset)
	}
	return clause.String(), args
}
