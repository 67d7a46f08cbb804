package registry

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/scorecard/schema"
)

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("\"%s\"", name)
	}
}

// rebind rewrites ? placeholders to $N for PostgreSQL.
func (rs *StoreImpl) rebind(query string) string {
	if rs.backend != schema.PostgreSQLBackend {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t
	}
}

// scanTime reads one timestamp column. SQLite stores it as RFC3339 text.
func scanTime(row *sql.Row, backend schema.DatabaseBackend) (time.Time, error) {
	if backend != schema.SQLiteBackend {
		var t time.Time
		err := row.Scan(&t)
		return t, err
	}
	var s string
	if err := row.Scan(&s); err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse time %q: %w", s, err)
	}
	return t, nil
}
