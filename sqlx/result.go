package sqlx

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/samber/lo"
)

// Row is one result row with every cell rendered as text, verbatim.
type Row []string

// ResultSet is a fully read result.
type ResultSet struct {
	Columns []string
	Rows    []Row
}

func readAll(rows *sql.Rows) (ResultSet, error) {
	cols, err := rows.Columns()
	if err != nil {
		return ResultSet{}, err
	}
	rs := ResultSet{Columns: cols, Rows: make([]Row, 0)}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := lo.Map(vals, func(_ any, i int) any { return &vals[i] })
		if err := rows.Scan(ptrs...); err != nil {
			return ResultSet{}, err
		}
		rs.Rows = append(rs.Rows, lo.Map(vals, func(v any, _ int) string { return Cell(v) }))
	}
	return rs, rows.Err()
}

// Cell renders a scanned driver value as display text without transforming it.
// NULL becomes the empty string; dates without a time-of-day print as YYYY-MM-DD.
func Cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format(time.DateOnly)
		}
		return t.Format(time.DateTime)
	default:
		return fmt.Sprint(t)
	}
}
