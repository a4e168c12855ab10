package postgrest

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"
)

// RestPath is the PostgREST mount point under a Supabase project URL.
const RestPath = "/rest/v1/"

type Condition interface {
	appendQuery(buf *bytebufferpool.ByteBuffer)
}

type eqCondition struct {
	column string
	value  any
}

// Eq matches rows whose column equals value (column=eq.value).
func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) appendQuery(buf *bytebufferpool.ByteBuffer) {
	appendFilter(buf, c.column, "eq."+FormatValue(c.value))
}

// EqAll turns a column->value map into Eq conditions in column order, so the query string is deterministic.
func EqAll(filters map[string]any) []Condition {
	if len(filters) == 0 {
		return nil
	}
	columns := make([]string, 0, len(filters))
	for column := range filters {
		if strings.TrimSpace(column) == "" {
			continue
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)

	out := make([]Condition, 0, len(columns))
	for _, column := range columns {
		out = append(out, Eq(column, filters[column]))
	}
	return out
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToPath renders the request path and query, e.g. /rest/v1/player_stats?select=*&id=eq.1.
func (b *SelectBuilder) ToPath() (string, error) {
	if len(b.columns) == 0 {
		return "", fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", fmt.Errorf("select table is required")
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendTable(buf, b.table)
	_, _ = buf.WriteString("?select=")
	_, _ = buf.WriteString(strings.Join(b.columns, ","))
	for _, c := range b.where {
		c.appendQuery(buf)
	}

	return buf.String(), nil
}

// RowsBuilder addresses rows for PATCH and DELETE.
type RowsBuilder struct {
	table string
	where []Condition
}

func Rows(table string) *RowsBuilder {
	return &RowsBuilder{table: table}
}

func (b *RowsBuilder) Where(conditions ...Condition) *RowsBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToPath renders the request path. Mutations without a filter are rejected since they would hit every row.
func (b *RowsBuilder) ToPath() (string, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", fmt.Errorf("table is required")
	}
	if len(b.where) == 0 {
		return "", fmt.Errorf("row filter is required")
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendTable(buf, b.table)
	for i, c := range b.where {
		start := buf.Len()
		c.appendQuery(buf)
		if i == 0 {
			buf.B[start] = '?'
		}
	}

	return buf.String(), nil
}

// Table renders the collection path used for inserts.
func Table(table string) (string, error) {
	if strings.TrimSpace(table) == "" {
		return "", fmt.Errorf("table is required")
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	appendTable(buf, table)
	return buf.String(), nil
}

// FormatValue renders a filter operand the way PostgREST expects it.
func FormatValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return "null"
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case time.Time:
		return typed.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(typed)
	}
}

func appendTable(buf *bytebufferpool.ByteBuffer, table string) {
	_, _ = buf.WriteString(RestPath)
	_, _ = buf.WriteString(url.PathEscape(strings.TrimSpace(table)))
}

func appendFilter(buf *bytebufferpool.ByteBuffer, column, expr string) {
	_ = buf.WriteByte('&')
	_, _ = buf.WriteString(url.QueryEscape(column))
	_ = buf.WriteByte('=')
	_, _ = buf.WriteString(url.QueryEscape(expr))
}
