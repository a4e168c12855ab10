package playerstats

import "time"

// NormalizeCreate builds the canonical row sent on create. Every column resolves through
// its names in order; unresolved columns take their default and timestamps take now.
func NormalizeCreate(in Input, now time.Time) Row {
	out := make(Row, len(fields))
	stamp := FormatTimestamp(now)
	for _, f := range fields {
		if value, ok := resolve(in, f); ok {
			out[f.Name] = value
			continue
		}
		if f.Kind == KindTime {
			out[f.Name] = stamp
			continue
		}
		if f.CreateDefault != nil {
			out[f.Name] = f.CreateDefault
			continue
		}
		out[f.Name] = zeroValue(f.Kind)
	}
	return out
}

// NormalizeUpdate builds the partial row sent on update. Columns the input does not name stay
// out of the row so the remote value is untouched; updated_at is always now.
// Identity and create-only columns are never included.
func NormalizeUpdate(in Input, now time.Time) Row {
	out := make(Row, len(fields))
	for _, f := range fields {
		if f.CreateOnly || f.Name == ColumnUpdatedAt {
			continue
		}
		if value, ok := resolve(in, f); ok {
			out[f.Name] = value
		}
	}
	out[ColumnUpdatedAt] = FormatTimestamp(now)
	return out
}

// Identity extracts the record identity, preferring __backendId over id.
func Identity(in Input) (string, bool) {
	for _, name := range identityNames {
		raw, ok := in[name]
		if !ok {
			continue
		}
		if id := identityString(raw); id != "" {
			return id, true
		}
	}
	return "", false
}

// Project turns a row read from the backend into a View. Missing columns fall back to their
// aliases in the row before defaulting to the zero value.
func Project(row Row) View {
	values := make(map[string]any, len(fields)+1)
	for _, f := range fields {
		if value, ok := resolve(row, f); ok {
			values[f.Name] = value
			continue
		}
		values[f.Name] = zeroValue(f.Kind)
	}
	values[ColumnID] = identityString(row[ColumnID])

	return View{
		Record: recordFromCanonical(values),
		values: values,
	}
}

// ToRecord projects a backend row and returns only its canonical record.
func ToRecord(row Row) Record {
	return Project(row).Record
}

// CanonicalFilters rewrites alias filter keys to their columns. When several names of one column
// are given, the first in precedence order wins: the canonical name, then each alias in table
// order. Unknown keys pass through unchanged.
func CanonicalFilters(filters map[string]any) map[string]any {
	if len(filters) == 0 {
		return nil
	}
	out := make(map[string]any, len(filters))
	for _, f := range fields {
		if value, ok := firstPresent(filters, f.Names()); ok {
			out[f.Name] = value
		}
	}
	if value, ok := firstPresent(filters, identityFilterNames); ok {
		out[ColumnID] = value
	}
	for key, value := range filters {
		if _, known := CanonicalName(key); !known {
			out[key] = value
		}
	}
	return out
}

// identityFilterNames orders identity filter keys. Unlike identityNames, the column name comes first.
var identityFilterNames = []string{ColumnID, BackendIDAlias}

func firstPresent(src map[string]any, names []string) (any, bool) {
	for _, name := range names {
		if value, ok := src[name]; ok {
			return value, true
		}
	}
	return nil, false
}

// resolve returns the first name in precedence order whose value is present for the column's kind.
func resolve(src map[string]any, f Field) (any, bool) {
	if src == nil {
		return nil, false
	}
	for _, name := range f.Names() {
		if value, ok := coerce(f.Kind, src[name]); ok {
			return value, true
		}
	}
	return nil, false
}
