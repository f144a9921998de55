package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Row is an ordered column -> value mapping. Column order is the order the
// store returned, which the report export relies on for its header.
type Row struct {
	columns []string
	values  map[string]any
}

// NewRow builds a row from alternating column, value arguments
func NewRow(pairs ...any) Row {
	r := Row{}
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(fmt.Sprint(pairs[i]), pairs[i+1])
	}
	return r
}

// Set assigns a value, appending the column if it is new
func (r *Row) Set(column string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[column]; !ok {
		r.columns = append(r.columns, column)
	}
	r.values[column] = value
}

// Get returns the value of column and whether it is present
func (r Row) Get(column string) (any, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Value returns the value of column, nil when absent
func (r Row) Value(column string) any {
	return r.values[column]
}

// Columns returns the column names in order
func (r Row) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Len returns the number of columns
func (r Row) Len() int {
	return len(r.columns)
}

// Project returns a row restricted to the given columns, in that order.
// Missing columns are skipped.
func (r Row) Project(columns []string) Row {
	out := Row{}
	for _, c := range columns {
		if v, ok := r.values[c]; ok {
			out.Set(c, v)
		}
	}
	return out
}

// Clone returns an independent copy
func (r Row) Clone() Row {
	return r.Project(r.columns)
}

// Map returns the values as a plain map
func (r Row) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// MarshalJSON writes the row as a JSON object keeping column order
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[c])
		if err != nil {
			return nil, fmt.Errorf("marshal column %s: %w", c, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping key order
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	row, err := DecodeRow(dec)
	if err != nil {
		return err
	}
	*r = row
	return nil
}

// DecodeRow reads one JSON object from dec, preserving key order. Nested
// values are decoded into plain Go values.
func DecodeRow(dec *json.Decoder) (Row, error) {
	tok, err := dec.Token()
	if err != nil {
		return Row{}, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return Row{}, fmt.Errorf("expected object, got %v", tok)
	}
	row := Row{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Row{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Row{}, fmt.Errorf("expected object key, got %v", keyTok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return Row{}, fmt.Errorf("decode %s: %w", key, err)
		}
		row.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return Row{}, err
	}
	return row, nil
}

// DecodeRows reads a JSON array of objects, preserving key order in each
func DecodeRows(dec *json.Decoder) ([]Row, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("expected array, got %v", tok)
	}
	rows := []Row{}
	for dec.More() {
		row, err := DecodeRow(dec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return rows, nil
}
