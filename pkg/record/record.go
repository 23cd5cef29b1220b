package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Field is a single named value within a record.
type Field struct {
	Name  string
	Value Value
}

// Record is one row of an input batch: an ordered mapping from unique field
// names to values. Records are read-only once constructed; the evaluation
// engine never mutates them.
type Record struct {
	fields []Field
	index  map[string]int
}

// NewRecord builds a record from the given fields, preserving their order.
// Duplicate field names are rejected.
func NewRecord(fields []Field) (Record, error) {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if _, dup := index[f.Name]; dup {
			return Record{}, fmt.Errorf("duplicate field name %q", f.Name)
		}
		index[f.Name] = i
	}

	// Copy so later mutation of the caller's slice cannot reach the record.
	copied := make([]Field, len(fields))
	copy(copied, fields)

	return Record{fields: copied, index: index}, nil
}

// MustRecord is NewRecord that panics on duplicate names. Intended for tests
// and static fixtures.
func MustRecord(fields ...Field) Record {
	r, err := NewRecord(fields)
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the value of the named field. The second result is false when
// the field is absent.
func (r Record) Get(name string) (Value, bool) {
	i, ok := r.index[name]
	if !ok {
		return Value{}, false
	}
	return r.fields[i].Value, true
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.fields)
}

// Fields returns a copy of the record's fields in input order.
func (r Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Snapshot serializes the record as a JSON object with field names in
// ascending order. Two structurally equal records always produce identical
// bytes, which keeps violation output reproducible across runs.
func (r Record) Snapshot() json.RawMessage {
	names := make([]string, 0, len(r.fields))
	for _, f := range r.fields {
		names = append(names, f.Name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(&buf, name)
		buf.WriteByte(':')
		writeJSONValue(&buf, r.fields[r.index[name]].Value)
	}
	buf.WriteByte('}')
	return json.RawMessage(buf.Bytes())
}

func writeJSONString(buf *bytes.Buffer, s string) {
	b, _ := json.Marshal(s)
	buf.Write(b)
}

func writeJSONValue(buf *bytes.Buffer, v Value) {
	switch v.Kind() {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		b, _ := v.AsBool()
		buf.WriteString(strconv.FormatBool(b))
	case KindInt:
		i, _ := v.AsInt()
		buf.WriteString(strconv.FormatInt(i, 10))
	case KindFloat:
		f, _ := v.AsFloat()
		// JSON has no NaN or infinity; render them as null so the snapshot
		// stays parseable no matter how the value was constructed.
		if math.IsNaN(f) || math.IsInf(f, 0) {
			buf.WriteString("null")
			return
		}
		// json.Marshal formatting keeps floats round-trippable and stable.
		b, _ := json.Marshal(f)
		buf.Write(b)
	case KindText:
		s, _ := v.AsText()
		writeJSONString(buf, s)
	}
}
