package record

import (
	"bytes"
	"math"
	"testing"
)

func TestNewRecord_RejectsDuplicateNames(t *testing.T) {
	_, err := NewRecord([]Field{
		{Name: "amount", Value: Int(1)},
		{Name: "amount", Value: Int(2)},
	})
	if err == nil {
		t.Fatal("NewRecord() expected error for duplicate field name")
	}
}

func TestRecord_Get(t *testing.T) {
	rec := MustRecord(
		Field{Name: "amount", Value: Int(100)},
		Field{Name: "status", Value: Text("OK")},
	)

	v, ok := rec.Get("amount")
	if !ok {
		t.Fatal("Get(amount) not found")
	}
	if i, _ := v.AsInt(); i != 100 {
		t.Errorf("Get(amount) = %v, want 100", v)
	}

	if _, ok := rec.Get("missing"); ok {
		t.Error("Get(missing) = found, want not found")
	}
}

func TestRecord_FieldsAreCopied(t *testing.T) {
	fields := []Field{{Name: "a", Value: Int(1)}}
	rec, err := NewRecord(fields)
	if err != nil {
		t.Fatal(err)
	}

	fields[0].Value = Int(99)

	v, _ := rec.Get("a")
	if i, _ := v.AsInt(); i != 1 {
		t.Errorf("record observed caller mutation: got %d, want 1", i)
	}
}

func TestSnapshot_SortsFieldNames(t *testing.T) {
	rec := MustRecord(
		Field{Name: "zeta", Value: Int(1)},
		Field{Name: "alpha", Value: Text("x")},
		Field{Name: "mid", Value: Null()},
	)

	got := rec.Snapshot()
	want := `{"alpha":"x","mid":null,"zeta":1}`
	if string(got) != want {
		t.Errorf("Snapshot() = %s, want %s", got, want)
	}
}

func TestSnapshot_Deterministic(t *testing.T) {
	rec := MustRecord(
		Field{Name: "amount", Value: Float(12.5)},
		Field{Name: "flag", Value: Bool(true)},
		Field{Name: "note", Value: Text(`he said "hi"`)},
	)

	first := rec.Snapshot()
	for i := 0; i < 10; i++ {
		if next := rec.Snapshot(); !bytes.Equal(first, next) {
			t.Fatalf("Snapshot() unstable: %s vs %s", first, next)
		}
	}
}

func TestSnapshot_ValueEncoding(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"null", Null(), `{"f":null}`},
		{"bool", Bool(false), `{"f":false}`},
		{"int", Int(-50), `{"f":-50}`},
		{"float", Float(0.25), `{"f":0.25}`},
		{"text escaping", Text("a\"b"), `{"f":"a\"b"}`},
		// JSON cannot carry non-finite floats; they degrade to null rather
		// than truncating the document.
		{"nan", Float(math.NaN()), `{"f":null}`},
		{"positive inf", Float(math.Inf(1)), `{"f":null}`},
		{"negative inf", Float(math.Inf(-1)), `{"f":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := MustRecord(Field{Name: "f", Value: tt.value})
			if got := string(rec.Snapshot()); got != tt.want {
				t.Errorf("Snapshot() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestValue_Accessors(t *testing.T) {
	if _, ok := Text("5").AsFloat(); ok {
		t.Error("Text.AsFloat() should not convert")
	}
	if f, ok := Int(3).AsFloat(); !ok || f != 3.0 {
		t.Errorf("Int.AsFloat() = %v, %v; want 3.0, true", f, ok)
	}
	if !Null().IsNull() {
		t.Error("Null().IsNull() = false")
	}
	if Null().Kind() != KindNull {
		t.Error("zero Value kind should be null")
	}
}
