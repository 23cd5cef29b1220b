package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"veridian-hq/verdict/pkg/record"
)

// ReadCSV parses delimited text into a batch of records. The first row names
// the fields; every following row becomes one record in input order.
//
// Cell typing is by shape: an empty cell is null, "true"/"false"
// (case-insensitive) are booleans, integer-looking cells are integers,
// float-looking cells are floats, and everything else is text. The evaluation
// engine takes these types as given; there is no cross-row inference.
func ReadCSV(r io.Reader) ([]record.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("batch has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
		if names[i] == "" {
			return nil, fmt.Errorf("header column %d is empty", i)
		}
	}

	var batch []record.Record
	row := 1
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", row, err)
		}

		fields := make([]record.Field, len(names))
		for i, name := range names {
			fields[i] = record.Field{Name: name, Value: typeCell(cells[i])}
		}

		rec, err := record.NewRecord(fields)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		batch = append(batch, rec)
		row++
	}

	return batch, nil
}

// typeCell converts one CSV cell into a typed value.
func typeCell(cell string) record.Value {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return record.Null()
	}

	switch strings.ToLower(trimmed) {
	case "true":
		return record.Bool(true)
	case "false":
		return record.Bool(false)
	}

	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return record.Int(i)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		// ParseFloat accepts "NaN" and "Inf" spellings, but non-finite
		// numbers have no comparison semantics or JSON form; keep the cell
		// as text so it can only ever evaluate to Unknown.
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return record.Text(cell)
		}
		return record.Float(f)
	}

	return record.Text(cell)
}
