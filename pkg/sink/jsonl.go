package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"veridian-hq/verdict/pkg/rules"
)

// JSONLSink streams violations to a writer as one JSON object per line.
// Useful for piping runs into log shippers or ad-hoc inspection.
type JSONLSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewJSONLSink creates a sink over the given writer.
func NewJSONLSink(w io.Writer) *JSONLSink {
	return &JSONLSink{w: w}
}

// Write encodes each violation on its own line, in order.
func (s *JSONLSink) Write(ctx context.Context, violations []rules.Violation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	enc := json.NewEncoder(s.w)
	for i := range violations {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := enc.Encode(&violations[i]); err != nil {
			return fmt.Errorf("failed to encode violation %d: %w", i, err)
		}
	}
	return nil
}
