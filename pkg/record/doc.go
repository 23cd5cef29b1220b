// Package record defines the typed, immutable data model for one row of an
// input batch: a Value tagged union over {null, boolean, integer, float, text}
// and a Record mapping unique field names to values in input order.
//
// Records are produced by an ingestion collaborator (see package batch) and
// are read-only to the evaluation engine. Record.Snapshot provides the
// deterministic serialization that violation output is built from.
package record
