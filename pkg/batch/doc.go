// Package batch is the ingestion collaborator: it parses raw delimited text
// into typed records for the evaluation engine. The engine itself is
// agnostic to the origin format.
package batch
