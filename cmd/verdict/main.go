// Verdict is a batch rule evaluation service.
//
// It reads batches of typed records from CSV files, evaluates every
// configured rule against every record, and records a violation for each
// record a rule condition holds true on. Rules are plain comparison and
// boolean expressions over record fields, written in YAML files or stored
// in a SQLite rules database.
//
// Usage:
//
//	# Evaluate one or more batch files against the configured rules
//	verdict run batch1.csv batch2.csv
//
//	# Watch a drop directory and process files as they arrive
//	verdict watch --config /etc/verdict/config.yaml
//
//	# Check rule files for parse errors
//	verdict rules lint --file rules.yaml
//
//	# Show version information
//	verdict version
package main

func main() {
	Execute()
}
