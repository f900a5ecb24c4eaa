package dataset

import "fmt"

// SchemaError reports a required column missing after header
// canonicalization. The dashboard cannot render without the full schema, so
// loads fail immediately; nothing is guessed or defaulted.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required column: %s", e.Column)
}

// DataFormatError reports a cell that could not be parsed into its typed
// field (the mission date, the counters, the EVA duration).
type DataFormatError struct {
	Column string
	Value  string
	Row    int
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("row %d: cannot parse column %s value %q", e.Row, e.Column, e.Value)
}
