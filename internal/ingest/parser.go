package ingest

import "strings"

// ColumnKind classifies one header column of the wide feed.
type ColumnKind int

const (
	// ColumnUnrecognized marks columns that match no known shape; their
	// cells are skipped and counted, never guessed at.
	ColumnUnrecognized ColumnKind = iota
	ColumnTimestamp
	ColumnPrice
	ColumnConsumption
	ColumnProduction
)

// Column is the parsed form of one header cell. CustomerName is set only for
// consumption and production columns.
type Column struct {
	Index        int
	Kind         ColumnKind
	CustomerName string
}

const (
	tagConsumption = "cons"
	tagProduction  = "prod"
)

// parseColumn classifies a data column by its first two underscore-delimited
// segments: segment one names the customer, segment two carries the data-type
// tag. Anything past the second segment (units and the like) is ignored.
func parseColumn(index int, name string) Column {
	parts := strings.Split(name, "_")
	if len(parts) < 2 || parts[0] == "" {
		return Column{Index: index, Kind: ColumnUnrecognized}
	}

	switch parts[1] {
	case tagConsumption:
		return Column{Index: index, Kind: ColumnConsumption, CustomerName: parts[0]}
	case tagProduction:
		return Column{Index: index, Kind: ColumnProduction, CustomerName: parts[0]}
	default:
		return Column{Index: index, Kind: ColumnUnrecognized}
	}
}

// parseHeader classifies every column of the header row. The timestamp and
// price columns are matched by their configured names before the customer
// convention is applied.
func parseHeader(header []string, timestampColumn, priceColumn string) []Column {
	columns := make([]Column, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		switch name {
		case timestampColumn:
			columns = append(columns, Column{Index: i, Kind: ColumnTimestamp})
		case priceColumn:
			columns = append(columns, Column{Index: i, Kind: ColumnPrice})
		default:
			columns = append(columns, parseColumn(i, name))
		}
	}
	return columns
}
