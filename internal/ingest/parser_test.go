package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColumn(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected Column
	}{
		{
			name:     "Consumption column",
			header:   "acme_cons_kwh",
			expected: Column{Index: 0, Kind: ColumnConsumption, CustomerName: "acme"},
		},
		{
			name:     "Production column",
			header:   "acme_prod_kwh",
			expected: Column{Index: 0, Kind: ColumnProduction, CustomerName: "acme"},
		},
		{
			name:     "Tag without unit suffix",
			header:   "acme_cons",
			expected: Column{Index: 0, Kind: ColumnConsumption, CustomerName: "acme"},
		},
		{
			name:     "Unknown tag",
			header:   "acme_total_kwh",
			expected: Column{Index: 0, Kind: ColumnUnrecognized},
		},
		{
			name:     "No underscore",
			header:   "acme",
			expected: Column{Index: 0, Kind: ColumnUnrecognized},
		},
		{
			name:     "Empty customer segment",
			header:   "_cons_kwh",
			expected: Column{Index: 0, Kind: ColumnUnrecognized},
		},
		{
			name:     "Empty header cell",
			header:   "",
			expected: Column{Index: 0, Kind: ColumnUnrecognized},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseColumn(0, tt.header))
		})
	}
}

func TestParseHeader(t *testing.T) {
	header := []string{"timestamp_utc", "SIPX_EUR_kWh", "acme_cons_kwh", "acme_prod_kwh", "mystery"}

	columns := parseHeader(header, DefaultTimestampColumn, DefaultPriceColumn)

	assert.Len(t, columns, 5)
	assert.Equal(t, ColumnTimestamp, columns[0].Kind)
	assert.Equal(t, ColumnPrice, columns[1].Kind)
	assert.Equal(t, ColumnConsumption, columns[2].Kind)
	assert.Equal(t, "acme", columns[2].CustomerName)
	assert.Equal(t, ColumnProduction, columns[3].Kind)
	assert.Equal(t, "acme", columns[3].CustomerName)
	assert.Equal(t, ColumnUnrecognized, columns[4].Kind)
}

func TestParseHeaderConfiguredNamesWin(t *testing.T) {
	// The price column name parses as customer "SIPX" tag "EUR" under the
	// customer convention; the configured name must take precedence.
	columns := parseHeader([]string{"SIPX_EUR_kWh"}, "timestamp_utc", "SIPX_EUR_kWh")
	assert.Equal(t, ColumnPrice, columns[0].Kind)
	assert.Empty(t, columns[0].CustomerName)
}

func TestParseHeaderTrimsWhitespace(t *testing.T) {
	columns := parseHeader([]string{" timestamp_utc", "acme_cons_kwh "}, DefaultTimestampColumn, DefaultPriceColumn)
	assert.Equal(t, ColumnTimestamp, columns[0].Kind)
	assert.Equal(t, ColumnConsumption, columns[1].Kind)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "RFC3339", value: "2024-03-20T13:00:00Z"},
		{name: "Space separated with zone", value: "2024-03-20 13:00:00Z"},
		{name: "Space separated naive", value: "2024-03-20 13:00:00"},
		{name: "Garbage", value: "not-a-time", wantErr: true},
		{name: "Empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := parseTimestamp(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "UTC", ts.Location().String())
			assert.Equal(t, 2024, ts.Year())
		})
	}
}

func TestParseCell(t *testing.T) {
	value, ok := parseCell("10.5")
	assert.True(t, ok)
	assert.Equal(t, 10.5, *value)

	// A zero is a measurement, not an absence.
	value, ok = parseCell("0")
	assert.True(t, ok)
	assert.Equal(t, 0.0, *value)

	_, ok = parseCell("")
	assert.False(t, ok)

	_, ok = parseCell("n/a")
	assert.False(t, ok)
}
