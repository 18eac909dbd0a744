package models

// IngestSummary reports what one batch ingest did. Recoverable per-column and
// per-row problems are counted here rather than aborting the batch; duplicate
// readings or prices on re-ingest land in the skip counters.
type IngestSummary struct {
	CustomersUpserted int `json:"customers_upserted"`
	ReadingsInserted  int `json:"readings_inserted"`
	ReadingsSkipped   int `json:"readings_skipped"`
	PricesInserted    int `json:"prices_inserted"`
	PricesSkipped     int `json:"prices_skipped"`
	ColumnsSkipped    int `json:"columns_skipped"`
	RowsSkipped       int `json:"rows_skipped"`
}

// CostRevenueSummary is the result of reconciling a customer's readings
// against prices over a time range.
type CostRevenueSummary struct {
	TotalCost    float64 `json:"total_cost" example:"5.0"`
	TotalRevenue float64 `json:"total_revenue" example:"1.2"`
}
