// Package ingest converts the wide per-customer CSV feed into normalized
// customers, readings and price samples.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"gridbill/internal/models"
	"gridbill/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTimestampColumn and DefaultPriceColumn name the two distinguished
// feed columns; both can be overridden per pipeline.
const (
	DefaultTimestampColumn = "timestamp_utc"
	DefaultPriceColumn     = "SIPX_EUR_kWh"
)

// ErrNoTimestampColumn is returned when the header lacks the timestamp
// column; nothing in the feed can be keyed without it.
var ErrNoTimestampColumn = errors.New("ingest: timestamp column not found in header")

// Options configures a pipeline.
type Options struct {
	TimestampColumn string
	PriceColumn     string
}

// Pipeline reshapes one wide-table batch into the three stores.
type Pipeline struct {
	customerRepo repository.CustomerRepository
	readingRepo  repository.ReadingRepository
	priceRepo    repository.PriceRepository
	logger       *zap.Logger
	opts         Options
}

// NewPipeline creates a pipeline over the given stores.
func NewPipeline(
	customerRepo repository.CustomerRepository,
	readingRepo repository.ReadingRepository,
	priceRepo repository.PriceRepository,
	logger *zap.Logger,
	opts Options,
) *Pipeline {
	if opts.TimestampColumn == "" {
		opts.TimestampColumn = DefaultTimestampColumn
	}
	if opts.PriceColumn == "" {
		opts.PriceColumn = DefaultPriceColumn
	}
	return &Pipeline{
		customerRepo: customerRepo,
		readingRepo:  readingRepo,
		priceRepo:    priceRepo,
		logger:       logger,
		opts:         opts,
	}
}

// sampleKey identifies one normalized reading during accumulation.
type sampleKey struct {
	unixNano   int64
	customerID uuid.UUID
}

// sample accumulates at most one consumption and one production value per
// key. When several columns feed the same key, the last one observed during
// the scan wins.
type sample struct {
	timestamp   time.Time
	consumption *float64
	production  *float64
}

// Run executes one ingest batch: derive customers and role flags from the
// header, upsert them, then scan the rows once, accumulating readings keyed
// by (timestamp, customer) and price samples keyed by timestamp. Recoverable
// problems become summary counters; duplicate readings and prices from an
// earlier ingest are counted as skips, not merged.
func (p *Pipeline) Run(ctx context.Context, r io.Reader) (models.IngestSummary, error) {
	summary := models.IngestSummary{}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return summary, fmt.Errorf("failed to read header: %w", err)
	}

	columns := parseHeader(header, p.opts.TimestampColumn, p.opts.PriceColumn)

	timestampIndex := -1
	priceIndex := -1
	for _, col := range columns {
		switch col.Kind {
		case ColumnTimestamp:
			timestampIndex = col.Index
		case ColumnPrice:
			priceIndex = col.Index
		case ColumnUnrecognized:
			summary.ColumnsSkipped++
		}
	}
	if timestampIndex < 0 {
		return summary, ErrNoTimestampColumn
	}

	// Roles are the OR of tags seen across all columns bearing the
	// identifier, independent of row contents.
	customers, err := p.upsertCustomers(ctx, columns, &summary)
	if err != nil {
		return summary, err
	}

	samples := make(map[sampleKey]*sample)
	var prices []models.PriceSample

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return summary, fmt.Errorf("failed to read row: %w", err)
		}

		ts, err := parseTimestamp(record[timestampIndex])
		if err != nil {
			summary.RowsSkipped++
			p.logger.Warn("skipping row with unparseable timestamp",
				zap.String("value", record[timestampIndex]))
			continue
		}

		if priceIndex >= 0 {
			if value, ok := parseCell(record[priceIndex]); ok {
				prices = append(prices, models.PriceSample{Timestamp: ts, PriceEURKWh: *value})
			}
		}

		for _, col := range columns {
			if col.Kind != ColumnConsumption && col.Kind != ColumnProduction {
				continue
			}
			customer, ok := customers[col.CustomerName]
			if !ok {
				// Guarded against even though upsert precedes the
				// scan; the column's contribution is dropped, not
				// the batch.
				continue
			}

			value, present := parseCell(record[col.Index])
			if !present {
				continue
			}

			key := sampleKey{unixNano: ts.UnixNano(), customerID: customer.ID}
			entry, ok := samples[key]
			if !ok {
				entry = &sample{timestamp: ts}
				samples[key] = entry
			}
			if col.Kind == ColumnConsumption {
				entry.consumption = value
			} else {
				entry.production = value
			}
		}
	}

	p.insertReadings(ctx, samples, &summary)
	p.insertPrices(ctx, prices, &summary)

	p.logger.Info("ingest batch complete",
		zap.Int("customers_upserted", summary.CustomersUpserted),
		zap.Int("readings_inserted", summary.ReadingsInserted),
		zap.Int("readings_skipped", summary.ReadingsSkipped),
		zap.Int("prices_inserted", summary.PricesInserted),
		zap.Int("prices_skipped", summary.PricesSkipped),
		zap.Int("columns_skipped", summary.ColumnsSkipped),
		zap.Int("rows_skipped", summary.RowsSkipped),
	)
	return summary, nil
}

// Replace truncates all three stores and re-runs the batch. Truncating only
// some of the stores would leave dangling references, so the three always go
// together.
func (p *Pipeline) Replace(ctx context.Context, r io.Reader) (models.IngestSummary, error) {
	if err := p.readingRepo.Truncate(ctx); err != nil {
		return models.IngestSummary{}, fmt.Errorf("failed to truncate readings: %w", err)
	}
	if err := p.priceRepo.Truncate(ctx); err != nil {
		return models.IngestSummary{}, fmt.Errorf("failed to truncate prices: %w", err)
	}
	if err := p.customerRepo.Truncate(ctx); err != nil {
		return models.IngestSummary{}, fmt.Errorf("failed to truncate customers: %w", err)
	}
	return p.Run(ctx, r)
}

func (p *Pipeline) upsertCustomers(ctx context.Context, columns []Column, summary *models.IngestSummary) (map[string]*models.Customer, error) {
	type roles struct {
		isConsumer bool
		isProducer bool
	}

	derived := make(map[string]*roles)
	order := make([]string, 0)
	for _, col := range columns {
		if col.Kind != ColumnConsumption && col.Kind != ColumnProduction {
			continue
		}
		r, ok := derived[col.CustomerName]
		if !ok {
			r = &roles{}
			derived[col.CustomerName] = r
			order = append(order, col.CustomerName)
		}
		if col.Kind == ColumnConsumption {
			r.isConsumer = true
		} else {
			r.isProducer = true
		}
	}

	customers := make(map[string]*models.Customer, len(derived))
	for _, name := range order {
		r := derived[name]
		customer := &models.Customer{
			Name:       name,
			IsConsumer: r.isConsumer,
			IsProducer: r.isProducer,
		}
		if err := p.customerRepo.Upsert(ctx, customer); err != nil {
			return nil, fmt.Errorf("failed to upsert customer %s: %w", name, err)
		}
		customers[name] = customer
		summary.CustomersUpserted++
	}
	return customers, nil
}

func (p *Pipeline) insertReadings(ctx context.Context, samples map[sampleKey]*sample, summary *models.IngestSummary) {
	keys := make([]sampleKey, 0, len(samples))
	for key := range samples {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].unixNano != keys[j].unixNano {
			return keys[i].unixNano < keys[j].unixNano
		}
		return keys[i].customerID.String() < keys[j].customerID.String()
	})

	for _, key := range keys {
		entry := samples[key]
		reading := &models.Reading{
			CustomerID:     key.customerID,
			Timestamp:      entry.timestamp,
			ConsumptionKWh: entry.consumption,
			ProductionKWh:  entry.production,
		}
		err := p.readingRepo.Insert(ctx, reading)
		switch {
		case err == nil:
			summary.ReadingsInserted++
		case errors.Is(err, repository.ErrConflict):
			summary.ReadingsSkipped++
		case errors.Is(err, repository.ErrCustomerNotFound):
			summary.ReadingsSkipped++
			p.logger.Warn("reading references missing customer",
				zap.String("customer_id", key.customerID.String()))
		default:
			summary.ReadingsSkipped++
			p.logger.Error("failed to insert reading", zap.Error(err))
		}
	}
}

func (p *Pipeline) insertPrices(ctx context.Context, prices []models.PriceSample, summary *models.IngestSummary) {
	for i := range prices {
		err := p.priceRepo.Insert(ctx, &prices[i])
		switch {
		case err == nil:
			summary.PricesInserted++
		case errors.Is(err, repository.ErrConflict):
			summary.PricesSkipped++
		default:
			summary.PricesSkipped++
			p.logger.Error("failed to insert price", zap.Error(err))
		}
	}
}

// parseCell interprets one numeric cell. Empty cells mean the value is absent
// at that instant; zero is a legitimate present value.
func parseCell(raw string) (*float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	return &value, true
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}
