package memory

import (
	"context"
	"testing"
	"time"

	"gridbill/internal/models"
	"gridbill/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upsertCustomer(t *testing.T, store *Store, name string, isConsumer, isProducer bool) *models.Customer {
	t.Helper()
	customer := &models.Customer{Name: name, IsConsumer: isConsumer, IsProducer: isProducer}
	require.NoError(t, store.Customers().Upsert(context.Background(), customer))
	return customer
}

func insertReading(t *testing.T, store *Store, customer *models.Customer, ts time.Time, cons float64) *models.Reading {
	t.Helper()
	reading := &models.Reading{
		CustomerID:     customer.ID,
		Timestamp:      ts,
		ConsumptionKWh: &cons,
	}
	require.NoError(t, store.Readings().Insert(context.Background(), reading))
	return reading
}

func TestCustomerUpsertMergesRoles(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	first := upsertCustomer(t, store, "alpha", true, false)

	// A second upsert with a different role ORs the flags together and
	// never clears an established one.
	second := &models.Customer{Name: "alpha", IsConsumer: false, IsProducer: true}
	require.NoError(t, store.Customers().Upsert(ctx, second))

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.IsConsumer)
	assert.True(t, second.IsProducer)

	customers, err := store.Customers().List(ctx, repository.CustomerFilter{})
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestCustomerUpdateNameConflict(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	upsertCustomer(t, store, "alpha", true, false)
	beta := upsertCustomer(t, store, "beta", true, false)

	beta.Name = "alpha"
	err := store.Customers().Update(ctx, beta)
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestReadingDuplicateInsertKeepsFirstPayload(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	customer := upsertCustomer(t, store, "alpha", true, false)
	ts := time.Date(2024, 3, 20, 13, 0, 0, 0, time.UTC)
	insertReading(t, store, customer, ts, 10)

	second := 99.0
	err := store.Readings().Insert(ctx, &models.Reading{
		CustomerID:     customer.ID,
		Timestamp:      ts,
		ConsumptionKWh: &second,
	})
	assert.ErrorIs(t, err, repository.ErrConflict)

	// The losing insert must not have touched the stored row.
	stored, err := store.Readings().GetByCustomerAndTimestamp(ctx, customer.ID, ts)
	require.NoError(t, err)
	require.NotNil(t, stored.ConsumptionKWh)
	assert.Equal(t, 10.0, *stored.ConsumptionKWh)
}

func TestReadingInsertUnknownCustomer(t *testing.T) {
	store := NewStore()
	cons := 1.0
	err := store.Readings().Insert(context.Background(), &models.Reading{
		CustomerID:     uuid.New(),
		Timestamp:      time.Now().UTC(),
		ConsumptionKWh: &cons,
	})
	assert.ErrorIs(t, err, repository.ErrCustomerNotFound)
}

func TestSoftDeleteCascadesToReadings(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	customer := upsertCustomer(t, store, "alpha", true, false)
	ts := time.Date(2024, 3, 20, 13, 0, 0, 0, time.UTC)
	insertReading(t, store, customer, ts, 10)

	require.NoError(t, store.Customers().SoftDelete(ctx, customer.ID))

	fetched, err := store.Customers().GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, fetched.IsDeleted())

	readings, err := store.Readings().List(ctx, repository.ReadingFilter{CustomerID: &customer.ID})
	require.NoError(t, err)
	assert.Empty(t, readings)

	// Deleting twice is not a no-op; the second call finds no active row.
	err = store.Customers().SoftDelete(ctx, customer.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRestoreLeavesReadingsDeleted(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	customer := upsertCustomer(t, store, "alpha", true, false)
	ts := time.Date(2024, 3, 20, 13, 0, 0, 0, time.UTC)
	insertReading(t, store, customer, ts, 10)

	require.NoError(t, store.Customers().SoftDelete(ctx, customer.ID))
	require.NoError(t, store.Customers().Restore(ctx, customer.ID))

	fetched, err := store.Customers().GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.False(t, fetched.IsDeleted())

	// The cascade is one-way: restoring the customer does not resurrect
	// its readings.
	readings, err := store.Readings().List(ctx, repository.ReadingFilter{CustomerID: &customer.ID})
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestRestoreActiveCustomer(t *testing.T) {
	store := NewStore()
	customer := upsertCustomer(t, store, "alpha", true, false)

	err := store.Customers().Restore(context.Background(), customer.ID)
	assert.ErrorIs(t, err, repository.ErrCustomerActive)
}

func TestSoftDeleteFreesTimestampSlot(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	customer := upsertCustomer(t, store, "alpha", true, false)
	ts := time.Date(2024, 3, 20, 13, 0, 0, 0, time.UTC)
	insertReading(t, store, customer, ts, 10)

	require.NoError(t, store.Customers().SoftDelete(ctx, customer.ID))
	require.NoError(t, store.Customers().Restore(ctx, customer.ID))

	// The old reading is soft-deleted, so its (customer, timestamp) slot
	// can be filled again.
	fresh := insertReading(t, store, customer, ts, 20)
	stored, err := store.Readings().GetByCustomerAndTimestamp(ctx, customer.ID, ts)
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, stored.ID)
}

func TestHardDeleteBlockedByReadings(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	customer := upsertCustomer(t, store, "alpha", true, false)
	ts := time.Date(2024, 3, 20, 13, 0, 0, 0, time.UTC)
	insertReading(t, store, customer, ts, 10)

	err := store.Customers().HardDelete(ctx, customer.ID)
	assert.ErrorIs(t, err, repository.ErrHasAssociatedRecords)

	// Soft-deleted readings still count as associated records.
	require.NoError(t, store.Customers().SoftDelete(ctx, customer.ID))
	err = store.Customers().HardDelete(ctx, customer.ID)
	assert.ErrorIs(t, err, repository.ErrHasAssociatedRecords)
}

func TestHardDeleteWithoutReadings(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	customer := upsertCustomer(t, store, "alpha", true, false)
	require.NoError(t, store.Customers().HardDelete(ctx, customer.ID))

	_, err := store.Customers().GetByID(ctx, customer.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = store.Customers().GetByName(ctx, "alpha")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPriceDuplicateTimestamp(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	ts := time.Date(2024, 3, 20, 13, 0, 0, 0, time.UTC)
	require.NoError(t, store.Prices().Insert(ctx, &models.PriceSample{Timestamp: ts, PriceEURKWh: 0.1}))

	err := store.Prices().Insert(ctx, &models.PriceSample{Timestamp: ts, PriceEURKWh: 0.2})
	assert.ErrorIs(t, err, repository.ErrConflict)

	// Corrections go through UpdatePrice, never through a second insert.
	existing, err := store.Prices().GetLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.1, existing.PriceEURKWh)

	updated, err := store.Prices().UpdatePrice(ctx, existing.ID, 0.2)
	require.NoError(t, err)
	assert.Equal(t, 0.2, updated.PriceEURKWh)
}

func TestPriceListRange(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	base := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		ts := base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, store.Prices().Insert(ctx, &models.PriceSample{Timestamp: ts, PriceEURKWh: float64(i)}))
	}

	start := base.Add(time.Hour)
	end := base.Add(3 * time.Hour)
	prices, err := store.Prices().List(ctx, repository.PriceFilter{Start: &start, End: &end})
	require.NoError(t, err)
	require.Len(t, prices, 3)
	assert.Equal(t, start, prices[0].Timestamp)
	assert.Equal(t, end, prices[2].Timestamp)
}

func TestReadingListOrderAndLimit(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	customer := upsertCustomer(t, store, "alpha", true, false)
	base := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		insertReading(t, store, customer, base.Add(time.Duration(i)*time.Hour), float64(i))
	}

	limit := 2
	readings, err := store.Readings().List(ctx, repository.ReadingFilter{
		CustomerID: &customer.ID,
		OrderDesc:  true,
		Limit:      &limit,
	})
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.True(t, readings[0].Timestamp.After(readings[1].Timestamp))
	assert.Equal(t, base.Add(3*time.Hour), readings[0].Timestamp)
}
