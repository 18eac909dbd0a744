package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gridbill/internal/api/handlers"
	"gridbill/internal/ingest"
	"gridbill/internal/models"
	"gridbill/internal/reconcile"
	"gridbill/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRouter wires the handlers the way the route setup does, backed by the
// in-memory store from the test context.
func setupRouter(tc *testutil.TestContext) *gin.Engine {
	r := gin.New()

	reconcileService := reconcile.NewService(tc.ReadingRepo, tc.PriceRepo, tc.Cache, tc.Config.Cache.TTL, tc.Logger)
	pipeline := ingest.NewPipeline(tc.CustomerRepo, tc.ReadingRepo, tc.PriceRepo, tc.Logger, ingest.Options{})

	customerHandler := handlers.NewCustomerHandler(tc.CustomerRepo)
	readingHandler := handlers.NewReadingHandler(tc.ReadingRepo, tc.CustomerRepo, tc.Cache, tc.Config.Cache.TTL)
	priceHandler := handlers.NewPriceHandler(tc.PriceRepo)
	reconcileHandler := handlers.NewReconcileHandler(reconcileService, tc.CustomerRepo)
	ingestHandler := handlers.NewIngestHandler(pipeline)

	v1 := r.Group("/api/v1")
	{
		customers := v1.Group("/customers")
		{
			customers.POST("", customerHandler.RegisterCustomer)
			customers.GET("", customerHandler.ListCustomers)
			customers.GET("/search", customerHandler.ListCustomers)
			customers.GET("/:id", customerHandler.GetCustomer)
			customers.PATCH("/:id", customerHandler.UpdateCustomer)
			customers.DELETE("/:id", customerHandler.SoftDeleteCustomer)
			customers.POST("/:id/restore", customerHandler.RestoreCustomer)
			customers.DELETE("/:id/purge", customerHandler.PurgeCustomer)
			customers.GET("/:id/readings", readingHandler.ListReadings)
			customers.GET("/:id/cost-revenue", reconcileHandler.CostRevenue)
		}
		v1.POST("/readings", readingHandler.CreateReading)
		prices := v1.Group("/prices")
		{
			prices.POST("", priceHandler.CreatePrice)
			prices.GET("", priceHandler.ListPrices)
			prices.GET("/latest", priceHandler.GetLatestPrice)
			prices.PATCH("/:id", priceHandler.UpdatePrice)
		}
		v1.POST("/ingest", ingestHandler.IngestBatch)
	}
	return r
}

func performJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterCustomer(t *testing.T) {
	tc := testutil.NewTestContext(t)
	router := setupRouter(tc)

	w := performJSON(router, http.MethodPost, "/api/v1/customers", models.RegisterCustomerRequest{
		Name:       "alpha",
		IsConsumer: true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var created models.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "alpha", created.Name)
	assert.True(t, created.IsConsumer)
	assert.False(t, created.IsProducer)

	// Registering again with another role merges instead of duplicating.
	w = performJSON(router, http.MethodPost, "/api/v1/customers", models.RegisterCustomerRequest{
		Name:       "alpha",
		IsProducer: true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var merged models.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &merged))
	assert.Equal(t, created.ID, merged.ID)
	assert.True(t, merged.IsConsumer)
	assert.True(t, merged.IsProducer)
}

func TestRegisterCustomerValidation(t *testing.T) {
	tc := testutil.NewTestContext(t)
	router := setupRouter(tc)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{name: "Missing name", body: map[string]interface{}{"is_consumer": true}},
		{name: "Blank name", body: map[string]interface{}{"name": "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(router, http.MethodPost, "/api/v1/customers", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetCustomer(t *testing.T) {
	tc := testutil.NewTestContext(t)
	router := setupRouter(tc)

	customer := tc.CreateTestCustomer("alpha", true, false)

	w := performJSON(router, http.MethodGet, "/api/v1/customers/"+customer.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON(router, http.MethodGet, "/api/v1/customers/00000000-0000-0000-0000-000000000001", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performJSON(router, http.MethodGet, "/api/v1/customers/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListCustomersFiltersByName(t *testing.T) {
	tc := testutil.NewTestContext(t)
	router := setupRouter(tc)

	tc.CreateTestCustomer("alpha", true, false)
	tc.CreateTestCustomer("beta", true, false)

	w := performJSON(router, http.MethodGet, "/api/v1/customers?name=alp", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var customers []models.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customers))
	require.Len(t, customers, 1)
	assert.Equal(t, "alpha", customers[0].Name)

	// The search alias answers the same way.
	w = performJSON(router, http.MethodGet, "/api/v1/customers/search?name=bet", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customers))
	require.Len(t, customers, 1)
	assert.Equal(t, "beta", customers[0].Name)
}

func TestUpdateCustomerNameConflict(t *testing.T) {
	tc := testutil.NewTestContext(t)
	router := setupRouter(tc)

	tc.CreateTestCustomer("alpha", true, false)
	beta := tc.CreateTestCustomer("beta", true, false)

	w := performJSON(router, http.MethodPatch, "/api/v1/customers/"+beta.ID.String(),
		map[string]interface{}{"name": "alpha"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSoftDeleteHidesCustomerAndReadings(t *testing.T) {
	tc := testutil.NewTestContext(t)
	router := setupRouter(tc)

	customer := tc.CreateTestCustomer("alpha", true, false)
	ts := time.Date(2024, 3, 20, 13, 0, 0, 0, time.UTC)
	tc.CreateTestReading(customer.ID, ts, testutil.Float64(10), nil)

	w := performJSON(router, http.MethodDelete, "/api/v1/customers/"+customer.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The customer reads as gone.
	w = performJSON(router, http.MethodGet, "/api/v1/customers/"+customer.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// A second delete has nothing left to mark.
	w = performJSON(router, http.MethodDelete, "/api/v1/customers/"+customer.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRestoreCustomerAsymmetry(t *testing.T) {
	tc := testutil.NewTestContext(t)
	router := setupRouter(tc)

	customer := tc.CreateTestCustomer("alpha", true, false)
	ts := time.Date(2024, 3, 20, 13, 0, 0, 0, time.UTC)
	tc.CreateTestReading(customer.ID, ts, testutil.Float64(10), nil)

	w := performJSON(router, http.MethodDelete, "/api/v1/customers/"+customer.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(router, http.MethodPost, "/api/v1/customers/"+customer.ID.String()+"/restore", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var restored models.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &restored))
	assert.Nil(t, restored.DeletedAt)

	// Restore clears only the customer marker; the readings stay deleted.
	w = performJSON(router, http.MethodGet,
		fmt.Sprintf("/api/v1/customers/%s/readings", customer.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var readings []models.Reading
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &readings))
	assert.Empty(t, readings)

	// Restoring an active customer is an error.
	w = performJSON(router, http.MethodPost, "/api/v1/customers/"+customer.ID.String()+"/restore", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPurgeCustomer(t *testing.T) {
	tc := testutil.NewTestContext(t)
	router := setupRouter(tc)

	withReadings := tc.CreateTestCustomer("alpha", true, false)
	ts := time.Date(2024, 3, 20, 13, 0, 0, 0, time.UTC)
	tc.CreateTestReading(withReadings.ID, ts, testutil.Float64(10), nil)

	w := performJSON(router, http.MethodDelete, "/api/v1/customers/"+withReadings.ID.String()+"/purge", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	empty := tc.CreateTestCustomer("beta", true, false)
	w = performJSON(router, http.MethodDelete, "/api/v1/customers/"+empty.ID.String()+"/purge", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = performJSON(router, http.MethodGet, "/api/v1/customers/"+empty.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
