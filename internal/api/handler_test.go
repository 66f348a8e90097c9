package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"akabari-manager/config"
	"akabari-manager/internal/events"
	"akabari-manager/internal/models"
	"akabari-manager/internal/service"
	"akabari-manager/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewSeeded()
	bus := events.NewPublisher()
	cfg := &config.Config{
		Business: config.BusinessConfig{LeadTimeDays: 14, TargetServiceLevel: 0.95},
	}

	handler := NewHandler(
		service.NewLedgerService(st, bus),
		service.NewReportService(st),
		service.NewAnalysisService(st, nil, cfg),
		st,
	)
	router := gin.New()
	handler.SetupRoutes(router)
	return router, st
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthAndReady(t *testing.T) {
	router, _ := newTestRouter(t)

	assert.Equal(t, http.StatusOK, doJSON(router, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(router, http.MethodGet, "/ready", nil).Code)
}

func TestListProducts(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Len(t, products, 6)
}

func TestCompleteSaleEndpoint(t *testing.T) {
	router, st := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/sales", gin.H{
		"customer_id": "cust_2",
		"amount_paid": 4000,
		"items":       []gin.H{{"product_id": "prod_1", "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var sale models.Sale
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sale))
	assert.Equal(t, int64(4000), sale.Total)

	p, _ := st.GetProduct("prod_1")
	assert.Equal(t, 41, p.Stock)
}

func TestCompleteSaleValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	// Missing items fails binding.
	w := doJSON(router, http.MethodPost, "/api/v1/sales", gin.H{
		"customer_id": "cust_2",
		"amount_paid": 4000,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Zero quantity fails binding before the store sees it.
	w = doJSON(router, http.MethodPost, "/api/v1/sales", gin.H{
		"customer_id": "cust_2",
		"amount_paid": 0,
		"items":       []gin.H{{"product_id": "prod_1", "quantity": 0}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompleteSaleBusinessErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/sales", gin.H{
		"customer_id": "cust_2",
		"amount_paid": 0,
		"items":       []gin.H{{"product_id": "prod_4", "quantity": 10}},
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/sales", gin.H{
		"customer_id": "walk-in",
		"amount_paid": 0,
		"items":       []gin.H{{"product_id": "prod_1", "quantity": 1}},
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/sales", gin.H{
		"customer_id": "cust_999",
		"amount_paid": 0,
		"items":       []gin.H{{"product_id": "prod_1", "quantity": 1}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderLifecycleEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/orders", gin.H{
		"waiter_id":   "waiter_1",
		"customer_id": "cust_3",
		"items":       []gin.H{{"product_id": "prod_5", "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, models.OrderStatusPending, order.Status)

	w = doJSON(router, http.MethodPost, "/api/v1/orders/"+order.ID+"/settle", gin.H{"payment": 3000})
	require.Equal(t, http.StatusOK, w.Code)

	var settlement models.Settlement
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settlement))
	assert.True(t, settlement.Closed)
}

func TestSettleOrderErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/orders/order_999/settle", gin.H{"payment": 1000})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/orders/order_1/settle", gin.H{"payment": 99999})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAddStockEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/stock", gin.H{
		"product_id":    "prod_2",
		"quantity":      1,
		"quantity_type": "cases",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var product models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, 22, product.Stock)

	w = doJSON(router, http.MethodPost, "/api/v1/stock", gin.H{
		"product_id":    "prod_2",
		"quantity":      1,
		"quantity_type": "pallets",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{
		"/api/v1/reports/dashboard",
		"/api/v1/reports/sales",
		"/api/v1/reports/debts",
		"/api/v1/reports/stock",
		"/api/v1/reports/overview",
	} {
		w := doJSON(router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestAnalysisEndpointWithoutAPIKey(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/analysis/stock", gin.H{"product_id": "prod_1"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/analysis/stock", gin.H{"product_id": "prod_999"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddCustomerAndExpenseEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/customers", gin.H{
		"name":    "Alice Mukamana",
		"contact": "+250788000111",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/expenses", gin.H{
		"category":    "Utilities",
		"amount":      12000,
		"description": "Water bill",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/expenses", gin.H{
		"category":    "Bribes",
		"amount":      12000,
		"description": "nope",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
