package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"akabari-manager/internal/service"
	"akabari-manager/internal/store"
	"akabari-manager/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	ledger   *service.LedgerService
	reports  *service.ReportService
	analysis *service.AnalysisService
	store    *store.Store
}

// NewHandler creates a new HTTP handler
func NewHandler(ledger *service.LedgerService, reports *service.ReportService, analysis *service.AnalysisService, st *store.Store) *Handler {
	return &Handler{
		ledger:   ledger,
		reports:  reports,
		analysis: analysis,
		store:    st,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", h.listProducts)
		v1.POST("/products", h.addProduct)
		v1.GET("/customers", h.listCustomers)
		v1.POST("/customers", h.addCustomer)
		v1.GET("/waiters", h.listWaiters)

		v1.GET("/sales", h.listSales)
		v1.POST("/sales", h.completeSale)

		v1.GET("/orders", h.listOrders)
		v1.POST("/orders", h.createOrder)
		v1.POST("/orders/:id/settle", h.settleOrder)

		v1.POST("/stock", h.addStock)

		v1.GET("/expenses", h.listExpenses)
		v1.POST("/expenses", h.addExpense)

		v1.GET("/reports/dashboard", h.dashboard)
		v1.GET("/reports/sales", h.salesReport)
		v1.GET("/reports/debts", h.debtReport)
		v1.GET("/reports/stock", h.stockReport)
		v1.GET("/reports/overview", h.overview)

		v1.POST("/analysis/stock", h.analyzeStock)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// statusFromError maps ledger errors to HTTP status codes. Unknown
// records are 404, business rule violations are 409, bad input is 400.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, store.ErrUnknownProduct),
		errors.Is(err, store.ErrUnknownOrder),
		errors.Is(err, store.ErrInvalidParty):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInsufficientStock),
		errors.Is(err, store.ErrOverpayment),
		errors.Is(err, store.ErrInvalidCreditRecipient):
		return http.StatusConflict
	case errors.Is(err, store.ErrEmptyCart),
		errors.Is(err, store.ErrInvalidQuantity),
		errors.Is(err, store.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAnalysisNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFromError(err), gin.H{"error": err.Error()})
}

func (h *Handler) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListProducts())
}

func (h *Handler) addProduct(c *gin.Context) {
	var req service.AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	product, err := h.ledger.AddProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) listCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListCustomers())
}

func (h *Handler) addCustomer(c *gin.Context) {
	var req service.AddCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	customer, err := h.ledger.AddCustomer(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *Handler) listWaiters(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListWaiters())
}

func (h *Handler) listSales(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListSales())
}

// completeSale handles a point-of-sale checkout
func (h *Handler) completeSale(c *gin.Context) {
	var req service.CompleteSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	sale, err := h.ledger.CompleteSale(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *Handler) listOrders(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListOpenOrders())
}

// createOrder handles opening a tab
func (h *Handler) createOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	order, err := h.ledger.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// settleOrder handles a payment against an open order
func (h *Handler) settleOrder(c *gin.Context) {
	var req service.SettleOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	settlement, err := h.ledger.SettleOrder(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settlement)
}

// addStock handles a restock
func (h *Handler) addStock(c *gin.Context) {
	var req service.AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	product, err := h.ledger.AddStock(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) listExpenses(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListExpenses())
}

func (h *Handler) addExpense(c *gin.Context) {
	var req service.AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	expense, err := h.ledger.AddExpense(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *Handler) dashboard(c *gin.Context) {
	summary, err := h.reports.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) salesReport(c *gin.Context) {
	entries, err := h.reports.SalesReport(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) debtReport(c *gin.Context) {
	debtors, err := h.reports.DebtReport(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, debtors)
}

func (h *Handler) stockReport(c *gin.Context) {
	entries, err := h.reports.StockReport(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	bestSellers, err := h.reports.BestSellers(c.Request.Context(), 5)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products":     entries,
		"best_sellers": bestSellers,
	})
}

func (h *Handler) overview(c *gin.Context) {
	points, err := h.reports.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// analyzeStock handles an AI stock depletion analysis request
func (h *Handler) analyzeStock(c *gin.Context) {
	var req service.AnalyzeStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	result, err := h.analysis.AnalyzeStock(c.Request.Context(), req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
