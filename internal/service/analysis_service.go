package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"akabari-manager/config"
	"akabari-manager/internal/ai"
	"akabari-manager/internal/redisclient"
	"akabari-manager/internal/store"
	"akabari-manager/internal/util"

	"go.uber.org/zap"
)

// ErrAnalysisNotConfigured is returned when no Gemini API key is set.
var ErrAnalysisNotConfigured = errors.New("analysis: GEMINI_API_KEY is not configured")

// AnalysisService runs the AI stock-depletion analysis. It reads the
// ledger, never writes it; an analysis failure is only a failed report.
type AnalysisService struct {
	store  *store.Store
	cache  *redisclient.Client
	cfg    *config.Config
	logger *zap.Logger
}

// NewAnalysisService creates a new analysis service. cache may be nil.
func NewAnalysisService(st *store.Store, cache *redisclient.Client, cfg *config.Config) *AnalysisService {
	return &AnalysisService{
		store:  st,
		cache:  cache,
		cfg:    cfg,
		logger: util.GetLogger(),
	}
}

// AnalyzeStockRequest selects the product to analyze.
type AnalyzeStockRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type saleEvent struct {
	Date     time.Time `json:"date"`
	Quantity int       `json:"quantity"`
}

// AnalyzeStock gathers a product's sale history and asks the AI agent
// for a depletion analysis and restock suggestion. Results are cached
// per product when Redis is configured.
func (a *AnalysisService) AnalyzeStock(ctx context.Context, productID string) (*ai.AnalysisResult, error) {
	ctx, span := util.StartSpan(ctx, "AnalysisService.AnalyzeStock")
	defer span.End()

	product, err := a.store.GetProduct(productID)
	if err != nil {
		util.AnalysisRequestsTotal.WithLabelValues("unknown_product").Inc()
		return nil, err
	}

	cacheKey := fmt.Sprintf("analysis:%s", product.ID)
	var cached ai.AnalysisResult
	hit, err := a.cache.GetJSON(ctx, cacheKey, &cached)
	if err != nil {
		a.logger.Warn("Analysis cache read failed", zap.String("key", cacheKey), zap.Error(err))
	}
	if hit {
		util.AnalysisRequestsTotal.WithLabelValues("cache_hit").Inc()
		return &cached, nil
	}

	if a.cfg.AI.GeminiAPIKey == "" {
		util.AnalysisRequestsTotal.WithLabelValues("not_configured").Inc()
		return nil, ErrAnalysisNotConfigured
	}

	history := make([]saleEvent, 0)
	for _, sale := range a.store.ListSales() {
		for _, it := range sale.Items {
			if it.ProductID == product.ID {
				history = append(history, saleEvent{Date: sale.Date, Quantity: it.Quantity})
			}
		}
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sales history: %w", err)
	}

	start := time.Now()
	result, err := ai.AnalyzeStockDepletion(ctx, a.cfg.AI.GeminiAPIKey, a.cfg.AI.Model, ai.AnalysisInput{
		ProductName:         product.Name,
		HistoricalSalesData: string(historyJSON),
		CurrentStockLevel:   product.Stock,
		LeadTimeDays:        a.cfg.Business.LeadTimeDays,
		TargetServiceLevel:  a.cfg.Business.TargetServiceLevel,
	})
	util.AnalysisLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		util.AnalysisRequestsTotal.WithLabelValues("error").Inc()
		a.logger.Error("Stock analysis failed", zap.String("product_id", product.ID), zap.Error(err))
		return nil, err
	}

	util.AnalysisRequestsTotal.WithLabelValues("ok").Inc()
	a.logger.Info("Stock analysis completed",
		zap.String("product_id", product.ID),
		zap.String("product", product.Name),
		zap.Int64("suggested_restock", result.SuggestedRestockAmount))

	ttl := time.Duration(a.cfg.Business.AnalysisCacheTTLSeconds) * time.Second
	if err := a.cache.SetJSON(ctx, cacheKey, result, ttl); err != nil {
		a.logger.Warn("Analysis cache write failed", zap.String("key", cacheKey), zap.Error(err))
	}
	return result, nil
}

// InvalidateProduct drops a product's cached analysis, used after a
// restock changes the picture.
func (a *AnalysisService) InvalidateProduct(ctx context.Context, productID string) {
	if err := a.cache.Delete(ctx, fmt.Sprintf("analysis:%s", productID)); err != nil {
		a.logger.Warn("Analysis cache invalidation failed", zap.String("product_id", productID), zap.Error(err))
	}
}
