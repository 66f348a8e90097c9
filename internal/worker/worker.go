package worker

import (
	"context"
	"sync"
	"time"

	"akabari-manager/internal/events"
	"akabari-manager/internal/models"
	"akabari-manager/internal/store"
	"akabari-manager/internal/util"

	"go.uber.org/zap"
)

// LowStockWorker watches the catalog for products at or below their low
// stock threshold. It rescans on a timer and immediately after any event
// that moves stock, keeps the low-stock gauge current, and raises a log
// alert once per dip below the threshold.
type LowStockWorker struct {
	store    *store.Store
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	alerted map[string]bool
}

// NewLowStockWorker creates the worker and subscribes it to the
// stock-moving events.
func NewLowStockWorker(st *store.Store, bus *events.Publisher, interval time.Duration) *LowStockWorker {
	w := &LowStockWorker{
		store:    st,
		interval: interval,
		logger:   util.GetLogger(),
		alerted:  make(map[string]bool),
	}
	bus.OnSaleCompleted(func(_ context.Context, _ *models.SaleCompletedEvent) error {
		w.scan()
		return nil
	})
	bus.OnOrderSettled(func(_ context.Context, _ *models.OrderSettledEvent) error {
		w.scan()
		return nil
	})
	bus.OnStockAdded(func(_ context.Context, _ *models.StockAddedEvent) error {
		w.scan()
		return nil
	})
	return w
}

// Start runs the periodic scan loop until ctx is cancelled.
func (w *LowStockWorker) Start(ctx context.Context) {
	w.logger.Info("Low stock worker started", zap.Duration("interval", w.interval))
	w.scan()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Low stock worker stopped")
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *LowStockWorker) scan() {
	w.mu.Lock()
	defer w.mu.Unlock()

	low := 0
	for _, p := range w.store.ListProducts() {
		if p.Stock <= p.LowStockThreshold {
			low++
			if !w.alerted[p.ID] {
				w.alerted[p.ID] = true
				w.logger.Warn("Product low on stock",
					zap.String("product_id", p.ID),
					zap.String("product", p.Name),
					zap.Int("stock", p.Stock),
					zap.Int("threshold", p.LowStockThreshold))
			}
		} else if w.alerted[p.ID] {
			delete(w.alerted, p.ID)
			w.logger.Info("Product restocked above threshold",
				zap.String("product_id", p.ID),
				zap.String("product", p.Name),
				zap.Int("stock", p.Stock))
		}
	}
	util.LowStockProducts.Set(float64(low))
}
