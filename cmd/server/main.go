package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"akabari-manager/config"
	"akabari-manager/internal/api"
	"akabari-manager/internal/events"
	"akabari-manager/internal/models"
	"akabari-manager/internal/redisclient"
	"akabari-manager/internal/service"
	"akabari-manager/internal/store"
	"akabari-manager/internal/util"
	"akabari-manager/internal/worker"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting akabari manager")

	tp, err := util.InitTracer("akabari-manager", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	ledgerStore := store.NewSeeded()
	log.Println("Ledger store seeded")

	// Redis is optional; without it the analysis cache is an always-miss
	// no-op and everything else is unaffected.
	var redisClient *redisclient.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Printf("Redis unavailable, analysis cache disabled: %v", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("Redis connected")
		}
	}

	eventPublisher := events.NewPublisher()

	ledgerService := service.NewLedgerService(ledgerStore, eventPublisher)
	reportService := service.NewReportService(ledgerStore)
	analysisService := service.NewAnalysisService(ledgerStore, redisClient, cfg)

	eventPublisher.OnStockAdded(func(ctx context.Context, e *models.StockAddedEvent) error {
		analysisService.InvalidateProduct(ctx, e.ProductID)
		return nil
	})

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	lowStockWorker := worker.NewLowStockWorker(ledgerStore, eventPublisher,
		time.Duration(cfg.Business.LowStockCheckSeconds)*time.Second)
	go lowStockWorker.Start(workerCtx)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handler := api.NewHandler(ledgerService, reportService, analysisService, ledgerStore)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()

	log.Println("Server exited")
}
