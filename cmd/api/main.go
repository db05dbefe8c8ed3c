package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kadianKunal/OrderManagement/internal/config"
	"github.com/kadianKunal/OrderManagement/internal/httpx"
	"github.com/kadianKunal/OrderManagement/internal/inventory"
	kafkax "github.com/kadianKunal/OrderManagement/internal/kafka"
	"github.com/kadianKunal/OrderManagement/internal/orders"
	"github.com/kadianKunal/OrderManagement/internal/postgres"
	"github.com/kadianKunal/OrderManagement/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers, one per lifecycle topic
	placed := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024, logger)
	placed.Start(ctx)
	cancelled := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCancelled, 1024, logger)
	cancelled.Start(ctx)

	// Service & handler
	repo := &orders.Repo{DB: db}
	inv := inventory.NewClient(cfg.InventoryBaseURL, cfg.InventoryTimeout)
	svc := orders.NewService(repo, inv, logger)

	router := httpx.NewRouter()
	oh := &httpx.OrdersHandler{
		Orders:    svc,
		Redis:     rdb,
		Placed:    placed,
		Cancelled: cancelled,
		Log:       logger,
		Service:   cfg.ServiceName,
	}
	oh.Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		logger.Info("HTTP listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	placed.Close() // close inbox -> flush & close writer
	cancelled.Close()
	placed.WaitClosed() // drain
	cancelled.WaitClosed()
}
