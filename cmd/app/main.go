package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/lessonbooking/config"
	"github.com/Domenick1991/lessonbooking/internal/bootstrap"
	"github.com/Domenick1991/lessonbooking/internal/cache"
	"github.com/Domenick1991/lessonbooking/internal/kafka"
	"github.com/Domenick1991/lessonbooking/internal/repository"
	"github.com/Domenick1991/lessonbooking/internal/service/catalog"
	"github.com/Domenick1991/lessonbooking/internal/service/orders"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	lessonRepo := repository.NewLessonRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	catalogService := catalog.NewCatalogService(lessonRepo, redisCache, cfg.Catalog.MaxQueryLength)
	orderService := orders.NewOrderService(
		orderRepo,
		redisCache,
		producer,
		cfg.Kafka.OrderEventsTopic,
		orders.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, catalogService, orderService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
