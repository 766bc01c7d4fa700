package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/vshevel/roombooking/config"
	"github.com/vshevel/roombooking/internal/bootstrap"
	"github.com/vshevel/roombooking/internal/cache"
	"github.com/vshevel/roombooking/internal/kafka"
	"github.com/vshevel/roombooking/internal/service/booking"
	"github.com/vshevel/roombooking/internal/snapshot"
	"github.com/vshevel/roombooking/internal/store"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := bootstrap.NewLogger(cfg.Env)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snap := snapshot.NewManager(cfg.Snapshot.Path, logger)
	bookingStore := store.New(snap, logger)

	var bookingsCache booking.Cache
	if cfg.Redis.Addr != "" {
		bookingsCache = cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Cache.BookingsTTLSeconds)*time.Second)
	}

	var producer booking.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer kafkaProducer.Close()
		producer = kafkaProducer
	}

	bookingService := booking.NewBookingService(
		bookingStore,
		bookingsCache,
		producer,
		cfg.Kafka.BookingEventsTopic,
		logger,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, logger, bookingService); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
