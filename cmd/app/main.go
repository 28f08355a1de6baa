package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightseats/config"
	"github.com/Domenick1991/flightseats/internal/bootstrap"
	"github.com/Domenick1991/flightseats/internal/cache"
	"github.com/Domenick1991/flightseats/internal/email"
	"github.com/Domenick1991/flightseats/internal/events"
	"github.com/Domenick1991/flightseats/internal/kafka"
	"github.com/Domenick1991/flightseats/internal/logger"
	"github.com/Domenick1991/flightseats/internal/service/booking"
	"github.com/Domenick1991/flightseats/internal/service/flights"
	"go.uber.org/zap"
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

	lg, err := logger.New(cfg.Log, "flightseats")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	flightOpts := []flights.FlightServiceOption{flights.WithLogger(lg.Named("flights"))}
	if cfg.Redis.Addr != "" {
		flightOpts = append(flightOpts, flights.WithCache(cache.NewRedisCache(cfg.Redis, cfg.Booking.CacheTTL())))
	}
	flightService := flights.NewFlightService(flightOpts...)

	var producer booking.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers, lg.Named("kafka"))
		defer kafkaProducer.Close()
		if err := kafkaProducer.CheckConnection(ctx); err != nil {
			lg.Warn("kafka is not reachable, events may be lost", zap.Error(err))
		}
		producer = kafkaProducer
	} else {
		bus := events.NewGoChannelPublisher(lg.Named("events"))
		defer bus.Close()
		sender := email.NewSender(lg.Named("email"))
		go func() {
			if err := bus.Forward(ctx, cfg.Kafka.NotificationsTopic, sender.Send); err != nil {
				lg.Error("notification forwarding stopped", zap.Error(err))
			}
		}()
		producer = bus
	}

	bookingService := booking.NewBookingService(
		flightService,
		booking.WithProducer(producer, cfg.Kafka.BookingTopic),
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithLatency(cfg.Booking.Latency()),
		booking.WithWorkers(cfg.Booking.Workers),
		booking.WithLogger(lg.Named("booking")),
	)

	if err := bootstrap.Run(ctx, cfg, lg, flightService, bookingService); err != nil {
		lg.Fatal("server error", zap.Error(err))
	}
}
