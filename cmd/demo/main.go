package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Domenick1991/flightseats/config"
	"github.com/Domenick1991/flightseats/internal/demo"
	"github.com/Domenick1991/flightseats/internal/logger"
	"github.com/Domenick1991/flightseats/internal/service/booking"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Default()
	if cfgPath := os.Getenv("CONFIG_PATH"); cfgPath != "" {
		loaded, err := config.LoadConfig(cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = *loaded
	}

	lg, err := logger.New(cfg.Log, "flightseats-demo")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer lg.Sync()

	fmt.Printf("Booking %d requests across %d flights of %d seats\n",
		cfg.Demo.Requests, cfg.Demo.Flights, cfg.Demo.SeatsPerFlight)

	runs, err := demo.Compare(context.Background(), cfg.Demo, cfg.Booking.Workers,
		booking.WithLatency(cfg.Booking.Latency()),
		booking.WithLogger(lg.Named("booking")),
	)
	if err != nil {
		lg.Fatal("demo failed", zap.Error(err))
	}
	for _, run := range runs {
		fmt.Println(run)
	}
}
