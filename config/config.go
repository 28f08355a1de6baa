package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	GRPC    GRPCConfig    `yaml:"grpc"`
	Redis   RedisConfig   `yaml:"redis"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Booking BookingConfig `yaml:"booking"`
	Demo    DemoConfig    `yaml:"demo"`
	Log     LogConfig     `yaml:"log"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

// RedisConfig is optional; an empty Addr disables the flights cache.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// KafkaConfig is optional; with no brokers booking events go to the in-process bus.
type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type BookingConfig struct {
	LatencyMillis   int    `yaml:"latency_ms"`
	Workers         int    `yaml:"workers"`
	Strategy        string `yaml:"strategy"`
	FlightsCacheTTL int    `yaml:"flights_cache_ttl_seconds"`
}

// Latency is the simulated I/O cost of a single booking attempt.
func (b BookingConfig) Latency() time.Duration {
	return time.Duration(b.LatencyMillis) * time.Millisecond
}

func (b BookingConfig) CacheTTL() time.Duration {
	return time.Duration(b.FlightsCacheTTL) * time.Second
}

type DemoConfig struct {
	Flights        int `yaml:"flights"`
	SeatsPerFlight int `yaml:"seats_per_flight"`
	Requests       int `yaml:"requests"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// Default returns the configuration used when no file overrides a value.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{Address: ":8080"},
		GRPC: GRPCConfig{Address: ":9090"},
		Kafka: KafkaConfig{
			BookingTopic:       "booking-events",
			NotificationsTopic: "booking-notifications",
			GroupID:            "flightseats-worker",
		},
		Booking: BookingConfig{
			LatencyMillis:   1,
			Strategy:        "unbounded",
			FlightsCacheTTL: 5,
		},
		Demo: DemoConfig{
			Flights:        10,
			SeatsPerFlight: 150,
			Requests:       1000,
		},
		Log: LogConfig{Level: "info", Encoding: "json"},
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Booking.LatencyMillis < 0 {
		return fmt.Errorf("booking.latency_ms must not be negative")
	}
	if c.Booking.Workers < 0 {
		return fmt.Errorf("booking.workers must not be negative")
	}
	if c.Demo.Flights <= 0 || c.Demo.SeatsPerFlight <= 0 || c.Demo.Requests < 0 {
		return fmt.Errorf("demo section requires positive flights and seats_per_flight")
	}
	return nil
}
