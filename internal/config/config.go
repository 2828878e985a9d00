package config

import (
	"github.com/caarlos0/env/v11"
)

type Config struct {
	ServerAddr   string   `env:"SERVER_ADDR" envDefault:":8080"`
	DatabaseDSN  string   `env:"DATABASE_DSN" envDefault:"root:@tcp(127.0.0.1:3306)/splitbill-db"`
	RedisAddr    string   `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092,localhost:9093,localhost:9094"`
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	JWTSecret    string   `env:"JWT_SECRET" envDefault:"secret"`
}

// Load parses configuration from the environment, falling back to local
// development defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
