package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/marcosvbalencar/portfolio-advisor/internal/strategy"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	Redis    RedisConfig
	Strategy strategy.RuleConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
	Host string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers    []string
	PriceTopic string
	PlanTopic  string
	GroupID    string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
}

// Load reads configuration from environment variables. A malformed strategy
// threshold or size is a hard error: the engine must not run with a broken
// rule table.
func Load() (*Config, error) {
	rules, err := loadRules()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "portfolioadvisor"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Kafka: KafkaConfig{
			Brokers:    strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			PriceTopic: getEnv("KAFKA_PRICE_TOPIC", "market-prices"),
			PlanTopic:  getEnv("KAFKA_PLAN_TOPIC", "rebalancing-plans"),
			GroupID:    getEnv("KAFKA_GROUP_ID", "portfolio-advisor"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Strategy: rules,
	}, nil
}

// loadRules builds the strategy rule table from defaults plus any STRATEGY_*
// environment overrides.
func loadRules() (strategy.RuleConfig, error) {
	rules := strategy.DefaultRuleConfig()

	overrides := []struct {
		key    string
		target *decimal.Decimal
	}{
		{"STRATEGY_HARD_SELL_THRESHOLD", &rules.HardSell.Threshold},
		{"STRATEGY_HARD_SELL_SIZE_PCT", &rules.HardSell.SizePct},
		{"STRATEGY_TRIM_THRESHOLD", &rules.Trim.Threshold},
		{"STRATEGY_TRIM_SIZE_PCT", &rules.Trim.SizePct},
		{"STRATEGY_SOFT_SELL_THRESHOLD", &rules.SoftSell.Threshold},
		{"STRATEGY_SOFT_SELL_SIZE_PCT", &rules.SoftSell.SizePct},
	}
	for _, o := range overrides {
		raw := os.Getenv(o.key)
		if raw == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return strategy.RuleConfig{}, fmt.Errorf("invalid %s %q: %w", o.key, raw, err)
		}
		*o.target = v
	}

	if v := os.Getenv("STRATEGY_HARD_SELL_RATIONALE"); v != "" {
		rules.HardSell.Rationale = v
	}
	if v := os.Getenv("STRATEGY_TRIM_RATIONALE"); v != "" {
		rules.Trim.Rationale = v
	}
	if v := os.Getenv("STRATEGY_SOFT_SELL_RATIONALE"); v != "" {
		rules.SoftSell.Rationale = v
	}

	if err := rules.Validate(); err != nil {
		return strategy.RuleConfig{}, err
	}
	return rules, nil
}

// ConnectionString returns the PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.DBName + "?sslmode=" + d.SSLMode
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
