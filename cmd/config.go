package cmd

import (
	"fmt"
	"strings"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	StorageDriver          string
	KafkaHost              string
	KafkaOrderChangedTopic string
	RulesConfigPath        string
	TicketMetricsSchedule  string
}

// Validate checks the settings that have no usable default.
func (c Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT is required")
	}
	switch c.Storage() {
	case StorageMemory:
	case StoragePostgres:
		if c.DBHost == "" || c.DBName == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for the postgres storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.KafkaHost != "" && c.KafkaOrderChangedTopic == "" {
		return fmt.Errorf("KAFKA_ORDER_CHANGED_TOPIC is required when KAFKA_HOST is set")
	}
	return nil
}

// Storage returns the storage driver, postgres when unset.
func (c Config) Storage() string {
	if c.StorageDriver == "" {
		return StoragePostgres
	}
	return strings.ToLower(c.StorageDriver)
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	sslMode := c.DBSslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode)
}
