package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{HTTPPort: "8080", StorageDriver: "memory"}, false},
		{"postgres", Config{HTTPPort: "8080", DBHost: "localhost", DBName: "orders"}, false},
		{"missing port", Config{StorageDriver: "memory"}, true},
		{"postgres without host", Config{HTTPPort: "8080", StorageDriver: "postgres"}, true},
		{"unknown driver", Config{HTTPPort: "8080", StorageDriver: "mongo"}, true},
		{"kafka without topic", Config{HTTPPort: "8080", StorageDriver: "memory", KafkaHost: "localhost:9092"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_KafkaBrokers(t *testing.T) {
	cfg := Config{KafkaHost: "a:9092, b:9092,,"}
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers())
	assert.Empty(t, Config{}.KafkaBrokers())
}

func TestConfig_DSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "orders"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=orders sslmode=disable", cfg.DSN())
}
