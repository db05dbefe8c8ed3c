package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, "http://localhost:8080", cfg.InventoryBaseURL)
	assert.Equal(t, 5*time.Second, cfg.InventoryTimeout)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "order-api", cfg.ServiceName)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")
	t.Setenv("INVENTORY_TIMEOUT", "250ms")

	cfg := Load()
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 250*time.Millisecond, cfg.InventoryTimeout)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("INVENTORY_TIMEOUT", "soon")
	cfg := Load()
	assert.Equal(t, 5*time.Second, cfg.InventoryTimeout)
}
