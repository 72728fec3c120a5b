package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
http:
  address: ":8080"
database:
  host: localhost
  port: 5432
  user: app
  password: secret
  name: tripbooking
  ssl_mode: disable
redis:
  addr: localhost:6379
kafka:
  brokers: ["localhost:9092"]
  notifications_topic: notifications
  group_id: tripbooking-worker
afs:
  base_url: https://afs.example.com
  api_key: key-123
  timeout_seconds: 10
auth:
  verify_url: https://auth.example.com/verify
  timeout_seconds: 5
booking:
  horizon_days: 365
  search_cache_ttl_seconds: 60
  reservation_lock_ttl_seconds: 10
`)
	assert.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 365, cfg.Booking.HorizonDays)
	assert.Equal(t, "key-123", cfg.AFS.APIKey)
	assert.Equal(t, "host=localhost port=5432 user=app password=secret dbname=tripbooking sslmode=disable", cfg.Database.DSN())
}

func TestLoadConfig_missingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
