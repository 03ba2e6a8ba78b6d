package testutil

import (
	"first20_backend/internal/config"
	"first20_backend/pkg/database"
	"testing"
	"time"

	"gorm.io/gorm"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied
// and the badge catalog seeded. It is closed when the test completes.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitDB(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, true)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// TestConfig returns a config suitable for wiring services in tests.
func TestConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: "0", Mode: "test"},
		JWT:       config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
		Database:  config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		RateLimit: config.RateLimitConfig{MaxRequests: 10000, WindowMinutes: 1},
		Program:   config.ProgramConfig{TargetMinutes: 1200},
	}
}
