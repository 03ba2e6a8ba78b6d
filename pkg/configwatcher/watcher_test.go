package configwatcher

import (
	"context"
	"first20_backend/internal/config"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, file, level string) {
	t.Helper()
	body := fmt.Sprintf(`log:
  level: %s
jwt:
  secret: watcher-test-secret
storage:
  local_path: %s
cors:
  allowed_origins: ["http://localhost:5173"]
`, level, filepath.Join(filepath.Dir(file), "uploads"))
	require.NoError(t, os.WriteFile(file, []byte(body), 0o644))
}

func TestWatchConfigReloads(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	writeConfig(t, file, "info")

	reloaded := make(chan *config.Config, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, file, func(cfg *config.Config) { reloaded <- cfg })
	}()

	deadline := time.After(10 * time.Second)
	tick := time.NewTicker(2 * time.Second)
	defer tick.Stop()

	var got *config.Config
	for got == nil {
		select {
		case got = <-reloaded:
		case <-tick.C:
			writeConfig(t, file, "debug")
		case <-deadline:
			t.Fatal("config was not reloaded")
		}
	}
	assert.Equal(t, "debug", got.Log.Level)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchConfigMissingDir(t *testing.T) {
	err := WatchConfig(context.Background(), filepath.Join(t.TempDir(), "nope", "config.yaml"), func(*config.Config) {})
	assert.Error(t, err)
}
