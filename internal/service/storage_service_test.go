package service

import (
	"context"
	"first20_backend/internal/config"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewStorageService(localStorage(dir))
	ctx := context.Background()

	url, err := s.UploadBytes(ctx, "calendars/a/b.ics", []byte("BEGIN:VCALENDAR"), "text/calendar")
	require.NoError(t, err)
	assert.Equal(t, "http://files.test/uploads/calendars/a/b.ics", url)

	data, err := os.ReadFile(filepath.Join(dir, "calendars", "a", "b.ics"))
	require.NoError(t, err)
	assert.Equal(t, "BEGIN:VCALENDAR", string(data))

	require.NoError(t, s.Delete(ctx, "calendars/a/b.ics"))
	_, err = os.Stat(filepath.Join(dir, "calendars", "a", "b.ics"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	s := NewStorageService(localStorage(t.TempDir()))

	_, err := s.UploadBytes(context.Background(), "../outside.txt", []byte("x"), "text/plain")
	assert.Error(t, err)
}

func TestNewStorageService_UnknownTypeFallsBackToLocal(t *testing.T) {
	s := NewStorageService(&config.StorageConfig{Type: "ftp", LocalPath: t.TempDir()})
	_, ok := s.Provider.(*LocalStorageProvider)
	assert.True(t, ok)
}

func TestNewDashboardCache_NilClientIsNoop(t *testing.T) {
	c := NewDashboardCache(nil, 0)
	_, ok := c.(NoopCache)
	assert.True(t, ok)
}
