package database

import (
	"first20_backend/internal/config"
	"first20_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		d, err := Dialector(&config.DatabaseConfig{Driver: driver, Path: ":memory:"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestInitDB_SeedsBadgesOnce(t *testing.T) {
	db, err := InitDB(&config.DatabaseConfig{Driver: "sqlite", Path: "file::memory:"}, true)
	require.NoError(t, err)

	require.NoError(t, SeedBadges(db))

	var count int64
	require.NoError(t, db.Model(&model.Badge{}).Count(&count).Error)
	assert.Equal(t, int64(len(model.DefaultBadges)), count)
}
