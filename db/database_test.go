package db

import (
	"path/filepath"
	"testing"

	"klage_registrering_go/models"

	"github.com/stretchr/testify/assert"
)

func TestInitializeMigratesRegistreringSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	assert.NoError(t, Initialize(dbPath, "development"))
	defer Close()

	assert.True(t, DB.Migrator().HasTable(&models.Registrering{}))
	assert.True(t, DB.Migrator().HasTable(&models.Mottaker{}))
	assert.True(t, DB.Migrator().HasTable(&models.MulighetSnapshot{}))

	var journalMode string
	DB.Raw("PRAGMA journal_mode").Scan(&journalMode)
	assert.Equal(t, "wal", journalMode)

	var busyTimeout int
	DB.Raw("PRAGMA busy_timeout").Scan(&busyTimeout)
	assert.Equal(t, 5000, busyTimeout)
}
