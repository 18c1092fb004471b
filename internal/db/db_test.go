package db

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizitup/internal/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DatabaseDriver = config.DriverSQLite
	cfg.DatabaseURL = "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	return cfg
}

func TestOpenAndMigrateSQLite(t *testing.T) {
	conn, err := Open(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(conn) })

	require.NoError(t, Migrate(conn))
	for _, model := range []any{&Question{}, &Response{}, &DataPoint{}, &Event{}} {
		assert.True(t, conn.Migrator().HasTable(model), "missing table for %T", model)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabaseDriver = "mysql"

	_, err := Open(cfg)
	assert.Error(t, err)
}

func TestMigrateNilConnection(t *testing.T) {
	assert.Error(t, Migrate(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	conn, err := Open(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(conn) })
	require.NoError(t, Migrate(conn))

	now := time.Now().UTC()
	first := Response{QuestionID: "q1", Nickname: "alice", StartTime: now, ExpiryTime: now.Add(time.Minute)}
	require.NoError(t, conn.Create(&first).Error)

	second := Response{QuestionID: "q1", Nickname: "alice", StartTime: now, ExpiryTime: now.Add(time.Minute)}
	err = conn.Create(&second).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	other := Response{QuestionID: "q2", Nickname: "alice", StartTime: now, ExpiryTime: now.Add(time.Minute)}
	require.NoError(t, conn.Create(&other).Error)

	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
}

func TestEmbeddedMigrations(t *testing.T) {
	for _, driver := range []string{config.DriverPostgres, config.DriverSQLite} {
		entries, err := fs.ReadDir(Migrations, "migrations/"+driver)
		require.NoError(t, err)

		var names []string
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		assert.Contains(t, names, "000001_init.up.sql")
		assert.Contains(t, names, "000001_init.down.sql")
	}
}
