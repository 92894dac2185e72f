package db

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbedded(t *testing.T) {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	raw, err := fs.ReadFile(migrations, files[0])
	require.NoError(t, err)
	sql := string(raw)

	assert.True(t, strings.HasPrefix(sql, "-- +goose Up"))
	assert.Contains(t, sql, "-- +goose Down")
	assert.Contains(t, sql, "CREATE EXTENSION IF NOT EXISTS btree_gist")
	assert.Contains(t, sql, "appointments_no_overlap EXCLUDE USING gist")
	assert.Contains(t, sql, "WHERE (status <> 'canceled')")
	assert.Contains(t, sql, "CHECK (start_time < end_time)")
}
