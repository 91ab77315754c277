package migrations_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/jhoicas/Vitrine-api/internal/infrastructure/postgres/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigraciones_TienenUpYDown(t *testing.T) {
	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		data, err := fs.ReadFile(migrations.FS, f)
		require.NoError(t, err)
		content := string(data)
		assert.Contains(t, content, "-- +goose Up", f)
		assert.Contains(t, content, "-- +goose Down", f)
	}
}

func TestMigraciones_RestriccionesDelCatalogo(t *testing.T) {
	all := readAll(t)

	checks := []string{
		"CHECK (max_images_per_product BETWEEN 1 AND 50)",
		"UNIQUE (product_id, min_quantity)",
		"UNIQUE (user_id, name)",
		"CREATE TABLE IF NOT EXISTS product_images",
		"CREATE TABLE IF NOT EXISTS pix_payouts",
	}
	for _, sub := range checks {
		assert.True(t, strings.Contains(all, sub), "falta %q", sub)
	}
}

func readAll(t *testing.T) string {
	t.Helper()
	files, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	var b strings.Builder
	for _, f := range files {
		data, err := fs.ReadFile(migrations.FS, f)
		require.NoError(t, err)
		b.Write(data)
	}
	return b.String()
}
