package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := migrationFiles.ReadDir(".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		assert.True(t, strings.HasSuffix(e.Name(), ".sql"), "unexpected file %s", e.Name())

		data, err := migrationFiles.ReadFile(e.Name())
		require.NoError(t, err)
		assert.NotEmpty(t, strings.TrimSpace(string(data)))
	}
}
