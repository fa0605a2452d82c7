package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("TRIAGE_TEST_DIR", "/var/data")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty path", "", ""},
		{"absolute path untouched", "/etc/triage.yaml", "/etc/triage.yaml"},
		{"tilde expands to home", "~/triage.db", filepath.Join(home, "triage.db")},
		{"bare tilde", "~", home},
		{"env var expanded", "$TRIAGE_TEST_DIR/triage.db", "/var/data/triage.db"},
		{"mid-path tilde untouched", "/data/~/x", "/data/~/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.path))
		})
	}
}

func TestDefaultDatabasePath(t *testing.T) {
	path := DefaultDatabasePath()
	assert.NotEmpty(t, path)
	assert.True(t, filepath.IsAbs(path))
	assert.Contains(t, path, "triage.db")
}
