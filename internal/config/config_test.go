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

	t.Setenv("PAISATRAIL_TEST_DIR", "/srv/data")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tilde prefix", "~/statements/db.sqlite", filepath.Join(home, "statements/db.sqlite")},
		{"bare tilde", "~", home},
		{"env var", "$PAISATRAIL_TEST_DIR/paisatrail.db", "/srv/data/paisatrail.db"},
		{"plain path untouched", "/var/lib/paisatrail.db", "/var/lib/paisatrail.db"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
