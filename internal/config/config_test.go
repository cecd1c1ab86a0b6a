package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields the zero config", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, &Config{}, cfg)
	})

	t.Run("round trips through Save", func(t *testing.T) {
		dir := t.TempDir()

		want := &Config{Server: "https://loftiermovies.com", Output: "json"}
		require.NoError(t, Save(dir, want))

		got, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		info, err := os.Stat(filepath.Join(dir, configFileName))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("server: [unclosed"), 0600))

		_, err := Load(dir)
		require.Error(t, err)
	})
}

func TestConfig_BaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "default api path",
			cfg:  Config{Server: "https://loftiermovies.com"},
			want: "https://loftiermovies.com/api",
		},
		{
			name: "trailing slash on server",
			cfg:  Config{Server: "https://loftiermovies.com/"},
			want: "https://loftiermovies.com/api",
		},
		{
			name: "custom api path",
			cfg:  Config{Server: "http://localhost:5000", APIPath: "/v2/"},
			want: "http://localhost:5000/v2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.BaseURL())
		})
	}
}
