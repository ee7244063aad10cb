package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REPORTS_DIR", filepath.Join(t.TempDir(), "reports"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, "https://maps.googleapis.com/maps/api/streetview", cfg.Google.StreetViewURL)
	require.InDelta(t, 0.5, cfg.Model.ConfThreshold, 1e-9)
	require.InDelta(t, 0.45, cfg.Model.NMSThreshold, 1e-9)
	require.Equal(t, 640, cfg.Model.InputSize)
	require.DirExists(t, cfg.Reports.Dir)
}

func TestLoadReadsEnv(t *testing.T) {
	t.Setenv("REPORTS_DIR", filepath.Join(t.TempDir(), "reports"))
	t.Setenv("GOOGLE_API_KEY", "test-key")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "test-key", cfg.Google.APIKey)
	require.Equal(t, "9090", cfg.Server.Port)
}
