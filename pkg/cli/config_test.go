package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserConfig_ActiveProfile(t *testing.T) {
	cfg := &UserConfig{
		CurrentProfile: "default",
		Profiles: map[string]Profile{
			"default": {Input: "exports/default.csv", Output: "table"},
			"audit":   {Input: "exports/audit.csv", Output: "json", BaselineThreshold: 90},
		},
	}

	tests := []struct {
		name      string
		override  string
		wantInput string
	}{
		{name: "uses current profile", override: "", wantInput: "exports/default.csv"},
		{name: "override to audit", override: "audit", wantInput: "exports/audit.csv"},
		{name: "nonexistent profile returns empty", override: "missing", wantInput: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := cfg.ActiveProfile(tt.override)
			assert.Equal(t, tt.wantInput, p.Input)
		})
	}
}

func TestSaveAndLoadUserConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := &UserConfig{
		CurrentProfile: "audit",
		Profiles: map[string]Profile{
			"audit": {
				Input:             "exports/audit.csv",
				Output:            "json",
				BaselineThreshold: 90,
				AnomalyThreshold:  5,
				Grouping:          "unit-title",
			},
		},
	}
	require.NoError(t, SaveUserConfig(cfg))

	loaded, err := LoadUserConfig()
	require.NoError(t, err)
	assert.Equal(t, "audit", loaded.CurrentProfile)
	assert.Equal(t, cfg.Profiles["audit"], loaded.Profiles["audit"])

	info, err := os.Stat(ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadUserConfigMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := LoadUserConfig()
	require.Error(t, err)
}

func TestSetProfileCommand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"config", "set-profile", "--name", "audit", "--input", "exports/audit.csv", "--grouping", "unit-title"})
	require.NoError(t, rootCmd.Execute())

	loaded, err := LoadUserConfig()
	require.NoError(t, err)
	assert.Equal(t, "exports/audit.csv", loaded.Profiles["audit"].Input)
	assert.Equal(t, "unit-title", loaded.Profiles["audit"].Grouping)
	assert.FileExists(t, filepath.Join(home, ".entreview", "config.yaml"))
}

func TestUseProfileCommandRejectsUnknown(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{"config", "use-profile", "missing"})
	require.Error(t, rootCmd.Execute())
}
