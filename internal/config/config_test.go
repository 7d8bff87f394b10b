package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
packages: ["./examples/..."]
roots: [geometry.Polygon, graph.Node]
deep: false
log_level: debug
format: YAML
`))
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.Version)
	assert.Equal(t, []string{"./examples/..."}, cfg.Packages)
	assert.Equal(t, []string{"geometry.Polygon", "graph.Node"}, cfg.Roots)
	assert.False(t, cfg.IsDeep())
	assert.Equal(t, FormatYAML, cfg.Format)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	assert.NoError(t, cfg.Validate())
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "1", cfg.Version)
	assert.True(t, cfg.IsDeep())
	assert.Equal(t, FormatText, cfg.Format)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("roots: ["))
	assert.ErrorContains(t, err, "failed to parse config YAML")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr []string
	}{
		{
			name: "manifest source",
			cfg:  Config{Manifest: "types.yaml", Roots: []string{"Point"}, LogLevel: "info", Format: FormatText},
		},
		{
			name:    "no source",
			cfg:     Config{Roots: []string{"Point"}, LogLevel: "info", Format: FormatText},
			wantErr: []string{"either packages or manifest is required"},
		},
		{
			name: "both sources and no roots",
			cfg: Config{
				Packages: []string{"./..."}, Manifest: "types.yaml",
				LogLevel: "info", Format: FormatText,
			},
			wantErr: []string{"mutually exclusive", "at least one root type"},
		},
		{
			name: "bad format and level",
			cfg: Config{
				Packages: []string{"./..."}, Roots: []string{"Point"},
				LogLevel: "loud", Format: "json",
			},
			wantErr: []string{`unknown format "json"`, `invalid log level "loud"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typegraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("manifest: types.yaml\nroots: [Point]\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "types.yaml", cfg.Manifest)
	assert.Equal(t, FormatText, cfg.Format)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}
