package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

func TestConfigInitFormats(t *testing.T) {
	tests := []struct {
		format string
		decode func(t *testing.T, data []byte) map[string]any
	}{
		{"json", func(t *testing.T, data []byte) map[string]any {
			var out map[string]any
			require.NoError(t, json.Unmarshal(data, &out))
			return out
		}},
		{"yaml", func(t *testing.T, data []byte) map[string]any {
			var out map[string]any
			require.NoError(t, yaml.Unmarshal(data, &out))
			return out
		}},
		{"toml", func(t *testing.T, data []byte) map[string]any {
			tree, err := toml.LoadBytes(data)
			require.NoError(t, err)
			return tree.ToMap()
		}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "compile."+tt.format)
			cmd := ConfigInit{Command: "compile", Format: tt.format, Output: dest}
			require.NoError(t, cmd.Run())

			data, err := os.ReadFile(dest)
			require.NoError(t, err)
			out := tt.decode(t, data)
			assert.Equal(t, ".", out["output"])
			assert.Contains(t, out, "dryRun")
			assert.NotContains(t, out, "inputs", "positional arguments stay out of config templates")
		})
	}
}

func TestConfigInitRefusesToOverwrite(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "compile.json")
	require.NoError(t, os.WriteFile(dest, []byte("{}"), 0o644))

	cmd := ConfigInit{Command: "compile", Format: "json", Output: dest}
	require.Error(t, cmd.Run())

	cmd.Force = true
	require.NoError(t, cmd.Run())
}
