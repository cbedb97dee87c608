package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envBindings {
		t.Setenv(env, "")
		require.NoError(t, os.Unsetenv(env))
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestNewFileDefaults(t *testing.T) {
	clearEnv(t)

	f, err := NewFile(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, 5000*time.Millisecond, f.Interval())
	assert.False(t, f.Verbose())
	assert.Equal(t, "warn", f.LogLevel())
	assert.False(t, f.NoColor())
	_, ok := f.BatteryID()
	assert.False(t, ok)

	fields := f.LogrusFields()
	assert.Equal(t, "5s", fields["interval"])
	assert.NotContains(t, fields, "id")
}

func TestNewFileEmptyPath(t *testing.T) {
	clearEnv(t)

	f, err := NewFile("")
	require.NoError(t, err)
	assert.Equal(t, 5000*time.Millisecond, f.Interval())
}

func TestNewFileFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "json",
			file: "config.json",
			content: `{
  "interval": 1500,
  "verbose": true,
  "logLevel": "debug",
  "id": 1,
  "noColor": true
}`,
		},
		{
			name: "yaml",
			file: "config.yaml",
			content: `interval: 1500
verbose: true
logLevel: debug
id: 1
noColor: true
`,
		},
		{
			name: "toml",
			file: "config.toml",
			content: `interval = 1500
verbose = true
logLevel = "debug"
id = 1
noColor = true
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)

			f, err := NewFile(writeConfig(t, tt.file, tt.content))
			require.NoError(t, err)

			assert.Equal(t, 1500*time.Millisecond, f.Interval())
			assert.True(t, f.Verbose())
			assert.Equal(t, "debug", f.LogLevel())
			assert.True(t, f.NoColor())
			id, ok := f.BatteryID()
			assert.True(t, ok)
			assert.Equal(t, 1, id)
		})
	}
}

func TestNewFilePartial(t *testing.T) {
	clearEnv(t)

	f, err := NewFile(writeConfig(t, "config.json", `{"verbose": true}`))
	require.NoError(t, err)

	assert.True(t, f.Verbose())
	assert.Equal(t, 5000*time.Millisecond, f.Interval())
	assert.Equal(t, "warn", f.LogLevel())
}

func TestNewFileEnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("BATTCHECK_INTERVAL", "250")
	t.Setenv("BATTCHECK_LOG_LEVEL", "trace")
	t.Setenv("BATTCHECK_ID", "2")

	f, err := NewFile(writeConfig(t, "config.yaml", "interval: 1000\nlogLevel: info\n"))
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, f.Interval())
	assert.Equal(t, "trace", f.LogLevel())
	id, ok := f.BatteryID()
	assert.True(t, ok)
	assert.Equal(t, 2, id)
}

func TestNewFileInvalid(t *testing.T) {
	clearEnv(t)

	_, err := NewFile(writeConfig(t, "config.json", `{"interval": `))
	assert.Error(t, err)

	_, err = NewFile(writeConfig(t, "config.json", `{"id": -1}`))
	assert.Error(t, err)

	_, err = NewFile(writeConfig(t, "config.json", `{"interval": 9300000000000}`))
	assert.Error(t, err)
}
