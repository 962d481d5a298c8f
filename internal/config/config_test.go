package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.Equal(t, DefaultParseOptions(), cfg.Parse)
	require.Equal(t, 999, cfg.Parse.LabelSizeMax)
	require.Equal(t, 32, cfg.Parse.DestinationBalanceMax)
	require.False(t, cfg.Compile.AllowDangerousProtocol)
	require.Equal(t, "\n", cfg.Compile.LineEndingBytes())
	require.NoError(t, Validate(cfg))
}

func TestAllConstructs(t *testing.T) {
	c := AllConstructs()
	require.True(t, c.CharacterEscape)
	require.True(t, c.CharacterReference)
	require.True(t, c.Definition)
	require.True(t, c.HardBreakEscape)
	require.True(t, c.HardBreakTrailing)
	require.True(t, c.LabelStartImage)
	require.True(t, c.LabelStartLink)
	require.True(t, c.LabelEnd)
}

func TestCompileOptions_LineEndingBytes(t *testing.T) {
	require.Equal(t, "\r\n", CompileOptions{LineEnding: "crlf"}.LineEndingBytes())
	require.Equal(t, "\n", CompileOptions{LineEnding: "lf"}.LineEndingBytes())
	require.Equal(t, "\n", CompileOptions{}.LineEndingBytes())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:    "zero label size",
			mutate:  func(c *Config) { c.Parse.LabelSizeMax = 0 },
			wantErr: "label_size_max",
		},
		{
			name:    "negative balance",
			mutate:  func(c *Config) { c.Parse.DestinationBalanceMax = -1 },
			wantErr: "destination_balance_max",
		},
		{
			name:    "unknown line ending",
			mutate:  func(c *Config) { c.Compile.LineEnding = "cr" },
			wantErr: "line_ending",
		},
		{
			name: "unknown exporter ignored while tracing is off",
			mutate: func(c *Config) {
				c.Tracing.Exporter = "kafka"
			},
		},
		{
			name: "unknown exporter",
			mutate: func(c *Config) {
				c.Tracing.Enabled = true
				c.Tracing.Exporter = "kafka"
			},
			wantErr: "tracing.exporter",
		},
		{
			name: "file exporter without path",
			mutate: func(c *Config) {
				c.Tracing.Enabled = true
				c.Tracing.Exporter = "file"
				c.Tracing.FilePath = ""
			},
			wantErr: "file_path",
		},
		{
			name: "sample rate out of range",
			mutate: func(c *Config) {
				c.Tracing.Enabled = true
				c.Tracing.Exporter = "stdout"
				c.Tracing.SampleRate = 1.5
			},
			wantErr: "sample_rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidOption))
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	cfg := Config{}
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &cfg))

	want := Defaults()
	require.Equal(t, want.Parse, cfg.Parse)
	require.Equal(t, want.Compile, cfg.Compile)
	require.Equal(t, want.Log, cfg.Log)
	require.Equal(t, want.Cache, cfg.Cache)
	require.Equal(t, want.Watch, cfg.Watch)
	require.Equal(t, 200*time.Millisecond, cfg.Watch.Debounce)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := t.TempDir() + "/nested/dir/micromd.yaml"
	require.NoError(t, WriteDefaultConfig(path))

	data := readFile(t, path)
	require.True(t, strings.HasPrefix(data, "# micromd configuration"))
}
