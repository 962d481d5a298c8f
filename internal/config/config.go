// Package config provides configuration types and defaults for micromd.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/micromd/internal/log"
	"github.com/zjrosen/micromd/internal/paths"
)

// ErrInvalidOption is returned (wrapped) by Validate for any rejected value.
var ErrInvalidOption = errors.New("invalid option")

// Grammar limits mandated by CommonMark.
const (
	// DefaultLabelSizeMax is the maximum number of bytes between the brackets
	// of a label.
	DefaultLabelSizeMax = 999

	// DefaultDestinationBalanceMax is the maximum nesting of unescaped
	// parentheses in a raw destination inside a resource.
	DefaultDestinationBalanceMax = 32
)

// Config holds all configuration options for micromd.
type Config struct {
	Parse   ParseOptions   `mapstructure:"parse" yaml:"parse"`
	Compile CompileOptions `mapstructure:"compile" yaml:"compile"`
	Log     LogConfig      `mapstructure:"log" yaml:"log"`
	Tracing TracingConfig  `mapstructure:"tracing" yaml:"tracing"`
	Cache   CacheConfig    `mapstructure:"cache" yaml:"cache"`
	Watch   WatchConfig    `mapstructure:"watch" yaml:"watch"`
}

// Constructs selects which grammar rules are tried. A disabled construct
// never matches, so its syntax degrades to literal text.
type Constructs struct {
	CharacterEscape    bool `mapstructure:"character_escape" yaml:"character_escape"`
	CharacterReference bool `mapstructure:"character_reference" yaml:"character_reference"`
	Definition         bool `mapstructure:"definition" yaml:"definition"`
	HardBreakEscape    bool `mapstructure:"hard_break_escape" yaml:"hard_break_escape"`
	HardBreakTrailing  bool `mapstructure:"hard_break_trailing" yaml:"hard_break_trailing"`
	LabelStartImage    bool `mapstructure:"label_start_image" yaml:"label_start_image"`
	LabelStartLink     bool `mapstructure:"label_start_link" yaml:"label_start_link"`
	LabelEnd           bool `mapstructure:"label_end" yaml:"label_end"`
}

// ParseOptions configures the tokenizer.
type ParseOptions struct {
	Constructs            Constructs `mapstructure:"constructs" yaml:"constructs"`
	LabelSizeMax          int        `mapstructure:"label_size_max" yaml:"label_size_max"`
	DestinationBalanceMax int        `mapstructure:"destination_balance_max" yaml:"destination_balance_max"`
}

// CompileOptions configures the HTML compiler.
type CompileOptions struct {
	// AllowDangerousProtocol keeps URLs with any protocol, such as
	// `javascript:`. Off by default.
	AllowDangerousProtocol bool `mapstructure:"allow_dangerous_protocol" yaml:"allow_dangerous_protocol"`

	// LineEnding is "lf" (default) or "crlf".
	LineEnding string `mapstructure:"line_ending" yaml:"line_ending"`
}

// LogConfig holds debug log settings.
type LogConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
	Level   string `mapstructure:"level" yaml:"level"` // debug, info, warn, error
}

// TracingConfig holds distributed tracing settings.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled" yaml:"enabled"`
	Exporter     string  `mapstructure:"exporter" yaml:"exporter"` // none, file, stdout, otlp
	FilePath     string  `mapstructure:"file_path" yaml:"file_path"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate" yaml:"sample_rate"`
}

// CacheConfig holds settings for the rendered-document cache.
type CacheConfig struct {
	TTL             time.Duration `mapstructure:"ttl" yaml:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" yaml:"cleanup_interval"`
}

// WatchConfig holds settings for `micromd watch`.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// LineEndingBytes returns the configured line ending.
func (c CompileOptions) LineEndingBytes() string {
	if c.LineEnding == "crlf" {
		return "\r\n"
	}
	return "\n"
}

// AllConstructs returns a Constructs with every construct enabled.
func AllConstructs() Constructs {
	return Constructs{
		CharacterEscape:    true,
		CharacterReference: true,
		Definition:         true,
		HardBreakEscape:    true,
		HardBreakTrailing:  true,
		LabelStartImage:    true,
		LabelStartLink:     true,
		LabelEnd:           true,
	}
}

// DefaultParseOptions returns the CommonMark parse options.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Constructs:            AllConstructs(),
		LabelSizeMax:          DefaultLabelSizeMax,
		DestinationBalanceMax: DefaultDestinationBalanceMax,
	}
}

// DefaultTracesFilePath returns the default path for trace files.
// Returns empty string if the home directory cannot be determined.
func DefaultTracesFilePath() string {
	return paths.TracesFile()
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Parse: DefaultParseOptions(),
		Compile: CompileOptions{
			AllowDangerousProtocol: false,
			LineEnding:             "lf",
		},
		Log: LogConfig{
			Enabled: false,
			Path:    "micromd.log",
			Level:   "debug",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     DefaultTracesFilePath(),
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Cache: CacheConfig{
			TTL:             10 * time.Minute,
			CleanupInterval: 30 * time.Minute,
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}

// ValidateParse checks the parse options.
func ValidateParse(opts ParseOptions) error {
	if opts.LabelSizeMax <= 0 {
		return fmt.Errorf("%w: parse.label_size_max must be positive, got %d", ErrInvalidOption, opts.LabelSizeMax)
	}
	if opts.DestinationBalanceMax <= 0 {
		return fmt.Errorf("%w: parse.destination_balance_max must be positive, got %d", ErrInvalidOption, opts.DestinationBalanceMax)
	}
	return nil
}

// ValidateCompile checks the compile options.
func ValidateCompile(opts CompileOptions) error {
	switch opts.LineEnding {
	case "", "lf", "crlf":
		return nil
	}
	return fmt.Errorf("%w: compile.line_ending must be \"lf\" or \"crlf\", got %q", ErrInvalidOption, opts.LineEnding)
}

// ValidateTracing checks the tracing configuration.
// Only validates when tracing is enabled.
func ValidateTracing(tracing TracingConfig) error {
	if !tracing.Enabled {
		return nil
	}
	switch tracing.Exporter {
	case "", "none", "stdout", "otlp":
	case "file":
		if tracing.FilePath == "" {
			return fmt.Errorf("%w: tracing.file_path is required for the file exporter", ErrInvalidOption)
		}
	default:
		return fmt.Errorf("%w: tracing.exporter must be none, file, stdout or otlp, got %q", ErrInvalidOption, tracing.Exporter)
	}
	if tracing.SampleRate < 0 || tracing.SampleRate > 1 {
		return fmt.Errorf("%w: tracing.sample_rate must be between 0 and 1, got %v", ErrInvalidOption, tracing.SampleRate)
	}
	return nil
}

// Validate checks the whole configuration.
func Validate(cfg Config) error {
	if err := ValidateParse(cfg.Parse); err != nil {
		return err
	}
	if err := ValidateCompile(cfg.Compile); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# micromd configuration

parse:
  # Grammar rules to try. Disabled rules degrade to literal text.
  constructs:
    character_escape: true
    character_reference: true
    definition: true
    hard_break_escape: true
    hard_break_trailing: true
    label_start_image: true
    label_start_link: true
    label_end: true
  label_size_max: 999          # bytes allowed between label brackets
  destination_balance_max: 32  # nested parens in a raw resource destination

compile:
  allow_dangerous_protocol: false  # keep javascript: and friends in URLs
  line_ending: lf                  # lf or crlf

log:
  enabled: false
  path: micromd.log
  level: debug

tracing:
  enabled: false
  exporter: file        # none, file, stdout, otlp
  # file_path: ~/.config/micromd/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0

cache:
  ttl: 10m
  cleanup_interval: 30m

watch:
  debounce: 200ms
`
}

// WriteDefaultConfig creates a config file with default settings.
// Creates parent directories if needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
