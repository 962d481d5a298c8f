package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/micromd/internal/config"
	"github.com/zjrosen/micromd/internal/log"
	"github.com/zjrosen/micromd/internal/markdown"
	"github.com/zjrosen/micromd/internal/paths"
	"github.com/zjrosen/micromd/internal/presentation"
	"github.com/zjrosen/micromd/internal/tracing"
)

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	logFile   string
	colorFlag string

	cfg        config.Config
	configUsed string
	configErr  error

	provider   *tracing.Provider
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "micromd",
	Short: "A Markdown tokenizer for links, images and definitions",
	Long: `micromd tokenizes Markdown paragraphs, links, images, definitions,
character escapes and references into a flat Enter/Exit event stream, and
compiles that stream to HTML.

Input is a file path, or - for stdin.`,
	Version:            version,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./.micromd/config.yaml or ~/.config/micromd/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"enable debug logging (also MICROMD_DEBUG)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"debug log path (default: log.path from config)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", string(presentation.ColorAuto),
		"style output: auto, always or never")
}

func initConfig() {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("MICROMD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configErr = nil
	// Config lookup order:
	// 1. --config
	// 2. .micromd/config.yaml (current directory)
	// 3. ~/.config/micromd/config.yaml (user config)
	if path := paths.ResolveConfig(".", cfgFile); path != "" {
		v.SetConfigFile(path)
		// A missing --config file is created by `config init` or `config set`.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				configErr = fmt.Errorf("reading config: %w", err)
			}
		}
	}
	configUsed = v.ConfigFileUsed()

	cfg = config.Config{}
	if err := v.Unmarshal(&cfg); err != nil && configErr == nil {
		configErr = fmt.Errorf("decoding config: %w", err)
	}
}

func setDefaults(v *viper.Viper) {
	d := config.Defaults()
	c := d.Parse.Constructs
	v.SetDefault("parse.constructs.character_escape", c.CharacterEscape)
	v.SetDefault("parse.constructs.character_reference", c.CharacterReference)
	v.SetDefault("parse.constructs.definition", c.Definition)
	v.SetDefault("parse.constructs.hard_break_escape", c.HardBreakEscape)
	v.SetDefault("parse.constructs.hard_break_trailing", c.HardBreakTrailing)
	v.SetDefault("parse.constructs.label_start_image", c.LabelStartImage)
	v.SetDefault("parse.constructs.label_start_link", c.LabelStartLink)
	v.SetDefault("parse.constructs.label_end", c.LabelEnd)
	v.SetDefault("parse.label_size_max", d.Parse.LabelSizeMax)
	v.SetDefault("parse.destination_balance_max", d.Parse.DestinationBalanceMax)
	v.SetDefault("compile.allow_dangerous_protocol", d.Compile.AllowDangerousProtocol)
	v.SetDefault("compile.line_ending", d.Compile.LineEnding)
	v.SetDefault("log.enabled", d.Log.Enabled)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.cleanup_interval", d.Cache.CleanupInterval)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
}

// setup validates the loaded config, then starts logging and tracing.
// `config` subcommands skip validation so a broken file can be repaired.
func setup(cmd *cobra.Command, _ []string) error {
	if configErr != nil {
		return configErr
	}
	if _, err := presentation.ParseColorMode(colorFlag); err != nil {
		return err
	}
	if !isConfigCommand(cmd) {
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}

	// Initialize logging if debug mode enabled (via flag, env var or config)
	if debugFlag || os.Getenv("MICROMD_DEBUG") != "" || cfg.Log.Enabled {
		path := logFile
		if path == "" {
			path = cfg.Log.Path
		}
		cleanup, err := log.Init(path)
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		logCleanup = cleanup
		log.SetMinLevel(log.ParseLevel(cfg.Log.Level))
		log.Info(log.CatCLI, "Starting", "command", cmd.CommandPath(), "version", version, "config", configUsed)
	}

	p, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	provider = p
	return nil
}

func teardown(cmd *cobra.Command, _ []string) error {
	var err error
	if provider != nil {
		err = provider.Shutdown(cmd.Context())
		provider = nil
	}
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
	}
	if err != nil {
		return fmt.Errorf("flushing traces: %w", err)
	}
	return nil
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == configCmd {
			return true
		}
	}
	return false
}

// options returns the parse and compile options from the loaded config.
func options() markdown.Options {
	return markdown.Options{Parse: cfg.Parse, Compile: cfg.Compile}
}

// formatter returns a formatter for the command's output honoring --color.
func formatter(cmd *cobra.Command) *presentation.Formatter {
	mode, _ := presentation.ParseColorMode(colorFlag)
	return presentation.NewFormatterWithColor(cmd.OutOrStdout(), mode)
}

// Execute runs the root command. SIGINT and SIGTERM cancel its context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
