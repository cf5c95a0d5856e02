// Package main is the entry point for the glyphprompt command.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/glyphprompt/internal/config"
	"github.com/dshills/glyphprompt/internal/config/loader"
	"github.com/dshills/glyphprompt/internal/logging"
	"github.com/dshills/glyphprompt/internal/prompt"
	"github.com/dshills/glyphprompt/internal/prompt/device"
	"github.com/dshills/glyphprompt/internal/prompt/tracker"
	"github.com/dshills/glyphprompt/internal/termdevice"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the global flags.
type options struct {
	configPath     string
	logLevel       string
	logFormat      string
	logFile        string
	platform       string
	deviceName     string
	deviceCategory string
	strict         bool
	set            []string
}

// cli is one command invocation.
type cli struct {
	opts    options
	logger  *zap.Logger
	closers []io.Closer
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "glyphprompt",
		Short: "Resolve input action prompts for the active device",
		Long: `glyphprompt replaces tagged action names in text with the glyph of the
control bound to that action on the current input device.

  Press [Player/Jump] to jump   ->   Press <sprite="ps" name="cross"> to jump

Settings are read from a TOML or YAML file and can be overridden through
GLYPHPROMPT_* environment variables and --set key=value flags.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setupLogger(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			c.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.opts.configPath, "config", "c", "", "Path to settings file (TOML or YAML)")
	flags.StringVar(&c.opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringVar(&c.opts.logFormat, "log-format", "console", "Log format (console, json)")
	flags.StringVar(&c.opts.logFile, "log-file", "", "Write logs to a file instead of stderr")
	flags.StringVar(&c.opts.platform, "platform", "", "Platform matched against platform overrides")
	flags.StringVarP(&c.opts.deviceName, "device", "d", "", "Connect a device with this identity and make it active")
	flags.StringVar(&c.opts.deviceCategory, "device-category", "GamePad", "Category of the --device device")
	flags.BoolVar(&c.opts.strict, "strict", false, "Reject unknown settings keys")
	flags.StringArrayVar(&c.opts.set, "set", nil, "Override a setting (key=value), e.g. --set open_tag={")

	root.AddCommand(
		newSubstituteCmd(c),
		newResolveCmd(c),
		newSpriteCmd(c),
		newCheckCmd(c),
		newWatchCmd(c),
	)
	return root
}

func (c *cli) setupLogger(cmd *cobra.Command) error {
	format := logging.ParseFormat(c.opts.logFormat)

	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLogLevel(c.opts.logLevel)
	cfg.Format = format
	cfg.Output = cmd.ErrOrStderr()
	if c.opts.logFile != "" {
		f, err := os.OpenFile(c.opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		c.closers = append(c.closers, f)
		cfg.Output = f
	}

	logger, err := logging.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.logger = logger
	return nil
}

func (c *cli) close() {
	_ = c.logger.Sync()
	for i := len(c.closers) - 1; i >= 0; i-- {
		_ = c.closers[i].Close()
	}
	c.closers = nil
}

// flagOverrides parses the --set flags.
func (c *cli) flagOverrides() (map[string]string, error) {
	out := make(map[string]string, len(c.opts.set))
	for _, kv := range c.opts.set {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", kv)
		}
		out[strings.TrimSpace(key)] = value
	}
	return out, nil
}

// provider returns the settings provider: the settings file with environment
// overrides, then --set overrides on top.
func (c *cli) provider() (config.Provider, error) {
	overrides, err := c.flagOverrides()
	if err != nil {
		return nil, err
	}

	file := config.NewFileProvider(c.opts.configPath,
		config.WithEnv(loader.NewEnvLoader(loader.DefaultEnvPrefix)),
		config.WithStrict(c.opts.strict))
	if len(overrides) == 0 {
		return file, nil
	}

	return config.ProviderFunc(func() (*config.Bundle, error) {
		b, err := file.Load()
		if err != nil {
			return nil, err
		}
		if err := b.Settings.ApplyOverrides(overrides); err != nil {
			return nil, fmt.Errorf("flag overrides: %w", err)
		}
		if err := b.Settings.Validate(); err != nil {
			return nil, fmt.Errorf("settings %s: %w", b.Path, err)
		}
		return b, nil
	}), nil
}

// newEngine builds the engine over the terminal devices. When --device is
// set, that device is connected and made active.
func (c *cli) newEngine(devices *termdevice.Provider) (*prompt.Engine, error) {
	configs, err := c.provider()
	if err != nil {
		return nil, err
	}

	opts := []prompt.Option{prompt.WithLogger(c.logger)}
	if c.opts.platform != "" {
		opts = append(opts, prompt.WithPlatform(c.opts.platform))
	}
	engine := prompt.New(configs, devices, opts...)

	if err := engine.Initialize(); err != nil {
		if errors.Is(err, config.ErrConfigurationMissing) {
			c.logger.Warn("continuing without settings", zap.String("config", c.opts.configPath))
			return engine, nil
		}
		return nil, err
	}

	if c.opts.deviceName != "" {
		info, err := c.attachDevice(devices)
		if err != nil {
			return nil, err
		}
		engine.HandleActivity(tracker.Activity{Device: info.ID, Kind: tracker.KindButton})
	}
	return engine, nil
}

func (c *cli) attachDevice(devices *termdevice.Provider) (device.Info, error) {
	cat, err := device.ParseCategory(c.opts.deviceCategory)
	if err != nil {
		return device.Info{}, fmt.Errorf("--device-category: %w", err)
	}
	if info, ok := devices.DeviceNamed(c.opts.deviceName); ok {
		c.logger.Debug("using connected device", zap.String("device", info.Name))
		return info, nil
	}
	info := devices.Attach(c.opts.deviceName, device.NewCategorySet(cat))
	c.logger.Debug("attached device",
		zap.String("device", info.Name),
		zap.Stringer("category", cat))
	return info, nil
}
