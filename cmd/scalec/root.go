package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wippyai/scale-codec/contract"
	"github.com/wippyai/scale-codec/engine"
	"github.com/wippyai/scale-codec/metadata"
	"github.com/wippyai/scale-codec/transcoder"
)

// app is the state shared by subcommands once flags and config are resolved.
type app struct {
	cfg    *Config
	logger *zap.Logger
	loader *metadata.Loader
}

func newRootCommand() *cobra.Command {
	a := &app{}
	var configFile string

	root := &cobra.Command{
		Use:   "scalec",
		Short: "Encode and decode ink! contract calls",
		Long: `scalec turns human-readable arguments into SCALE call data using a
contract's metadata, and renders the bytes a contract returns.

Metadata comes from --metadata (a .json file or .contract bundle) or from
<cache-dir>/<address>.json when --address is given.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd, configFile)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default ./scalec.yaml or $HOME/.scalec/scalec.yaml)")
	addConfigFlags(flags)

	root.AddCommand(newInspectCommand(a))
	root.AddCommand(newEncodeCommand(a))
	root.AddCommand(newDecodeCommand(a))
	root.AddCommand(newValueCommand(a))
	root.AddCommand(newCacheCommand(a))
	root.AddCommand(newInteractiveCommand(a))

	return root
}

func (a *app) init(cmd *cobra.Command, configFile string) error {
	cfg, err := loadConfig(viper.New(), cmd.Root().PersistentFlags(), configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = logger
	transcoder.SetLogger(logger)
	metadata.SetLogger(logger)
	engine.SetLogger(logger)
	contract.SetLogger(logger)

	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		if dir, err := metadata.DefaultCacheDir(); err == nil {
			cacheDir = dir
		}
	}
	a.loader, err = metadata.NewLoader(metadata.WithCacheDir(cacheDir))
	return err
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// project loads the metadata selected by --metadata or --address.
func (a *app) project(ctx context.Context) (*metadata.Project, error) {
	return a.loader.Load(ctx, a.cfg.Address, a.cfg.Metadata)
}

// contract loads the metadata and binds it to a codec configured from flags.
func (a *app) contract(ctx context.Context) (*contract.Contract, error) {
	p, err := a.project(ctx)
	if err != nil {
		return nil, err
	}
	c, err := contract.New(p, a.cfg.codecOptions()...)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("contract loaded",
		zap.String("name", c.Name()),
		zap.Int("messages", len(c.Messages())),
		zap.Int("constructors", len(c.Constructors())))
	return c, nil
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
