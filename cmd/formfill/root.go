package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	formfill "github.com/goliatone/go-formfill"
	"github.com/goliatone/go-formfill/pkg/config"
	"github.com/goliatone/go-formfill/pkg/prompt"
)

// app carries the state shared by every subcommand. It is rebuilt per root
// command so tests can run commands in isolation.
type app struct {
	verbose    bool
	configPath string
	seed       int64
	addr       string

	logger   *zap.Logger
	config   *config.Config
	prompter prompt.Prompter
}

func newRootCmd() *cobra.Command {
	return (&app{}).rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "formfill",
		Short: "Fill forms with synthetic Brazilian test data",
		Long: `formfill generates valid-looking Brazilian test data (CPF, CNPJ, CNH,
plates, CEP, dates, pt-BR numbers, lorem text) and writes it into HTML forms,
live browser pages or OpenAPI request bodies.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	flags.Int64Var(&a.seed, "seed", 0, "Seed for reproducible values (0 uses the config or the clock)")

	root.AddCommand(
		a.kindsCmd(),
		a.generateCmd(),
		a.validateCmd(),
		a.classifyCmd(),
		a.fillCmd(),
		a.browseCmd(),
		a.actionCmd(),
		a.openapiCmd(),
		a.serveCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.logger == nil {
		cfg := zap.NewProductionConfig()
		if a.verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logger = logger
	}

	loaded, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.seed != 0 {
		loaded.Seed = a.seed
	}
	if a.addr != "" {
		loaded.Server.Addr = a.addr
	}
	a.config = loaded
	a.logger.Debug("config loaded",
		zap.String("path", a.configPath),
		zap.Int64("seed", loaded.Seed),
		zap.String("dataset", loaded.Dataset.Path),
	)
	return nil
}

func (a *app) engine(cmd *cobra.Command) (*formfill.Engine, error) {
	return formfill.New(cmd.Context(),
		formfill.WithConfig(a.config),
		formfill.WithLogger(a.logger),
		formfill.WithPrompter(a.prompter),
	)
}
