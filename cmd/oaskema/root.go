package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/reoring/oaskema/internal/config"
)

// app carries state shared by subcommands once the root pre-run has loaded
// the configuration.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "oaskema",
		Short: "Describe request validation schemas as OpenAPI",
		Long: `oaskema converts request validation schemas into OpenAPI 3.0 descriptions.
It prints single schemas or location fragments, renders a document for the
routes listed in a config file, and can serve those routes with validation.`,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./oaskema.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "DEBUG, INFO, WARN or ERROR (overrides config)")

	root.AddCommand(
		newDescribeCmd(a),
		newLocationCmd(a),
		newDocCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) setup(stderr io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = strings.ToUpper(a.logLevel)
	}
	logger, closer, err := setupLogger(cfg.Log, stderr)
	if err != nil {
		return err
	}
	a.cfg, a.logger, a.closer = cfg, logger, closer
	return nil
}

func (a *app) close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func setupLogger(cfg config.Log, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	switch cfg.Level {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(stderr, opts)), nil, nil
	}
	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open log file")
	}
	return slog.New(slog.NewTextHandler(file, opts)), file, nil
}
