package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"custintel/internal/artifact"
	"custintel/internal/common/fsutil"
	"custintel/internal/config"
	"custintel/internal/httpapi"
	"custintel/internal/inference"
	"custintel/internal/logging"
	"custintel/internal/registry"
)

const shutdownGrace = 5 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "custintel:", err)
		os.Exit(1)
	}
}

// flagValues holds raw flag values. Only flags set on the command line
// override the file and environment configuration.
type flagValues struct {
	configPath  string
	envFile     string
	addr        string
	modelsDir   string
	maxBody     int64
	logLevel    string
	logFormat   string
	logFile     string
	cors        bool
	corsOrigins string
	corsMethods string
	corsHeaders string
}

func newRootCmd() *cobra.Command { return newRootCmdWith(&flagValues{}) }

// newRootCmdWith builds the command tree bound to fv.
func newRootCmdWith(fv *flagValues) *cobra.Command {
	def := config.Default()

	serve := func(cmd *cobra.Command, args []string) error { return runServe(cmd, fv) }
	root := &cobra.Command{
		Use:           "custintel",
		Short:         "Customer Intelligence inference API",
		Long:          "Serves churn, sales forecast, customer segmentation and sentiment models exported as JSON artifacts.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          serve,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&fv.configPath, "config", os.Getenv("CUSTINTEL_CONFIG"), "Config file (.yaml, .yml, .json or .toml)")
	pf.StringVar(&fv.envFile, "env-file", ".env", "Optional .env file loaded before reading CUSTINTEL_* variables")
	pf.StringVar(&fv.addr, "addr", def.Addr, "HTTP listen address, e.g. :8080")
	pf.StringVar(&fv.modelsDir, "models-dir", def.ModelsDir, "Directory holding the exported model artifacts")
	pf.Int64Var(&fv.maxBody, "max-body-bytes", def.MaxBodyBytes, "Maximum request body size in bytes")
	pf.StringVar(&fv.logLevel, "log-level", def.LogLevel, "Log level: debug|info|warn|error|off")
	pf.StringVar(&fv.logFormat, "log-format", def.LogFormat, "Log format: console|json")
	pf.StringVar(&fv.logFile, "log-file", "", "Also write JSON logs to this rotated file")
	pf.BoolVar(&fv.cors, "cors", def.CORSEnabled, "Enable CORS")
	pf.StringVar(&fv.corsOrigins, "cors-origins", "", "Comma-separated allowed origins (default *)")
	pf.StringVar(&fv.corsMethods, "cors-methods", "", "Comma-separated allowed methods")
	pf.StringVar(&fv.corsHeaders, "cors-headers", "", "Comma-separated allowed headers")

	serveCmd := &cobra.Command{
		Use:     "serve",
		Short:   "Resolve model artifacts and serve the HTTP API (default)",
		Example: "  custintel serve --models-dir ./models --addr :8080",
		Args:    cobra.NoArgs,
		RunE:    serve,
	}
	inspectCmd := &cobra.Command{
		Use:     "inspect",
		Short:   "Resolve model artifacts and print the binding summary as JSON",
		Example: "  custintel inspect --models-dir ./models",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, fv)
		},
	}
	root.AddCommand(serveCmd, inspectCmd)
	return root
}

// loadConfig applies defaults, then the config file, then the environment,
// then explicitly set flags.
func loadConfig(cmd *cobra.Command, fv *flagValues) (config.Config, error) {
	if err := config.LoadDotEnv(fv.envFile); err != nil {
		return config.Config{}, err
	}
	cfg := config.Default()
	if fv.configPath != "" {
		var err error
		if cfg, err = config.Load(fv.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Addr = fv.addr
	}
	if flags.Changed("models-dir") {
		cfg.ModelsDir = fv.modelsDir
	}
	if flags.Changed("max-body-bytes") {
		cfg.MaxBodyBytes = fv.maxBody
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = fv.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = fv.logFormat
	}
	if flags.Changed("log-file") {
		cfg.LogFile = fv.logFile
	}
	if flags.Changed("cors") {
		cfg.CORSEnabled = fv.cors
	}
	if flags.Changed("cors-origins") {
		cfg.CORSAllowedOrigins = splitCSV(fv.corsOrigins)
	}
	if flags.Changed("cors-methods") {
		cfg.CORSAllowedMethods = splitCSV(fv.corsMethods)
	}
	if flags.Changed("cors-headers") {
		cfg.CORSAllowedHeaders = splitCSV(fv.corsHeaders)
	}
	return cfg, nil
}

// buildService resolves every domain once. Nothing here is fatal: a missing
// or unreadable models directory leaves every domain unloaded.
func buildService(cfg config.Config, log zerolog.Logger) (*inference.Service, error) {
	dir, err := fsutil.AbsDir(cfg.ModelsDir)
	if err != nil {
		return nil, err
	}
	if !fsutil.PathExists(dir) {
		log.Warn().Str("models_dir", dir).Msg("models directory does not exist")
	}
	files, err := registry.LoadDir(dir)
	if err != nil {
		log.Warn().Err(err).Str("models_dir", dir).Msg("cannot list artifacts")
	}
	b := artifact.NewResolver(dir, log).ResolveAll()
	return inference.New(b, files, log), nil
}

func runServe(cmd *cobra.Command, fv *flagValues) error {
	cfg, err := loadConfig(cmd, fv)
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
		Out:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer closeLog()

	httpapi.SetLogger(logger)
	httpapi.SetDefaultLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSAllowedOrigins, cfg.CORSAllowedMethods, cfg.CORSAllowedHeaders)

	svc, err := buildService(cfg, logger)
	if err != nil {
		return err
	}
	if !svc.Ready() {
		logger.Warn().Str("models_dir", cfg.ModelsDir).Msg("no models loaded; every prediction will fail until artifacts are exported")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("models_dir", cfg.ModelsDir).Msg("custintel listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func runInspect(cmd *cobra.Command, fv *flagValues) error {
	cfg, err := loadConfig(cmd, fv)
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Out:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer closeLog()

	svc, err := buildService(cfg, logger)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(svc.Models())
}

// splitCSV splits a comma-separated list, trimming blanks and dropping empty items.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
