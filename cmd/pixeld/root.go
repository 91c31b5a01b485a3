package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pixeld/internal/config"
	"pixeld/internal/httpapi"
	"pixeld/internal/manager"
	"pixeld/internal/raster"
)

// Environment variables consulted between flags and the config file.
const (
	envAddr     = "PIXELD_ADDR"
	envConfig   = "PIXELD_CONFIG"
	envLogLevel = "PIXELD_LOG_LEVEL"
)

const shutdownTimeout = 5 * time.Second

// options mirrors the persistent flags.
type options struct {
	configPath  string
	addr        string
	logLevel    string
	logFormat   string
	corsOrigins string
	noCORS      bool
	maxUploadMB int
	divisor     int
}

func buildRootCmd() *cobra.Command { return buildRootCmdWith(&options{}) }

// buildRootCmdWith constructs the command tree with flags bound to o.
func buildRootCmdWith(o *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "pixeld",
		Short:         "Image restoration HTTP service (denoising, inpainting, super resolution)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example:       "  pixeld --addr :8080\n  pixeld --config ~/.config/pixeld/config.yaml --log-format json",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, o)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, newLogger(cfg, cmd.ErrOrStderr()))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "Config file (.yaml/.yml/.json/.toml); defaults to "+envConfig+" or a discovered pixeld.* file")
	pf.StringVar(&o.addr, "addr", "", "HTTP listen address, e.g. :8080 (defaults "+envAddr+")")
	pf.StringVar(&o.logLevel, "log-level", "", "Log level: debug|info|warn|error|off (defaults "+envLogLevel+" or info)")
	pf.StringVar(&o.logFormat, "log-format", "", "Log format: console|json")
	pf.StringVar(&o.corsOrigins, "cors-origins", "", "Comma-separated allowed CORS origins")
	pf.BoolVar(&o.noCORS, "no-cors", false, "Disable CORS headers")
	pf.IntVar(&o.maxUploadMB, "max-upload-mb", 0, "Maximum upload size in MiB (default 32)")
	pf.IntVar(&o.divisor, "divisor", 0, "Center-crop inputs to a multiple of this value (0 disables)")

	root.AddCommand(buildProcessCmd(o), buildModelsCmd())
	return root
}

// resolveConfig merges defaults, the config file, environment and flags,
// in increasing order of precedence.
func resolveConfig(cmd *cobra.Command, o *options) (config.Config, error) {
	flags := cmd.Flags()
	path := os.Getenv(envConfig)
	if flags.Changed("config") {
		path = o.configPath
	}
	if path == "" {
		path = config.Discover()
	}
	var cfg config.Config
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if v := os.Getenv(envAddr); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}

	if flags.Changed("addr") {
		cfg.Addr = o.addr
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if flags.Changed("cors-origins") {
		cfg.CORSOrigins = splitCSV(o.corsOrigins)
	}
	if flags.Changed("no-cors") {
		enabled := !o.noCORS
		cfg.CORSEnabled = &enabled
	}
	if flags.Changed("max-upload-mb") {
		cfg.MaxUploadMB = o.maxUploadMB
	}
	if flags.Changed("divisor") {
		cfg.DefaultDivisor = o.divisor
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger builds the process logger. Unknown levels fall back to info.
func newLogger(cfg config.Config, w io.Writer) zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch strings.ToLower(cfg.LogLevel) {
	case "off":
		lvl = zerolog.Disabled
	default:
		if l, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err == nil && l != zerolog.NoLevel {
			lvl = l
		}
	}
	if cfg.LogFormat == config.FormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("service", "pixeld").Logger()
}

func serve(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpapi.SetLogger(log)
	httpapi.SetBaseContext(ctx)
	httpapi.SetMaxUploadBytes(int64(cfg.MaxUploadMB) << 20)
	httpapi.SetDefaultDivisor(cfg.DefaultDivisor)
	httpapi.SetCORSOptions(cfg.CORS(), cfg.CORSOrigins, nil, nil)

	mgr := manager.NewWithConfig(manager.ManagerConfig{Logger: &log})
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(mgr),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Bool("cors", cfg.CORS()).Int("max_upload_mb", cfg.MaxUploadMB).Int("divisor", cfg.DefaultDivisor).Str("median", raster.MedianBackend()).Msg("pixeld listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	return nil
}

// splitCSV splits a comma-separated list, trimming blanks.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
