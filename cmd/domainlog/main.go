package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/domainlog/internal/cliconfig"
	"github.com/bft-labs/domainlog/internal/tail"
	domlog "github.com/bft-labs/domainlog/pkg/domainlog"
	"github.com/bft-labs/domainlog/pkg/log"
)

const helpDescription = `
Split a host log stream into per-tenant (domain) log files.

domainlog follows a source log file, resolves the tenant domain of every
line (channel variables first, then domain_name=/domain= markers in the
text) and appends each matched line to <log-dir>/domain_<domain>.log.
Lines without a domain are left alone. At most 256 distinct domains are
tracked per run.

Rotation is cooperative: rename the domain files out of band, then send
SIGHUP and domainlog reopens fresh ones.
`

var exampleUsage = strings.TrimSpace(`
  domainlog --source /var/log/freeswitch/freeswitch.log
  domainlog --source /var/log/host.log --log-dir /var/log/domains --level WARNING
  domainlog --config $HOME/.domainlog/config.toml --metrics-addr :9464
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:     "domainlog",
		Short:   "Split a host log stream into per-tenant log files",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.domainlog/config.toml),
			// then environment, then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			zl := newLogger(cfg.Debug)
			logger := log.NewZerologAdapterWithLogger(zl)
			zl.Info().Interface("config", cfg).Msg("configuration")

			tailer := tail.New(cfg.Source, cfg.FromStart, logger)

			routerOpts := []domlog.Option{
				domlog.WithLogger(logger),
				domlog.WithSource(tailer),
			}
			if cfg.MetricsAddr != "" {
				routerOpts = append(routerOpts, domlog.WithMetrics(prometheus.DefaultRegisterer))
			}

			router, err := domlog.New(domlog.Config{
				LogDir:          cfg.LogDir,
				MinSeverity:     cfg.MinSeverity(),
				RolloverBytes:   int64(cfg.RolloverMB) << 20,
				MaxRotatedFiles: cfg.MaxRotatedFiles,
			}, routerOpts...)
			if err != nil {
				return fmt.Errorf("create router: %w", err)
			}

			var metricsSrv *http.Server
			if cfg.MetricsAddr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.Handler())
				metricsSrv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
				go func() {
					if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						zl.Error().Err(err).Msg("metrics server")
					}
				}()
				zl.Info().Str("addr", cfg.MetricsAddr).Msg("metrics server listening")
			}

			if err := router.Start(); err != nil {
				return fmt.Errorf("start router: %w", err)
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
			defer signal.Stop(sigCh)

			for sig := range sigCh {
				if sig == syscall.SIGHUP {
					zl.Info().Msg("received SIGHUP, reopening domain log files")
					if err := router.Reopen(); err != nil {
						zl.Warn().Err(err).Msg("reopen")
					}
					continue
				}
				zl.Info().Str("signal", sig.String()).Msg("received signal, stopping...")
				break
			}

			if metricsSrv != nil {
				_ = metricsSrv.Close()
			}
			if err := router.Stop(); err != nil {
				return fmt.Errorf("stop router: %w", err)
			}
			return nil
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.domainlog/config.toml)")
	root.Flags().StringVar(&cfg.Source, "source", cfg.Source, "host log file to follow")
	root.Flags().StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "directory for per-domain log files (default: <source dir>/domains)")
	root.Flags().StringVar(&cfg.Level, "level", cfg.Level, "minimum severity to route (DEBUG..CONSOLE)")
	root.Flags().BoolVar(&cfg.FromStart, "from-start", cfg.FromStart, "deliver the existing source file before following")
	root.Flags().IntVar(&cfg.RolloverMB, "rollover-mb", cfg.RolloverMB, "advertised rollover threshold in MB (enforced by external rotation)")
	root.Flags().IntVar(&cfg.MaxRotatedFiles, "max-rotated-files", cfg.MaxRotatedFiles, "advertised cap on rotated files (enforced by external rotation)")
	root.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address (e.g. :9464)")
	root.Flags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug diagnostics")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the CLI's own diagnostics logger. This stream is what
// the router reports on; it is unrelated to the per-domain files.
func newLogger(debugEnabled bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debugEnabled {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
