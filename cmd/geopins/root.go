package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/geopins/internal/config"
	"github.com/mmynk/geopins/internal/metrics"
	"github.com/mmynk/geopins/internal/middleware"
	"github.com/mmynk/geopins/internal/service"
	"github.com/mmynk/geopins/internal/storage/sqlite"
	"github.com/mmynk/geopins/internal/ui/app"
	"github.com/mmynk/geopins/internal/ui/listview"
	"github.com/mmynk/geopins/pkg/logging"
)

type rootFlags struct {
	configPath  string
	dbPath      string
	logLevel    string
	metricsAddr string
}

func newRootCommand() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:           "geopins",
		Short:         "Drop pins on a map and keep a list of named places.",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runApp(cmd.Context(), cfg)
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to a YAML config file (default $GEOPINS_CONFIG).")
	root.PersistentFlags().StringVar(&flags.dbPath, "db", "", "SQLite database path.")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error.")
	root.PersistentFlags().StringVar(&flags.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address.")

	root.AddCommand(newListCommand(&flags))
	return root
}

func newListCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print saved locations without starting the map.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, *flags)
			if err != nil {
				return err
			}

			store, err := sqlite.New(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := service.NewLocationService(store, cfg.Seed.Location())
			locations, err := svc.Bootstrap(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tLAT\tLON")
			for _, loc := range locations {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", loc.ID, loc.Name,
					listview.FormatCoordinate(loc.Latitude), listview.FormatCoordinate(loc.Longitude))
			}
			return tw.Flush()
		},
	}
}

// loadConfig merges file, environment and flags, in increasing priority.
func loadConfig(cmd *cobra.Command, flags rootFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("db") {
		cfg.DatabasePath = flags.dbPath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.MetricsAddr = flags.metricsAddr
	}
	return cfg, cfg.Validate()
}

func runApp(ctx context.Context, cfg config.Config) error {
	logFile, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := logging.Setup(logFile, logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger.With("session_id", uuid.NewString()))

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		srv := startMetricsServer(cfg.MetricsAddr, m)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DatabasePath, sqlite.WithMetrics(m))
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		return err
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DatabasePath)

	svc := service.NewLocationService(store, cfg.Seed.Location())
	screen, err := app.New(ctx, svc, app.Options{
		DefaultZoom:     cfg.Map.DefaultZoom,
		SelectZoom:      cfg.Map.SelectZoom,
		HighlightRadius: cfg.Map.HighlightRadius,
		Metrics:         m,
	})
	if err != nil {
		slog.Error("Failed to load locations", "error", err)
		return err
	}

	program := tea.NewProgram(screen,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run ui: %w", err)
	}

	if err := screen.Err(); err != nil {
		return err
	}
	slog.Info("Session ended")
	return nil
}

// startMetricsServer serves /metrics in the background over h2c.
func startMetricsServer(addr string, m *metrics.Metrics) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           h2c.NewHandler(middleware.Logging(mux), &http2.Server{}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Metrics server starting", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
		}
	}()
	return srv
}
