package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/api"
	"github.com/abhisek/prepdeck/internal/config"
	"github.com/abhisek/prepdeck/internal/logging"
	"github.com/abhisek/prepdeck/internal/monitor"
	"github.com/abhisek/prepdeck/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "prepdeck",
	Short: "Interview prep in the terminal",
	Long: "prepdeck is a terminal front-end for interview preparation: algorithm practice against a " +
		"code-execution backend, AI knowledge items, a local question bank and knowledge bases " +
		"with flashcards, mind maps, notes and podcasts.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to the YAML config file (overrides PREPDECK_CONFIG)")
	pf.String("db", "", "Path to SQLite database file (overrides PREPDECK_DB)")
	pf.String("api", "", "Backend base URL (overrides PREPDECK_API_BASE_URL)")
	pf.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. 127.0.0.1:9464")
	pf.String("log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.Flags().Bool("offline", false, "Start without a backend; only local tools are available")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")

	rootCmd.AddCommand(problemsCmd, problemCmd, solutionCmd, editorialCmd, importCmd)
	rootCmd.AddCommand(runCmd, submitCmd)
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(resetCmd, versionCmd, updateCmd, llmCmd)
}

// loadConfig reads the configuration and applies the global flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("api"); v != "" {
		cfg.API.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.Store.Path = v
	}
	if v, _ := cmd.Flags().GetString("metrics-addr"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setupCLI loads the configuration and logs to stderr.
func setupCLI(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if _, err := logging.Setup(logging.Options{Level: cfg.Log.Level, Stderr: cmd.ErrOrStderr()}); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newClient builds the backend client from cfg.
func newClient(cfg *config.Config, metrics *monitor.Metrics) *api.Client {
	return api.New(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithMetrics(metrics),
		api.WithLogger(log.Logger),
	)
}

// resolveDBPath returns the configured database path, falling back to the
// default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if p := cfg.Store.Path; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database named by cfg.
func openStore(cfg *config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}
