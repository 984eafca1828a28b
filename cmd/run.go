package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/app"
	"github.com/abhisek/prepdeck/internal/knowledge"
	"github.com/abhisek/prepdeck/internal/llm"
	"github.com/abhisek/prepdeck/internal/logging"
	"github.com/abhisek/prepdeck/internal/monitor"
	"github.com/abhisek/prepdeck/internal/notes"
	"github.com/abhisek/prepdeck/internal/podcast"
	"github.com/abhisek/prepdeck/internal/questionbank"
	"github.com/abhisek/prepdeck/internal/selfupdate"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := logging.Setup(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File, ToFile: true})
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	metrics := monitor.NewMetrics()
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr); err != nil {
				log.Error().Err(err).Msg("metrics endpoint stopped")
			}
		}()
	}

	bank := questionbank.New(st.QuestionRepo())
	if err := bank.Load(ctx); err != nil {
		return err
	}
	bases := knowledge.NewBases(st.BaseRepo())
	if err := bases.Load(ctx); err != nil {
		return err
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), metrics, log.Logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Podcasts will use the template script.")
	}

	opts := app.Options{
		Bank:             bank,
		Bases:            bases,
		Workspaces:       st.WorkspaceRepo(),
		Transcriber:      podcast.NewGenerator(provider, podcast.DefaultConfig()),
		Metrics:          metrics,
		Renderer:         notes.NewRenderer("dark"),
		DefaultProblemID: cfg.API.DefaultProblemID,
		ExportDir:        exportDir(),
		LatestVersion:    latestVersion(ctx),
	}
	opts.SkipWelcome, _ = cmd.Flags().GetBool("no-splash")
	if offline, _ := cmd.Flags().GetBool("offline"); !offline {
		opts.Client = newClient(cfg, metrics)
	}

	return app.Run(opts)
}

// exportDir is where notes and mind map outlines are written.
func exportDir() string {
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "prepdeck-export")
	}
	return "prepdeck-export"
}

// latestVersion returns the newer release tag, or "" when up to date or the
// check fails.
func latestVersion(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	res, err := selfupdate.NewChecker(selfupdate.WithTimeout(2*time.Second)).Check(ctx, &selfupdate.CheckInput{Version: version})
	if err != nil {
		log.Debug().Err(err).Msg("update check failed")
		return ""
	}
	if !res.UpdateAvailable {
		return ""
	}
	return res.LatestVersion
}
