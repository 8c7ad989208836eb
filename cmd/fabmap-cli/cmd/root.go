package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"fabmap/internal/adapters/session"
	"fabmap/internal/bootstrap"
	"fabmap/internal/config"
	"fabmap/internal/logger"
	"fabmap/internal/ports"
)

var (
	backend string
	dbPath  string

	cfg  *config.Config
	log  *slog.Logger
	repo bootstrap.Repository
	sess *session.File
)

var rootCmd = &cobra.Command{
	Use:   "fabmap-cli",
	Short: "CLI for the fabmap pin map",
	Long: `fabmap-cli manages map pins and the fabricator contacts attached to them.

It shares its store and session with the fabmap terminal map, so pins
created here show up there after a reload.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if backend != "" {
			cfg.Backend = backend
		}
		if dbPath != "" {
			cfg.DBPath = dbPath
		}
		log = logger.Setup()
		sess = bootstrap.Session(cfg)

		if !needsRepo(cmd) {
			return nil
		}
		repo, err = bootstrap.OpenRepository(context.Background(), cfg, log)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "store backend: sqlite, postgres or memory (default from FABMAP_BACKEND)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "sqlite database path (default from FABMAP_DB)")
}

// needsRepo reports whether cmd talks to the pin store.
// Session and geocoder commands skip opening it.
func needsRepo(cmd *cobra.Command) bool {
	return cmd.Annotations["store"] != "none"
}

var noStore = map[string]string{"store": "none"}

// GetRepo returns the initialized repository
func GetRepo() ports.PinRepository {
	return repo
}
