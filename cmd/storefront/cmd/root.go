// Package cmd provides the CLI commands for the storefront client.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"fiesta-storefront/internal/api"
	"fiesta-storefront/internal/auth"
	"fiesta-storefront/internal/cart"
	"fiesta-storefront/internal/config"
	"fiesta-storefront/internal/kvstore"
	"fiesta-storefront/internal/querycache"
)

var (
	baseURL  string
	stateDir string
	verbose  bool
)

// app holds the wired client stack shared by all subcommands.
type app struct {
	client  *api.Client
	session *auth.Session
	cart    *cart.Store
	catalog *querycache.Catalog
	store   kvstore.Store
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Command-line client for the party rental storefront",
	Long: `storefront talks to the rental catalog API the same way the web
client does: catalog reads go through a short-lived cache, the cart and the
login session persist across invocations under the state directory.

Quick start:
  storefront products list
  storefront cart add castillo-inflable-grande -q 2
  storefront login -e admin@fiesta.local -p fiesta-admin`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "api", "", "API base URL (default from API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state", "", "state directory (default from STATE_DIR or ~/.fiesta)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log client activity")
}

func initApp() error {
	if current != nil {
		return nil
	}
	cfg := config.FromEnv()
	if baseURL == "" {
		baseURL = cfg.APIBaseURL
	}
	if stateDir == "" {
		stateDir = cfg.StateDir
	}
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve state dir: %w", err)
		}
		stateDir = filepath.Join(home, ".fiesta")
	}

	logger := log.New(io.Discard, "", 0)
	if verbose {
		logger = log.New(os.Stderr, "[storefront] ", log.LstdFlags)
	}

	store := kvstore.NewFile(stateDir, logger)
	client := api.New(baseURL, api.WithLogger(logger))
	session := auth.NewSession(client, store, logger)
	client.SetTokenSource(session)

	current = &app{
		client:  client,
		session: session,
		cart:    cart.New(store, logger),
		catalog: querycache.NewCatalog(client, querycache.New(querycache.WithLogger(logger))),
		store:   store,
	}
	return nil
}
