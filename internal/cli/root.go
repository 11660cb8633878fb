// Package cli implements the forgefetch command-line interface.
//
// Commands resolve Bitbucket repository URLs into release downloads and
// repository metadata, manage the HTTP response cache, and run the HTTP API
// server. The CLI is built using cobra; all commands support --verbose (-v)
// for debug-level logging via the charmbracelet/log library, with the logger
// passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package with values injected via
// ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the forgefetch CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands (resolve, info,
// cache, serve) and configures logging based on the --verbose flag.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "forgefetch",
		Short:        "forgefetch resolves repository URLs into installable releases",
		Long:         `forgefetch translates Bitbucket repository web URLs into structured metadata: the latest release download link, its version, and repository information such as homepage, author, and issue tracker.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("forgefetch %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/forgefetch/config.toml)")

	root.AddCommand(newResolveCmd(&configPath))
	root.AddCommand(newInfoCmd(&configPath))
	root.AddCommand(newCacheCmd(&configPath))
	root.AddCommand(newServeCmd(&configPath))

	return root.ExecuteContext(ctx)
}
