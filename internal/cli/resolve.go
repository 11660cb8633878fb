package cli

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/forgefetch/forgefetch/pkg/integrations/bitbucket"
)

// newResolveCmd creates the resolve command, which turns a repository URL
// into the newest downloadable release.
func newResolveCmd(configPath *string) *cobra.Command {
	var (
		refresh bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <url>",
		Short: "Resolve a repository URL into its latest release download",
		Long: `Resolve a repository URL into its latest release download.

Accepted URL forms:
  https://bitbucket.org/{owner}/{repo}              tip of the default branch
  https://bitbucket.org/{owner}/{repo}/src/{branch} tip of a named branch
  https://bitbucket.org/{owner}/{repo}/#tags        highest versioned tag

Examples:
  forgefetch resolve https://bitbucket.org/owner/repo/#tags
  forgefetch resolve https://bitbucket.org/owner/repo --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			client, backend, err := newRepoClient(ctx, *configPath)
			if err != nil {
				return err
			}
			defer backend.Close()

			p := newProgress(logger)
			info, err := client.DownloadInfo(ctx, args[0], refresh)
			switch {
			case errors.Is(err, bitbucket.ErrNotRepoURL):
				printError("Not a recognized repository URL: %s", args[0])
				return err
			case errors.Is(err, bitbucket.ErrNoEligibleRelease):
				printError("Repository has no tags with a valid version")
				return err
			case err != nil:
				return err
			}
			p.done("Resolved " + args[0])

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			printSuccess("Latest release: %s", info.Version)
			printKeyLink("download", info.URL)
			printKeyValue("date", info.Date)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached API responses")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}
