package cli

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/forgefetch/forgefetch/pkg/integrations/bitbucket"
)

// newInfoCmd creates the info command, which prints descriptive repository
// metadata.
func newInfoCmd(configPath *string) *cobra.Command {
	var (
		refresh bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "info <url>",
		Short: "Show repository metadata for a repository URL",
		Long: `Show repository metadata for a repository URL.

Accepted URL forms:
  https://bitbucket.org/{owner}/{repo}
  https://bitbucket.org/{owner}/{repo}/src/{branch}

Examples:
  forgefetch info https://bitbucket.org/owner/repo
  forgefetch info https://bitbucket.org/owner/repo --json`,
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
			info, err := client.RepoInfo(ctx, args[0], refresh)
			if errors.Is(err, bitbucket.ErrNotRepoURL) {
				printError("Not a recognized repository URL: %s", args[0])
				return err
			}
			if err != nil {
				return err
			}
			p.done("Fetched " + args[0])

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			printSuccess("%s", StyleTitle.Render(info.Name))
			printDetail("%s", info.Description)
			printKeyValue("author", info.Author)
			printKeyLink("homepage", info.Homepage)
			if info.Readme != "" {
				printKeyLink("readme", info.Readme)
			}
			if info.Issues != "" {
				printKeyLink("issues", info.Issues)
			}
			printKeyLink("donate", info.Donate)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached API responses")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}
