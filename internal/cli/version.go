package cli

import (
	"encoding/json"
	"fmt"

	"github.com/pair-labs/pair/internal/branding"
	"github.com/pair-labs/pair/internal/version"
	"github.com/spf13/cobra"
)

var (
	versionShort   bool
	versionJSON    bool
	versionRequire string
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	versionCmd.Flags().StringVar(&versionRequire, "require", "", "Fail unless the version satisfies a semver constraint (e.g. \">=1.2\")")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if versionRequire != "" {
			ok, err := version.Satisfies(buildVersion, versionRequire)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s %s does not satisfy %q", branding.CLIName(), version.Normalize(buildVersion), versionRequire)
			}
		}

		if versionShort {
			fmt.Fprintln(out, version.Normalize(buildVersion))
			return nil
		}

		if versionJSON {
			info := map[string]string{
				"version": version.Normalize(buildVersion),
				"commit":  buildCommit,
				"date":    buildDate,
			}
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), version.Normalize(buildVersion), buildCommit, buildDate)
		return nil
	},
}
