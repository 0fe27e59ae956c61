package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/pair-labs/pair/internal/agents"
	"github.com/spf13/cobra"
)

var agentsJSON bool

type agentInfo struct {
	Name       string `json:"name"`
	BaseFolder string `json:"base_folder"`
}

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List supported agents and their folders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := agents.Default()
		if err != nil {
			return err
		}

		list := registry.All()
		infos := make([]agentInfo, 0, len(list))
		for _, a := range list {
			infos = append(infos, agentInfo{Name: a.Name(), BaseFolder: a.BaseFolder()})
		}

		out := cmd.OutOrStdout()
		if agentsJSON {
			data, err := json.MarshalIndent(infos, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling agents: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tFOLDER")
		for _, info := range infos {
			fmt.Fprintf(tw, "%s\t%s\n", info.Name, info.BaseFolder)
		}
		return tw.Flush()
	},
}

func init() {
	agentsCmd.Flags().BoolVar(&agentsJSON, "json", false, "Print agents as JSON")
	rootCmd.AddCommand(agentsCmd)
}
