package cli

import (
	"fmt"
	"strings"

	"github.com/pair-labs/pair/internal/branding"
	"github.com/pair-labs/pair/internal/installer"
	"github.com/spf13/cobra"
)

var (
	installPath   string
	installForce  bool
	installAgents []string
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Create the " + branding.ProjectDir() + " folder and ignore agent folders",
	Long: `Create the project's ` + branding.ProjectDir() + ` folder from the default templates, then add
each agent's folder to ` + branding.IgnoreFile() + ` if that file exists.

An existing ` + branding.ProjectDir() + ` folder is left untouched unless --force is given.
` + branding.IgnoreFile() + ` is never created.`,
	Example: `  ` + branding.CLIName() + ` install
  ` + branding.CLIName() + ` install --force
  ` + branding.CLIName() + ` install --path ./my-app --agents cursor,junie`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installPath, "path", "", "The path to the project (default: the current project root)")
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false, "Overwrite an existing "+branding.ProjectDir()+" folder")
	installCmd.Flags().StringSliceVarP(&installAgents, "agents", "a", nil, "Target specific agents (e.g., cursor, junie, copilot)")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspace(installPath)
	if err != nil {
		return err
	}

	release, err := ws.lock()
	if err != nil {
		return err
	}
	defer release()

	in := installer.New(ws.fs, ws.defaults, ws.registry, logger)
	report, err := in.Install(ws.projectPath, installer.Options{
		Force:  installForce,
		Agents: installAgents,
	})
	if err != nil {
		return fmt.Errorf("installing into %s: %w", ws.projectPath, err)
	}

	printInstallReport(cmd, report, ws.defaults.Location)
	return nil
}

func printInstallReport(cmd *cobra.Command, report *installer.Report, source string) {
	p := printer(cmd)
	dir := branding.ProjectDir()

	switch report.AIAction {
	case installer.AIFolderSkipped:
		p.Warn("The %s folder already exists. Use --force to overwrite it.", dir)
	case installer.AIFolderReplaced:
		p.Success("Replaced %s with %d files from %s", dir, len(report.AIFiles), source)
	case installer.AIFolderCreated:
		p.Success("Created %s with %d files from %s", dir, len(report.AIFiles), source)
	}

	ignore := branding.IgnoreFile()
	switch {
	case !report.IgnoreFound:
		p.Detail("No %s found; agent folders were not added", ignore)
	case len(report.IgnoreAdded) > 0:
		p.Success("Added %s to %s", strings.Join(report.IgnoreAdded, ", "), ignore)
	default:
		p.Info("%s already lists the agent folders", ignore)
	}
}
