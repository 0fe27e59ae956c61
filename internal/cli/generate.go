package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pair-labs/pair/internal/agents"
	"github.com/pair-labs/pair/internal/branding"
	"github.com/pair-labs/pair/internal/generator"
	"github.com/pair-labs/pair/internal/ui"
	"github.com/pair-labs/pair/internal/watch"
	"github.com/spf13/cobra"
)

var (
	generatePath   string
	generateAgents []string
	generateWatch  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write each agent's folder from the " + branding.ProjectDir() + " rules",
	Long: `Regenerate agent folders from the project's ` + branding.ProjectDir() + ` folder.

Each agent folder is removed and rebuilt, so files deleted from ` + branding.ProjectDir() + `
disappear from the agent folders too. When ` + branding.ProjectDir() + ` is missing or empty
the default templates are used instead.`,
	Example: `  ` + branding.CLIName() + ` generate
  ` + branding.CLIName() + ` generate --agents cursor
  ` + branding.CLIName() + ` generate --watch`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generatePath, "path", "", "The path to the project (default: the current project root)")
	generateCmd.Flags().StringSliceVarP(&generateAgents, "agents", "a", nil, "Target specific agents (e.g., cursor, junie, copilot)")
	generateCmd.Flags().BoolVar(&generateWatch, "watch", false, "Keep running and regenerate when "+branding.ProjectDir()+" changes")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspace(generatePath)
	if err != nil {
		return err
	}

	p := printer(cmd)
	targets := ws.registry.Select(generateAgents)
	if len(targets) == 0 {
		p.Warn("No matching agents. Known agents: %v", ws.registry.Names())
		return nil
	}

	gen := generator.New(ws.fs, ws.defaults, logger)
	if err := generateOnce(p, ws, gen, targets); err != nil {
		return err
	}
	if !generateWatch {
		return nil
	}

	aiDir := filepath.Join(ws.projectPath, branding.ProjectDir())
	exists, err := ws.fs.Exists(aiDir)
	if err != nil {
		return fmt.Errorf("checking %s: %w", aiDir, err)
	}
	if !exists {
		return fmt.Errorf("nothing to watch: %s does not exist (run '%s install' first)", aiDir, branding.CLIName())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p.Info("Watching %s for changes (Ctrl+C to stop)", aiDir)
	return watch.Run(ctx, aiDir, watch.Options{Log: logger}, func() error {
		return generateOnce(p, ws, gen, targets)
	})
}

func generateOnce(p *ui.Printer, ws *workspace, gen *generator.Generator, targets []*agents.Agent) error {
	release, err := ws.lock()
	if err != nil {
		return err
	}
	defer release()

	results, err := gen.GenerateAll(targets, ws.projectPath)
	for _, res := range results {
		from := branding.ProjectDir()
		if res.Source == generator.SourceDefaults {
			from = "defaults"
		}
		p.Success("%s: %d files from %s", filepath.Base(res.Dest), len(res.Files), from)
	}
	if err != nil {
		return fmt.Errorf("generating agent folders: %w", err)
	}
	return nil
}
