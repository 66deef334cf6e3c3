package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/shelf/internal/infra/fsworkspace"
	"github.com/aalvaropc/shelf/internal/infra/logger"
	"github.com/aalvaropc/shelf/internal/infra/workspacefinder"
	"github.com/aalvaropc/shelf/internal/ui/tui"
)

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	workspace string
	format    string
	debug     bool
}

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", userMessage(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:           "shelf",
		Short:         "shelf: a small library catalog with checkout and return",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, g)
		},
	}

	cmd.PersistentFlags().StringVarP(&g.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.PersistentFlags().StringVar(&g.format, "format", "", "Output format: pretty|json (defaults to shelf.yaml output)")
	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable verbose logging to .shelf/logs/shelf.log")

	cmd.AddCommand(
		initCmd(g),
		bookCmd(g),
		patronCmd(g),
		checkoutCmd(g),
		returnCmd(g),
		loansCmd(g),
		importCmd(g),
		queryCmd(g),
		versionCmd(),
	)
	return cmd
}

func runTUI(cmd *cobra.Command, g *globals) error {
	start, err := tuiStartDir(g.workspace)
	if err != nil {
		return err
	}

	finder := workspacefinder.NewFinder()

	logRoot := start
	if root, ferr := finder.FindRoot(start); ferr == nil && root != "" {
		logRoot = root
	}

	cleanup, _ := logger.Setup(logger.Config{
		Root:  logRoot,
		Debug: g.debug,
	})
	if cleanup != nil {
		defer func() { _ = cleanup() }()
	}

	deps := tui.Deps{
		WorkspaceLocator:     finder,
		WorkspaceInitializer: fsworkspace.NewInitializer(),
		Open:                 openServices,
		StartDir:             start,
		Logger:               logger.L(),
		Debug:                g.debug,
	}

	return tui.Run(cmd.Context(), deps)
}

// openServices binds the usecases to root for the TUI, which keeps the logger it already set up.
func openServices(root string) (tui.Services, error) {
	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return tui.Services{}, err
	}
	ws := newWorkspaceCtx(root, cfg, cfg.Output)
	return tui.Services{
		Catalog:     ws.catalog,
		Registry:    ws.registry,
		Circulation: ws.circulation,
	}, nil
}
