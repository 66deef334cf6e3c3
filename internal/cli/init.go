package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/shelf/internal/buildinfo"
	"github.com/aalvaropc/shelf/internal/infra/fsworkspace"
	"github.com/aalvaropc/shelf/internal/usecase"
)

func initCmd(_ *globals) *cobra.Command {
	var path string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a shelf workspace (shelf.yaml and an empty library)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			abs, err := uc.Execute(path, force)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized shelf workspace in %s\n", abs)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Directory to initialize")
	cmd.Flags().BoolVar(&force, "force", false, "Rewrite shelf.yaml (the library file is never overwritten)")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
