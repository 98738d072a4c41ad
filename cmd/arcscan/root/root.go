package root

import (
	"context"

	"github.com/flarebyte/arcscan/cmd/arcscan/extract"
	"github.com/flarebyte/arcscan/cmd/arcscan/generate"
	"github.com/flarebyte/arcscan/cmd/arcscan/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for arcscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arcscan",
		Short: "Generate record archives and extract them into level and object tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(version.VersionCmd)
	cmd.AddCommand(generate.Cmd)
	cmd.AddCommand(extract.Cmd)

	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	return ExecuteContext(context.Background(), args)
}

// ExecuteContext runs the root command with provided args; ctx reaches every
// subcommand through cmd.Context().
func ExecuteContext(ctx context.Context, args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}
