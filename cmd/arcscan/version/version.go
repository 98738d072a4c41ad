package version

import (
	"fmt"
	"time"

	"github.com/flarebyte/arcscan/internal/buildinfo"
	"github.com/spf13/cobra"
)

var (
	flagShort bool
	flagJSON  bool
)

type versionOutput struct {
	buildinfo.Info
	Timestamp string `json:"timestamp"`
}

// VersionCmd prints build metadata.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the CLI version",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if flagShort || !flagJSON {
			_, err := fmt.Fprintf(out, "arcscan %s\n", buildinfo.Summary())
			return err
		}

		// JSON goes to stdout, a human friendly line to stderr.
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "arcscan version: %s\n", buildinfo.Summary())
		return encodeJSON(out, versionOutput{
			Info:      buildinfo.Details(),
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		})
	},
}

func init() {
	VersionCmd.Flags().BoolVar(&flagShort, "short", false, "Print only the version string")
	VersionCmd.Flags().BoolVar(&flagJSON, "json", false, "Print detailed JSON version info")
}
