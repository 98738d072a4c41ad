package generate

import (
	"context"
	"errors"
	"fmt"

	"github.com/flarebyte/arcscan/cmd/arcscan/common"
	"github.com/flarebyte/arcscan/internal/archive"
	gen "github.com/flarebyte/arcscan/internal/generate"
	"github.com/spf13/cobra"
)

var (
	shared       common.Flags
	archiveCount int
	xmlCount     int
	processes    int
	seed         uint64
	layoutName   string
)

// Cmd represents the `arcscan generate` command.
var Cmd = NewCmd()

// NewCmd builds a fresh generate command with its flags bound.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "generate <target-dir>",
		Short:         "Write synthetic record archives into an empty directory",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := shared.Resolve(cmd)
			if err != nil {
				return err
			}
			fl := cmd.Flags()
			name := cfg.Layout
			if fl.Changed("layout") {
				name = layoutName
			}
			layout, err := archive.ParseLayout(name)
			if err != nil {
				return err
			}
			opts := gen.Options{
				Target:       args[0],
				ArchiveCount: cfg.Generate.ArchiveCount,
				XMLCount:     cfg.Generate.XMLCount,
				Layout:       layout,
				Workers:      cfg.Generate.Processes,
				Logger:       logger,
			}
			if fl.Changed("archive-count") {
				opts.ArchiveCount = archiveCount
			}
			if fl.Changed("xml-count") {
				opts.XMLCount = xmlCount
			}
			if fl.Changed("processes") {
				opts.Workers = processes
			}
			switch {
			case fl.Changed("seed"):
				opts.Seed, opts.HasSeed = seed, true
			case cfg.Generate.Seed != nil:
				opts.Seed, opts.HasSeed = *cfg.Generate.Seed, true
			}
			if _, err := gen.Run(cmd.Context(), opts); err != nil {
				if errors.Is(err, context.Canceled) {
					return interruptedError{}
				}
				return fmt.Errorf("generate: %w", err)
			}
			return nil
		},
	}
	fl := cmd.Flags()
	shared.Register(fl)
	fl.IntVar(&archiveCount, "archive-count", gen.DefaultArchiveCount, "Number of archives to create")
	fl.IntVar(&xmlCount, "xml-count", gen.DefaultXMLCount, "Number of XML documents per archive (multi layout only)")
	fl.IntVarP(&processes, "processes", "p", 0, "Number of concurrent archive writers (default: one per CPU)")
	fl.Uint64Var(&seed, "seed", 0, "Seed for reproducible output (default: random)")
	fl.StringVar(&layoutName, "layout", "single", "Archive layout: single (data.xml) or multi (0.xml, 1.xml, ...)")
	return cmd
}

type interruptedError struct{}

func (interruptedError) Error() string { return "interrupted" }
func (interruptedError) ExitCode() int { return 130 }
