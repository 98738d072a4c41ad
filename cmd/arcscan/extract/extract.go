package extract

import (
	"context"
	"errors"

	"github.com/flarebyte/arcscan/cmd/arcscan/common"
	"github.com/flarebyte/arcscan/internal/archive"
	"github.com/flarebyte/arcscan/internal/config"
	"github.com/flarebyte/arcscan/internal/pipeline"
	"github.com/flarebyte/arcscan/internal/summary"
	"github.com/flarebyte/arcscan/internal/table"
	"github.com/spf13/cobra"
)

var (
	shared           common.Flags
	processes        int
	layoutName       string
	exclude          []string
	ignoreFile       string
	filter           string
	summaryPath      string
	lf               bool
	failOnError      bool
	maxDocumentBytes int64
)

// Cmd represents the `arcscan extract` command.
var Cmd = NewCmd()

// NewCmd builds a fresh extract command with its flags bound.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "extract <source-dir> <level-csv> <object-csv>",
		Short:         "Extract records from every archive in a directory into two CSV tables",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := shared.Resolve(cmd)
			if err != nil {
				return err
			}
			s, err := resolveSettings(cmd, cfg)
			if err != nil {
				return err
			}
			opts := pipeline.Options{
				Source:           args[0],
				Workers:          s.processes,
				Layout:           s.layout,
				Exclude:          s.exclude,
				IgnoreFile:       s.ignoreFile,
				Filter:           s.filter,
				MaxDocumentBytes: s.maxDocumentBytes,
				Logger:           logger,
			}
			// Setup touches no output: a bad source leaves both tables as they were.
			plan, err := pipeline.Setup(opts)
			if err != nil {
				return err
			}
			w, err := table.Create(args[1], args[2], s.lf)
			if err != nil {
				return err
			}
			rep, runErr := plan.Execute(cmd.Context(), w)
			closeErr := w.Close()
			if s.summary != "" && (runErr == nil || interrupted(runErr)) {
				if err := summary.Write(s.summary, rep); err != nil {
					return errors.Join(runErr, closeErr, err)
				}
			}
			return evaluateRunExit(rep, runErr, closeErr, s.failOnError)
		},
	}
	registerFlags(cmd)
	return cmd
}

type settings struct {
	processes        int
	layout           archive.Layout
	exclude          []string
	ignoreFile       string
	filter           string
	summary          string
	lf               bool
	failOnError      bool
	maxDocumentBytes int64
}

// resolveSettings merges the config file with flags; a flag given on the
// command line always wins. Exclude patterns accumulate.
func resolveSettings(cmd *cobra.Command, cfg config.Config) (settings, error) {
	fl := cmd.Flags()
	s := settings{
		processes:        cfg.Extract.Processes,
		exclude:          append([]string(nil), cfg.Extract.Exclude...),
		filter:           cfg.Extract.Filter,
		summary:          cfg.Extract.Summary,
		ignoreFile:       cfg.Extract.IgnoreFile,
		lf:               cfg.Extract.LF,
		failOnError:      cfg.Extract.FailOnError,
		maxDocumentBytes: cfg.Extract.MaxDocumentBytes,
	}
	name := cfg.Layout
	if fl.Changed("layout") {
		name = layoutName
	}
	layout, err := archive.ParseLayout(name)
	if err != nil {
		return settings{}, err
	}
	s.layout = layout
	if fl.Changed("processes") {
		s.processes = processes
	}
	s.exclude = append(s.exclude, exclude...)
	if fl.Changed("filter") {
		s.filter = filter
	}
	if fl.Changed("summary") {
		s.summary = summaryPath
	}
	if fl.Changed("ignore-file") {
		s.ignoreFile = ignoreFile
	}
	if fl.Changed("lf") {
		s.lf = lf
	}
	if fl.Changed("fail-on-error") {
		s.failOnError = failOnError
	}
	if fl.Changed("max-document-bytes") {
		s.maxDocumentBytes = maxDocumentBytes
	}
	return s, nil
}

func interrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func registerFlags(cmd *cobra.Command) {
	fl := cmd.Flags()
	shared.Register(fl)
	fl.IntVarP(&processes, "processes", "p", 0, "Number of concurrent archive readers (default: one per CPU)")
	fl.StringVar(&layoutName, "layout", "single", "Archive layout: single (data.xml) or multi (0.xml, 1.xml, ...)")
	fl.StringArrayVar(&exclude, "exclude", nil, "Gitignore-style pattern of source entries to skip (repeatable)")
	fl.StringVar(&ignoreFile, "ignore-file", "", "File of gitignore-style patterns of source entries to skip")
	fl.StringVar(&filter, "filter", "", "Lua predicate over id, level and objects; records evaluating to false are dropped")
	fl.StringVar(&summaryPath, "summary", "", "Write a YAML run summary to this path")
	fl.BoolVar(&lf, "lf", false, "Terminate CSV rows with \\n instead of \\r\\n")
	fl.BoolVar(&failOnError, "fail-on-error", false, "Exit with code 2 when any archive fails")
	fl.Int64Var(&maxDocumentBytes, "max-document-bytes", 0, "Largest document read from an archive (default 16 MiB)")
}
