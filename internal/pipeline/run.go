package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/flarebyte/arcscan/internal/archive"
	"github.com/flarebyte/arcscan/internal/record"
)

// Sink receives decoded records. It is only called from the goroutine that
// runs Run.
type Sink interface {
	Write(rec record.Record) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(rec record.Record) error

func (f SinkFunc) Write(rec record.Record) error { return f(rec) }

// Options configure a run.
type Options struct {
	Source           string
	Workers          int
	Layout           archive.Layout
	Exclude          []string
	IgnoreFile       string
	Filter           string
	MaxDocumentBytes int64
	Logger           *slog.Logger
}

// Report summarises a run.
type Report struct {
	Source    string       `yaml:"source"`
	Layout    string       `yaml:"layout"`
	Workers   int          `yaml:"workers"`
	Archives  int          `yaml:"archives"`
	Documents int          `yaml:"documents"`
	Records   int          `yaml:"records"`
	Filtered  int          `yaml:"filtered"`
	Failures  []Diagnostic `yaml:"failures"`
}

// Failed reports whether any archive produced a diagnostic.
func (r Report) Failed() bool { return len(r.Failures) > 0 }

type archiveOutcome struct {
	results []archive.Result
	dropped []bool
	filterE []error
}

// Setup prepares a run without touching any output: it discovers the
// archives and compiles the filter. Callers create their sink only after
// Setup succeeds so a bad source leaves outputs untouched.
func Setup(opts Options) (*Plan, error) {
	paths, err := Discover(opts.Source, opts.Exclude, opts.IgnoreFile)
	if err != nil {
		return nil, err
	}
	var filter *Filter
	if opts.Filter != "" {
		filter, err = CompileFilter(opts.Filter)
		if err != nil {
			return nil, err
		}
	}
	layout := opts.Layout
	if layout == "" {
		layout = archive.LayoutSingle
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Plan{
		Paths:   paths,
		opts:    opts,
		layout:  layout,
		workers: workerCount(opts.Workers),
		filter:  filter,
		logger:  logger,
	}, nil
}

// Plan is a discovered, ready-to-execute run.
type Plan struct {
	Paths []string

	opts    Options
	layout  archive.Layout
	workers int
	filter  *Filter
	logger  *slog.Logger
}

// Run discovers and extracts in one call.
func Run(ctx context.Context, opts Options, sink Sink) (Report, error) {
	p, err := Setup(opts)
	if err != nil {
		return Report{}, err
	}
	return p.Execute(ctx, sink)
}

// Execute reads every planned archive and writes each record to sink in
// completion order. It returns once every dispatched read has finished.
func (p *Plan) Execute(ctx context.Context, sink Sink) (Report, error) {
	rep := Report{
		Source:   p.opts.Source,
		Layout:   string(p.layout),
		Workers:  p.workers,
		Archives: len(p.Paths),
		Failures: []Diagnostic{},
	}
	reader := &archive.Reader{Layout: p.layout, MaxDocumentBytes: p.opts.MaxDocumentBytes, Logger: p.logger}
	p.logger.Debug("extraction started", "source", p.opts.Source, "archives", len(p.Paths), "workers", p.workers)

	var sinkErr error
	ctxErr := drainParallel(ctx, len(p.Paths), p.workers, func(idx int) archiveOutcome {
		return p.readOne(reader, p.Paths[idx])
	}, func(out archiveOutcome) bool {
		for i, res := range out.results {
			if res.HasDocument() {
				rep.Documents++
			}
			if !res.OK() {
				rep.Failures = append(rep.Failures, diagnosticFrom(res.Err))
				continue
			}
			if err := out.filterE[i]; err != nil {
				rep.Failures = append(rep.Failures, Diagnostic{
					Locator: res.Path,
					Entry:   res.Entry,
					Kind:    KindFilterFailed,
					Message: sanitizeMessage(err.Error()),
				})
				p.logger.Warn("record skipped", "path", res.Path, "entry", res.Entry, "kind", string(KindFilterFailed), "error", err.Error())
				continue
			}
			if out.dropped[i] {
				rep.Filtered++
				continue
			}
			if err := sink.Write(res.Record); err != nil {
				sinkErr = fmt.Errorf("write record %s: %w", res.Record.ID, err)
				return false
			}
			rep.Records++
		}
		return true
	})
	SortDiagnostics(rep.Failures)
	if sinkErr != nil {
		return rep, sinkErr
	}
	if ctxErr != nil {
		return rep, ctxErr
	}
	p.logger.Info("extraction finished",
		"archives", rep.Archives,
		"records", rep.Records,
		"filtered", rep.Filtered,
		"failures", len(rep.Failures),
	)
	return rep, nil
}

// readOne runs on a worker: read, then filter, so the coordinating goroutine
// only merges.
func (p *Plan) readOne(reader *archive.Reader, path string) archiveOutcome {
	results := reader.Read(path)
	out := archiveOutcome{
		results: results,
		dropped: make([]bool, len(results)),
		filterE: make([]error, len(results)),
	}
	if p.filter == nil {
		return out
	}
	for i, res := range results {
		if !res.OK() {
			continue
		}
		keep, err := p.filter.Keep(res.Record)
		if err != nil {
			out.filterE[i] = err
			continue
		}
		out.dropped[i] = !keep
	}
	return out
}
