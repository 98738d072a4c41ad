// Package generate writes synthetic archives for the extractor to consume.
package generate

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/flarebyte/arcscan/internal/archive"
	"github.com/flarebyte/arcscan/internal/record"
	"github.com/google/uuid"
	"github.com/zeebo/blake3"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultArchiveCount = 50
	DefaultXMLCount     = 100

	minLevel, maxLevel     = 1, 100
	minObjects, maxObjects = 1, 10
)

var (
	// ErrTargetNotDirectory is returned when the target exists and is not a directory.
	ErrTargetNotDirectory = errors.New("target path is not a directory")
	// ErrTargetNotEmpty is returned when the target directory has entries.
	ErrTargetNotEmpty = errors.New("target directory is not empty")
)

// Options configure a generation run.
type Options struct {
	Target       string
	ArchiveCount int
	// XMLCount is the number of documents per archive in the multi layout.
	XMLCount int
	Layout   archive.Layout
	Workers  int
	// Seed makes the output reproducible when HasSeed is set.
	Seed    uint64
	HasSeed bool
	Logger  *slog.Logger
}

// Report describes what a run wrote.
type Report struct {
	Archives int
	Records  int
	Seed     uint64
}

// PrepareTarget creates dir when missing and refuses a non-directory or a
// non-empty directory.
func PrepareTarget(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create target directory: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("target directory %s: %w", dir, err)
	case !info.IsDir():
		return fmt.Errorf("%w: %s", ErrTargetNotDirectory, dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("list target directory %s: %w", dir, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: %s", ErrTargetNotEmpty, dir)
	}
	return nil
}

// RandomRecord draws a record: a UUID id read from ids, a level in [1,100]
// and between one and ten objects named by UUIDs.
func RandomRecord(rng *rand.Rand, ids io.Reader) (record.Record, error) {
	id, err := uuid.NewRandomFromReader(ids)
	if err != nil {
		return record.Record{}, err
	}
	n := minObjects + rng.IntN(maxObjects-minObjects+1)
	names := make([]string, 0, n)
	for range n {
		name, err := uuid.NewRandomFromReader(ids)
		if err != nil {
			return record.Record{}, err
		}
		names = append(names, name.String())
	}
	return record.Record{
		ID:          id.String(),
		Level:       minLevel + rng.IntN(maxLevel-minLevel+1),
		ObjectNames: names,
	}, nil
}

// archiveSource derives the random stream of one archive from the run seed,
// so the bytes of archive i do not depend on scheduling.
func archiveSource(seed uint64, index int) *rand.ChaCha8 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], seed)
	binary.LittleEndian.PutUint64(buf[8:], uint64(index))
	return rand.NewChaCha8(blake3.Sum256(buf[:]))
}

// Run prepares the target and writes {i}.zip for every archive index.
func Run(ctx context.Context, opts Options) (Report, error) {
	if opts.ArchiveCount < 0 {
		return Report{}, fmt.Errorf("archive count must not be negative: %d", opts.ArchiveCount)
	}
	layout := opts.Layout
	if layout == "" {
		layout = archive.LayoutSingle
	}
	perArchive := 1
	if layout == archive.LayoutMulti {
		if opts.XMLCount < 1 {
			return Report{}, fmt.Errorf("xml count must be at least 1: %d", opts.XMLCount)
		}
		perArchive = opts.XMLCount
	}
	if err := PrepareTarget(opts.Target); err != nil {
		return Report{}, err
	}
	seed := opts.Seed
	if !opts.HasSeed {
		seed = rand.Uint64()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < opts.ArchiveCount; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return writeArchive(opts.Target, layout, seed, i, perArchive)
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	rep := Report{Archives: opts.ArchiveCount, Records: opts.ArchiveCount * perArchive, Seed: seed}
	logger.Info("archives generated",
		"target", opts.Target,
		"archives", rep.Archives,
		"records", rep.Records,
		"layout", string(layout),
		"seed", seed,
	)
	return rep, nil
}

func writeArchive(dir string, layout archive.Layout, seed uint64, index, count int) error {
	src := archiveSource(seed, index)
	rng := rand.New(src)
	records := make([]record.Record, 0, count)
	for range count {
		rec, err := RandomRecord(rng, src)
		if err != nil {
			return fmt.Errorf("archive %d: %w", index, err)
		}
		records = append(records, rec)
	}
	path := filepath.Join(dir, strconv.Itoa(index)+".zip")
	if err := archive.WriteFile(path, layout, records); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
