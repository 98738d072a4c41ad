// Package table writes the two flattened CSV outputs of an extraction run:
// one (id, level) row per record and one (id, object) row per object name.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/flarebyte/arcscan/internal/record"
)

// LevelRow is one row of the level table.
type LevelRow struct {
	ID    string
	Level int
}

// ObjectRow is one row of the object table.
type ObjectRow struct {
	ID         string
	ObjectName string
}

// Rows fans a record out into its level row and its object rows, the latter
// in ObjectNames order.
func Rows(rec record.Record) (LevelRow, []ObjectRow) {
	objects := make([]ObjectRow, 0, len(rec.ObjectNames))
	for _, name := range rec.ObjectNames {
		objects = append(objects, ObjectRow{ID: rec.ID, ObjectName: name})
	}
	return LevelRow{ID: rec.ID, Level: rec.Level}, objects
}

// Counts reports how many rows a Writer emitted.
type Counts struct {
	Levels  int
	Objects int
}

// Writer appends rows to the two tables. It is not safe for concurrent use.
type Writer struct {
	levels  *csv.Writer
	objects *csv.Writer
	closers []*os.File
	counts  Counts
}

// NewWriter writes CSV rows to the given streams. Rows end in \r\n as RFC
// 4180 has it; lf selects bare \n instead.
func NewWriter(levels, objects io.Writer, lf bool) *Writer {
	lw, ow := csv.NewWriter(levels), csv.NewWriter(objects)
	lw.UseCRLF, ow.UseCRLF = !lf, !lf
	return &Writer{levels: lw, objects: ow}
}

// Create truncates (or creates) both output files and returns a Writer for
// them. Close must be called to flush and sync.
func Create(levelPath, objectPath string, lf bool) (*Writer, error) {
	lvf, err := os.Create(levelPath)
	if err != nil {
		return nil, fmt.Errorf("create level table: %w", err)
	}
	of, err := os.Create(objectPath)
	if err != nil {
		_ = lvf.Close()
		return nil, fmt.Errorf("create object table: %w", err)
	}
	w := NewWriter(lvf, of, lf)
	w.closers = []*os.File{lvf, of}
	return w, nil
}

// Write appends one level row and one object row per object name.
func (w *Writer) Write(rec record.Record) error {
	level, objects := Rows(rec)
	if err := w.levels.Write([]string{level.ID, strconv.Itoa(level.Level)}); err != nil {
		return fmt.Errorf("level table: %w", err)
	}
	w.counts.Levels++
	for _, o := range objects {
		if err := w.objects.Write([]string{o.ID, o.ObjectName}); err != nil {
			return fmt.Errorf("object table: %w", err)
		}
		w.counts.Objects++
	}
	return nil
}

// Counts returns the rows written so far.
func (w *Writer) Counts() Counts { return w.counts }

// Flush pushes buffered rows to the underlying writers.
func (w *Writer) Flush() error {
	w.levels.Flush()
	w.objects.Flush()
	return errors.Join(w.levels.Error(), w.objects.Error())
}

// Close flushes, syncs and closes any files opened by Create. Every row is on
// disk once Close returns nil.
func (w *Writer) Close() error {
	errs := []error{w.Flush()}
	for _, f := range w.closers {
		errs = append(errs, f.Sync(), f.Close())
	}
	w.closers = nil
	return errors.Join(errs...)
}
