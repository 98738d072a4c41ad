package archive

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/flarebyte/arcscan/internal/record"
	"github.com/klauspost/compress/zip"
)

// DefaultMaxDocumentBytes caps how much of one entry is decompressed.
const DefaultMaxDocumentBytes = 16 << 20

var (
	errNoDocument = errors.New("no document entry")
	errTooLarge   = errors.New("document exceeds size limit")
)

// Reader extracts records from archive files. The zero value reads the
// single layout with the default size limit and the default logger.
type Reader struct {
	Layout           Layout
	MaxDocumentBytes int64
	Logger           *slog.Logger
}

// Read opens the archive at path and decodes every document the layout
// names. It never fails as a whole: each problem becomes a failed Result and
// a warning log line. A single-layout archive always yields one Result.
func (r *Reader) Read(path string) []Result {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return []Result{r.fail(path, "", KindContainerUnreadable, err)}
	}
	defer zr.Close()

	files := r.layout().entries(zr.File)
	if len(files) == 0 {
		entry := ""
		if r.layout() == LayoutSingle {
			entry = SingleEntryName
		}
		return []Result{r.fail(path, entry, KindDocumentMissing, errNoDocument)}
	}
	out := make([]Result, 0, len(files))
	for _, f := range files {
		out = append(out, r.readEntry(path, f))
	}
	return out
}

func (r *Reader) readEntry(path string, f *zip.File) Result {
	b, err := r.readLimited(f)
	if err != nil {
		if errors.Is(err, errTooLarge) {
			return r.fail(path, f.Name, KindDocumentTooLarge, err)
		}
		return r.fail(path, f.Name, KindContainerUnreadable, err)
	}
	doc, err := record.Parse(b)
	if err != nil {
		return r.fail(path, f.Name, KindDocumentUnparsable, err)
	}
	rec, err := record.Decode(doc)
	if err != nil {
		return r.fail(path, f.Name, KindMalformedDocument, err)
	}
	return Result{Path: path, Entry: f.Name, Record: rec}
}

func (r *Reader) readLimited(f *zip.File) ([]byte, error) {
	limit := r.maxBytes()
	if f.UncompressedSize64 > uint64(limit) {
		return nil, fmt.Errorf("%w: %d > %d bytes", errTooLarge, f.UncompressedSize64, limit)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	// The header size can lie; read one byte past the limit to notice.
	b, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", errTooLarge, limit)
	}
	return b, nil
}

func (r *Reader) fail(path, entry string, kind Kind, err error) Result {
	res := failed(path, entry, kind, err)
	r.logger().Warn("archive skipped",
		"path", path,
		"entry", entry,
		"kind", string(kind),
		"error", err.Error(),
	)
	return res
}

func (r *Reader) layout() Layout {
	if r.Layout == "" {
		return LayoutSingle
	}
	return r.Layout
}

func (r *Reader) maxBytes() int64 {
	if r.MaxDocumentBytes > 0 {
		return r.MaxDocumentBytes
	}
	return DefaultMaxDocumentBytes
}

func (r *Reader) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
