package archive

import (
	"errors"
	"fmt"
	"os"

	"github.com/flarebyte/arcscan/internal/record"
	"github.com/klauspost/compress/zip"
)

// WriteFile creates a deflate-compressed archive at path holding one
// document per record, named according to layout. The single layout takes
// exactly one record.
func WriteFile(path string, layout Layout, records []record.Record) (err error) {
	if layout == "" {
		layout = LayoutSingle
	}
	if layout == LayoutSingle && len(records) != 1 {
		return fmt.Errorf("single layout holds exactly one record, got %d", len(records))
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	zw := zip.NewWriter(f)
	for i, rec := range records {
		b, encErr := record.Encode(rec)
		if encErr != nil {
			return errors.Join(encErr, zw.Close())
		}
		w, cErr := zw.CreateHeader(&zip.FileHeader{Name: layout.EntryName(i), Method: zip.Deflate})
		if cErr != nil {
			return errors.Join(cErr, zw.Close())
		}
		if _, wErr := w.Write(b); wErr != nil {
			return errors.Join(wErr, zw.Close())
		}
	}
	return zw.Close()
}
