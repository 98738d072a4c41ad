// Package archive reads and writes the zip containers that carry record
// documents.
package archive

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zip"
)

// Layout selects how documents are named inside an archive.
type Layout string

const (
	// LayoutSingle stores exactly one document named data.xml.
	LayoutSingle Layout = "single"
	// LayoutMulti stores documents named 0.xml, 1.xml, ...
	LayoutMulti Layout = "multi"
)

// SingleEntryName is the document entry of a single-layout archive.
const SingleEntryName = "data.xml"

// ParseLayout validates a layout name. The empty string selects LayoutSingle.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case "", LayoutSingle:
		return LayoutSingle, nil
	case LayoutMulti:
		return LayoutMulti, nil
	default:
		return "", fmt.Errorf("unknown archive layout: %q (expected single or multi)", s)
	}
}

// EntryName returns the document entry name for index under the layout.
func (l Layout) EntryName(index int) string {
	if l == LayoutMulti {
		return strconv.Itoa(index) + ".xml"
	}
	return SingleEntryName
}

// entries picks the document entries of an opened archive in read order.
func (l Layout) entries(files []*zip.File) []*zip.File {
	if l != LayoutMulti {
		for _, f := range files {
			if f.Name == SingleEntryName {
				return []*zip.File{f}
			}
		}
		return nil
	}
	type indexed struct {
		idx  int
		file *zip.File
	}
	var found []indexed
	seen := map[int]bool{}
	for _, f := range files {
		idx, ok := multiIndex(f.Name)
		if !ok || seen[idx] {
			continue
		}
		seen[idx] = true
		found = append(found, indexed{idx: idx, file: f})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].idx < found[j].idx })
	out := make([]*zip.File, 0, len(found))
	for _, it := range found {
		out = append(out, it.file)
	}
	return out
}

// multiIndex parses "<n>.xml" where n has no sign and no leading zeros.
func multiIndex(name string) (int, bool) {
	base, ok := strings.CutSuffix(name, ".xml")
	if !ok || base == "" {
		return 0, false
	}
	if len(base) > 1 && base[0] == '0' {
		return 0, false
	}
	for _, c := range base {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(base)
	if err != nil {
		return 0, false
	}
	return n, true
}
