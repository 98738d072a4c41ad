// Package record holds the archive record and the XML document codec shared
// by the generator and the extractor.
package record

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

// Field names used inside a document. They are part of the archive format.
const (
	FieldID    = "id"
	FieldLevel = "level"
)

// Record is one decoded, validated archive record.
type Record struct {
	ID          string
	Level       int
	ObjectNames []string
}

// Validate reports whether r satisfies the record invariants.
func (r Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: %w: %s", ErrMalformedDocument, ErrFieldAbsent, FieldID)
	}
	if !xmlText(r.ID) {
		return fmt.Errorf("%w: %w: %s %q", ErrMalformedDocument, ErrInvalidText, FieldID, r.ID)
	}
	for i, name := range r.ObjectNames {
		if name == "" {
			return fmt.Errorf("%w: %w at index %d", ErrMalformedDocument, ErrEmptyObjectName, i)
		}
		if !xmlText(name) {
			return fmt.Errorf("%w: %w: object %d %q", ErrMalformedDocument, ErrInvalidText, i, name)
		}
	}
	return nil
}

// xmlText reports whether s survives an XML round trip unchanged.
func xmlText(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if !isXMLChar(r) {
			return false
		}
	}
	return true
}

// isXMLChar matches the Char production of XML 1.0.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

// Equal reports whether two records carry the same values.
func (r Record) Equal(o Record) bool {
	return r.ID == o.ID && r.Level == o.Level && slices.Equal(r.ObjectNames, o.ObjectNames)
}
