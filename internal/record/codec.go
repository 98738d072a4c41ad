package record

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// Decode validates a parsed document and builds its Record. Any missing or
// invalid field rejects the whole document.
func Decode(d *Document) (Record, error) {
	if d == nil {
		return Record{}, fmt.Errorf("%w: nil document", ErrMalformedDocument)
	}
	id, err := d.String(FieldID)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	level, err := d.Int(FieldLevel)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	rec := Record{ID: id, Level: level, ObjectNames: d.ObjectNames()}
	if err := rec.Validate(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Unmarshal parses and decodes raw document bytes.
func Unmarshal(b []byte) (Record, error) {
	d, err := Parse(b)
	if err != nil {
		return Record{}, err
	}
	return Decode(d)
}

// Encode renders a record as a document. Invalid records are refused so the
// generator never writes something the extractor would reject.
func Encode(r Record) ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	list := ObjectList{Objects: make([]Object, 0, len(r.ObjectNames))}
	for _, name := range r.ObjectNames {
		list.Objects = append(list.Objects, Object{Name: name})
	}
	doc := Document{
		Fields: []Field{
			{Name: FieldID, Value: r.ID},
			{Name: FieldLevel, Value: strconv.Itoa(r.Level)},
		},
		Objects: []ObjectList{list},
	}
	b, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode record %s: %w", r.ID, err)
	}
	return b, nil
}
