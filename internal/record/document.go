package record

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Document is the typed form of an archive XML document:
//
//	<root>
//	  <var name="id" value="..."/>
//	  <var name="level" value="42"/>
//	  <objects><object name="..."/></objects>
//	</root>
//
// Only direct children of the root element are addressed.
type Document struct {
	XMLName xml.Name     `xml:"root"`
	Fields  []Field      `xml:"var"`
	Objects []ObjectList `xml:"objects"`
}

// Field is a named scalar carried by a var element.
type Field struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ObjectList is one objects container.
type ObjectList struct {
	Objects []Object `xml:"object"`
}

// Object is a single named sub-object.
type Object struct {
	Name string `xml:"name,attr"`
}

// parseTarget mirrors Document without pinning the root element name.
type parseTarget struct {
	Fields  []Field      `xml:"var"`
	Objects []ObjectList `xml:"objects"`
}

// Parse decodes XML bytes into a Document. It checks syntax only; field
// validation belongs to Decode.
func Parse(b []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(b))
	var t parseTarget
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no root element", ErrUnparsable)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnparsable, err)
	}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnparsable, err)
		}
		switch x := tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(x)) > 0 {
				return nil, fmt.Errorf("%w: junk after root element", ErrUnparsable)
			}
		case xml.StartElement:
			return nil, fmt.Errorf("%w: second root element <%s>", ErrUnparsable, x.Name.Local)
		}
	}
	return &Document{Fields: t.Fields, Objects: t.Objects}, nil
}

// Lookup returns the first field with the given name.
func (d *Document) Lookup(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// String returns the value of the named field.
func (d *Document) String(name string) (string, error) {
	f, ok := d.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrFieldAbsent, name)
	}
	return f.Value, nil
}

// Int returns the value of the named field as a decimal integer.
func (d *Document) Int(name string) (int, error) {
	f, ok := d.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrFieldAbsent, name)
	}
	n, err := strconv.Atoi(strings.TrimSpace(f.Value))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrFieldType, name, f.Value)
	}
	return n, nil
}

// ObjectNames returns the name of every objects/object element in document
// order. Missing name attributes come back as empty strings.
func (d *Document) ObjectNames() []string {
	var names []string
	for _, list := range d.Objects {
		for _, o := range list.Objects {
			names = append(names, o.Name)
		}
	}
	return names
}
