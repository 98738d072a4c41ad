package record

import "errors"

var (
	// ErrUnparsable is returned by Parse when the bytes are not a single
	// well-formed XML document.
	ErrUnparsable = errors.New("document unparsable")
	// ErrMalformedDocument is returned by Decode when the parsed document
	// does not carry a valid record.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrFieldAbsent reports a missing var field.
	ErrFieldAbsent = errors.New("field absent")
	// ErrFieldType reports a var field whose value has the wrong type.
	ErrFieldType = errors.New("invalid field type")
	// ErrEmptyObjectName reports an object entry without a name.
	ErrEmptyObjectName = errors.New("empty object name")
	// ErrInvalidText reports a value XML 1.0 cannot carry: invalid UTF-8 or
	// a character outside the Char production.
	ErrInvalidText = errors.New("invalid text")
)
