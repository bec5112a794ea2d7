package pdf

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDocuments is returned when an assembly is requested without input
	ErrNoDocuments = errors.New("no documents provided")

	// ErrTooManyDocuments is returned when a merge exceeds MaxMergeDocuments
	ErrTooManyDocuments = fmt.Errorf("at most %d documents can be merged", MaxMergeDocuments)

	// ErrEmptySelection is returned when a split is requested without pages
	ErrEmptySelection = errors.New("no pages selected")
)

// ValidationError is a recoverable input-format error. Message is meant to be
// shown to the user verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// DecodeError reports bytes the document provider could not interpret
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// GeometryError reports a page without usable dimensions
type GeometryError struct {
	Document string
	Page     int
	Width    float64
	Height   float64
}

func (e *GeometryError) Error() string {
	if e.Document == "" {
		return fmt.Sprintf("page %d has unusable geometry %gx%g", e.Page, e.Width, e.Height)
	}
	return fmt.Sprintf("%q page %d has unusable geometry %gx%g", e.Document, e.Page, e.Width, e.Height)
}

// EncodeError reports a failure while writing the output document
type EncodeError struct {
	Mode Mode
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s output: %v", e.Mode, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err belongs to the fatal error classes that abort an
// operation as a whole.
func IsFatal(err error) bool {
	var (
		decodeErr   *DecodeError
		geometryErr *GeometryError
		encodeErr   *EncodeError
	)
	return errors.As(err, &decodeErr) || errors.As(err, &geometryErr) || errors.As(err, &encodeErr)
}
