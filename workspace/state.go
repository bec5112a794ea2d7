// Package workspace holds the state of one merge or split request as an
// explicit value. Every transition returns a new State and leaves the receiver
// untouched.
package workspace

import (
	"errors"
	"fmt"

	"pdf_assembler/pdf"
)

var (
	// ErrTooManyFiles is returned when a file would exceed the mode's limit
	ErrTooManyFiles = errors.New("too many files")

	// ErrBusy is returned when an operation is started while one is running
	ErrBusy = errors.New("an operation is already in progress")

	// ErrNotReady is returned when an operation is started with missing input
	ErrNotReady = errors.New("workspace is not ready")
)

// State is the input collected for one operation
type State struct {
	Mode       pdf.Mode
	Files      []pdf.File
	PagesText  string
	TotalPages int
	Selection  pdf.PageSelection
	Error      string // current validation message, shown verbatim
	Processing bool
}

// New returns an empty State for mode
func New(mode pdf.Mode) State {
	return State{Mode: mode}
}

// MaxFiles returns how many files the mode accepts
func (s State) MaxFiles() int {
	if s.Mode == pdf.ModeSplit {
		return 1
	}
	return pdf.MaxMergeDocuments
}

// WithFiles appends files, refusing the whole batch if it would exceed the
// mode's limit.
func (s State) WithFiles(files ...pdf.File) (State, error) {
	if len(s.Files)+len(files) > s.MaxFiles() {
		return s, fmt.Errorf("%w: %s accepts at most %d", ErrTooManyFiles, s.Mode, s.MaxFiles())
	}
	next := s
	next.Files = append(append([]pdf.File(nil), s.Files...), files...)
	return next, nil
}

// WithTotalPages records the page count of the split source and revalidates
// the current page text against it.
func (s State) WithTotalPages(n int) State {
	next := s
	next.TotalPages = n
	if next.PagesText != "" {
		return next.WithPagesText(next.PagesText)
	}
	return next
}

// WithPagesText stores text and validates it against TotalPages
func (s State) WithPagesText(text string) State {
	next := s
	next.PagesText = text
	next.Selection = nil
	next.Error = ""

	sel, err := pdf.SelectPages(text, s.TotalPages)
	if err != nil {
		var verr *pdf.ValidationError
		if errors.As(err, &verr) {
			next.Error = verr.Message
		} else {
			next.Error = err.Error()
		}
		return next
	}
	next.Selection = sel
	return next
}

// Ready reports whether the state has everything its mode needs
func (s State) Ready() bool {
	if len(s.Files) == 0 {
		return false
	}
	if s.Mode == pdf.ModeSplit {
		return s.Error == "" && len(s.Selection) > 0
	}
	return true
}

// Begin marks the state as processing
func (s State) Begin() (State, error) {
	if s.Processing {
		return s, ErrBusy
	}
	if !s.Ready() {
		return s, ErrNotReady
	}
	next := s
	next.Processing = true
	return next, nil
}

// Finish ends processing. Input is cleared only when err is nil so a failed
// operation can be retried as is.
func (s State) Finish(err error) State {
	if err != nil {
		next := s
		next.Processing = false
		return next
	}
	return New(s.Mode)
}
