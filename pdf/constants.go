package pdf

import "strings"

const (
	// MaxMergeDocuments is the maximum number of documents a merge accepts
	MaxMergeDocuments = 3

	// MaxSelectionSize is the most pages ParsePageRange expands a specification
	// into. SelectPages is bounded by the document instead.
	MaxSelectionSize = 100000

	// MaxListedPages caps how many out-of-range pages a validation message names
	MaxListedPages = 20

	// MergedFilename is the export name stem for merge output
	MergedFilename = "merged"

	// SplittedFilename is the export name stem for split output
	SplittedFilename = "splitted"
)

// Standard canvas sizes in PDF points (1/72 inch)
var (
	A3     = Size{Width: 841.89, Height: 1190.55}
	A4     = Size{Width: 595.28, Height: 841.89}
	A5     = Size{Width: 419.53, Height: 595.28}
	Letter = Size{Width: 612, Height: 792}
	Legal  = Size{Width: 612, Height: 1008}
)

// DefaultCanvas is the canvas used for merge output when none is configured
var DefaultCanvas = A4

var canvasSizes = map[string]Size{
	"a3":     A3,
	"a4":     A4,
	"a5":     A5,
	"letter": Letter,
	"legal":  Legal,
}

// CanvasByName looks up a standard canvas size, case-insensitively
func CanvasByName(name string) (Size, bool) {
	size, ok := canvasSizes[strings.ToLower(strings.TrimSpace(name))]
	return size, ok
}
