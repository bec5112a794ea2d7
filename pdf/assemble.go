package pdf

import "fmt"

// Mode selects how source pages become output pages
type Mode int

const (
	// ModeMerge places every page of every input on a uniform canvas
	ModeMerge Mode = iota
	// ModeSplit copies the selected pages of one input verbatim
	ModeSplit
)

func (m Mode) String() string {
	switch m {
	case ModeMerge:
		return "merge"
	case ModeSplit:
		return "split"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Filename returns the export file name for output produced in this mode
func (m Mode) Filename() string {
	if m == ModeSplit {
		return SplittedFilename + ".pdf"
	}
	return MergedFilename + ".pdf"
}

// OutputPage is one page of the assembled output. A nil Placement means the
// source page is copied as-is.
type OutputPage struct {
	Source    SourcePage `json:"source"`
	Canvas    Size       `json:"canvas"`
	Placement *Rect      `json:"placement,omitempty"`
}

// Assembly is the ordered instruction list a provider serializes
type Assembly struct {
	Mode   Mode
	Canvas Size
	Pages  []OutputPage
}

// Merge lays out every page of docs, in list order and then page order, on
// canvases of the given size. Each page is scaled to fit and centered. A page
// without usable geometry fails the whole merge.
func Merge(docs []*Document, canvas Size) (*Assembly, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}
	if len(docs) > MaxMergeDocuments {
		return nil, ErrTooManyDocuments
	}

	total := 0
	for i, doc := range docs {
		if doc == nil {
			return nil, fmt.Errorf("document %d: %w", i+1, ErrNoDocuments)
		}
		total += doc.PageCount()
	}

	out := &Assembly{
		Mode:   ModeMerge,
		Canvas: canvas,
		Pages:  make([]OutputPage, 0, total),
	}
	for _, doc := range docs {
		for _, page := range doc.Pages {
			rect, err := FitPage(page.Size(), canvas)
			if err != nil {
				if geomErr, ok := err.(*GeometryError); ok {
					geomErr.Document = doc.Name
					geomErr.Page = page.Number
				}
				return nil, err
			}
			out.Pages = append(out.Pages, OutputPage{
				Source:    page,
				Canvas:    canvas,
				Placement: &rect,
			})
		}
	}
	return out, nil
}

// Split copies the pages named by sel out of doc without any transform. sel is
// expected to come from SelectPages against doc's page count.
func Split(doc *Document, sel PageSelection) (*Assembly, error) {
	if doc == nil {
		return nil, ErrNoDocuments
	}
	if len(sel) == 0 {
		return nil, ErrEmptySelection
	}

	out := &Assembly{
		Mode:  ModeSplit,
		Pages: make([]OutputPage, 0, len(sel)),
	}
	for _, number := range sel {
		idx := number - 1
		if idx < 0 || idx >= len(doc.Pages) {
			return nil, fmt.Errorf("page %d outside %q (%d pages)", number, doc.Name, len(doc.Pages))
		}
		page := doc.Pages[idx]
		out.Pages = append(out.Pages, OutputPage{
			Source: page,
			Canvas: page.Size(),
		})
	}
	return out, nil
}
