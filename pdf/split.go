package pdf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// writeSplit keeps the selected pages of the single source document using
// pdfcpu trim, which copies pages without touching their content.
func (p *PDFProvider) writeSplit(w io.Writer, a *Assembly) error {
	doc := a.Pages[0].Source.Document()
	if doc == nil {
		return fmt.Errorf("output page 1 has no source document")
	}

	selection := make(PageSelection, 0, len(a.Pages))
	for i, page := range a.Pages {
		if page.Source.Document() != doc {
			return fmt.Errorf("output page %d comes from a second document", i+1)
		}
		if page.Placement != nil {
			return fmt.Errorf("output page %d carries a transform", i+1)
		}
		if i > 0 && page.Source.Number <= selection[i-1] {
			return fmt.Errorf("output page %d is out of ascending order", i+1)
		}
		selection = append(selection, page.Source.Number)
	}

	// pdfcpu trim: keep only the selected pages
	if err := api.Trim(bytes.NewReader(doc.data), w, selection.Strings(), p.configuration()); err != nil {
		return fmt.Errorf("pdfcpu trim failed: %w", err)
	}
	return nil
}
