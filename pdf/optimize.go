package pdf

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// optimize rewrites a finished PDF through pdfcpu's optimizer, dropping
// duplicate resources and compacting the cross reference table.
func (p *PDFProvider) optimize(rs io.ReadSeeker, w io.Writer) error {
	if err := api.Optimize(rs, w, p.configuration()); err != nil {
		return fmt.Errorf("pdfcpu optimize failed: %w", err)
	}
	return nil
}
