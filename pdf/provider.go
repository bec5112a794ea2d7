package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"
)

// mediaBox is the page box imported as the placed content of a merged page
const mediaBox = "/MediaBox"

// Provider decodes raw document bytes and encodes assemblies back to bytes.
type Provider interface {
	Load(name string, data []byte) (*Document, error)
	Serialize(w io.Writer, a *Assembly) error
}

// PDFProvider reads documents with pdfcpu. Merged output is drawn with fpdf,
// each source page imported as a gofpdi template. Split output is written by
// pdfcpu so pages are copied untouched.
type PDFProvider struct {
	// Relaxed lowers pdfcpu's validation strictness for slightly broken files
	Relaxed bool
	// Optimize runs output through pdfcpu's optimizer before it is returned
	Optimize bool

	log logrus.FieldLogger
	// placed, when set, observes each page drawn into merged output
	placed func(outputPage int, page OutputPage)
}

// NewProvider returns a PDFProvider logging to log
func NewProvider(log logrus.FieldLogger) *PDFProvider {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PDFProvider{Relaxed: true, log: log}
}

// configuration returns a fresh pdfcpu configuration; pdfcpu records the
// running command on it, so it is never shared between calls.
func (p *PDFProvider) configuration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	if p.Relaxed {
		conf.ValidationMode = model.ValidationRelaxed
	}
	return conf
}

// Load decodes data and records the size of every page.
func (p *PDFProvider) Load(name string, data []byte) (*Document, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), p.configuration())
	if err != nil {
		return nil, &DecodeError{Name: name, Err: err}
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return nil, &DecodeError{Name: name, Err: err}
	}
	if len(dims) != ctx.PageCount {
		return nil, &DecodeError{
			Name: name,
			Err:  fmt.Errorf("page tree lists %d pages but %d have dimensions", ctx.PageCount, len(dims)),
		}
	}

	sizes := make([]Size, len(dims))
	for i, d := range dims {
		sizes[i] = Size{Width: d.Width, Height: d.Height}
	}

	p.log.WithFields(logrus.Fields{
		"document": name,
		"pages":    len(sizes),
		"bytes":    len(data),
	}).Debug("Document loaded")

	return NewDocument(name, data, sizes), nil
}

// Serialize encodes a into w. Nothing is written to w unless encoding
// succeeds as a whole.
func (p *PDFProvider) Serialize(w io.Writer, a *Assembly) error {
	if a == nil || len(a.Pages) == 0 {
		return &EncodeError{Err: errors.New("nothing to encode")}
	}

	var buf bytes.Buffer
	var err error
	switch a.Mode {
	case ModeMerge:
		err = p.writeMerged(&buf, a)
	case ModeSplit:
		err = p.writeSplit(&buf, a)
	default:
		err = fmt.Errorf("unsupported mode %s", a.Mode)
	}
	if err != nil {
		return &EncodeError{Mode: a.Mode, Err: err}
	}

	if p.Optimize {
		var optimized bytes.Buffer
		if err := p.optimize(bytes.NewReader(buf.Bytes()), &optimized); err != nil {
			return &EncodeError{Mode: a.Mode, Err: err}
		}
		buf = optimized
	}

	p.log.WithFields(logrus.Fields{
		"mode":  a.Mode.String(),
		"pages": len(a.Pages),
		"bytes": buf.Len(),
	}).Debug("Assembly encoded")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return &EncodeError{Mode: a.Mode, Err: err}
	}
	return nil
}

// pageSource is the gofpdi importer of one source document. gofpdi keys parsed
// sources by the stream pointer, so the same pointer is reused for every page.
type pageSource struct {
	imp *gofpdi.Importer
	rs  *io.ReadSeeker
}

func (p *PDFProvider) writeMerged(w io.Writer, a *Assembly) (err error) {
	// gofpdi panics on sources it cannot parse
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("import page: %v", r)
		}
	}()

	out := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: a.Canvas.Width, Ht: a.Canvas.Height},
	})
	out.SetAutoPageBreak(false, 0)

	sources := make(map[*Document]*pageSource)
	for i, page := range a.Pages {
		doc := page.Source.Document()
		if doc == nil || page.Placement == nil {
			return fmt.Errorf("output page %d has no placed content", i+1)
		}

		src, ok := sources[doc]
		if !ok {
			var rs io.ReadSeeker = bytes.NewReader(doc.data)
			src = &pageSource{imp: gofpdi.NewImporter(), rs: &rs}
			sources[doc] = src
		}

		tpl := src.imp.ImportPageFromStream(out, src.rs, page.Source.Number, mediaBox)
		out.AddPageFormat("P", fpdf.SizeType{Wd: page.Canvas.Width, Ht: page.Canvas.Height})
		r := page.Placement
		src.imp.UseImportedTemplate(out, tpl, r.X, r.Y, r.Width, r.Height)

		if out.Err() {
			return out.Error()
		}
		if p.placed != nil {
			p.placed(out.PageNo(), page)
		}
	}

	return out.Output(w)
}
