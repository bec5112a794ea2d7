package pdf

// File is a named raw document buffer handed over by the acquisition layer
type File struct {
	Name string
	Data []byte
}

// Document is a decoded source document. Pages are in original order.
type Document struct {
	Name  string
	Pages []SourcePage

	data []byte
}

// PageCount returns the number of pages in the document
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// SourcePage is one page of a source document with its intrinsic size.
type SourcePage struct {
	Number int     `json:"number"` // 1-based
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	doc *Document
}

// Size returns the intrinsic page size
func (p SourcePage) Size() Size {
	return Size{Width: p.Width, Height: p.Height}
}

// Document returns the document the page belongs to, if known
func (p SourcePage) Document() *Document {
	return p.doc
}

// NewDocument builds a Document from page sizes. It is what providers use to
// hand decoded documents to the engine; data is kept as the page content
// source for serialization.
func NewDocument(name string, data []byte, sizes []Size) *Document {
	doc := &Document{Name: name, data: data}
	doc.Pages = make([]SourcePage, len(sizes))
	for i, s := range sizes {
		doc.Pages[i] = SourcePage{
			Number: i + 1,
			Width:  s.Width,
			Height: s.Height,
			doc:    doc,
		}
	}
	return doc
}
