package pdf

// PageInfo describes one page of an inspected document
type PageInfo struct {
	Number int     `json:"number"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Info is the result of inspecting a document, enough for a client to
// validate a page selection before asking for a split.
type Info struct {
	Name       string     `json:"filename"`
	TotalPages int        `json:"total_pages"`
	Pages      []PageInfo `json:"pages"`
}

// Inspect decodes file and reports its page count and page sizes
func Inspect(p Provider, file File) (*Info, error) {
	doc, err := p.Load(file.Name, file.Data)
	if err != nil {
		return nil, err
	}
	return describe(doc), nil
}

func describe(doc *Document) *Info {
	info := &Info{
		Name:       doc.Name,
		TotalPages: doc.PageCount(),
		Pages:      make([]PageInfo, len(doc.Pages)),
	}
	for i, page := range doc.Pages {
		info.Pages[i] = PageInfo{Number: page.Number, Width: page.Width, Height: page.Height}
	}
	return info
}
