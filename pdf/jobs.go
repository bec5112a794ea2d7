package pdf

import (
	"bytes"
	"context"

	"golang.org/x/sync/errgroup"
)

// MergeFiles decodes files, lays their pages out on canvas and returns the
// encoded result. Any failure discards everything produced so far.
func MergeFiles(ctx context.Context, p Provider, files []File, canvas Size) ([]byte, error) {
	if len(files) == 0 {
		return nil, ErrNoDocuments
	}
	if len(files) > MaxMergeDocuments {
		return nil, ErrTooManyDocuments
	}

	docs, err := loadAll(ctx, p, files)
	if err != nil {
		return nil, err
	}

	assembly, err := Merge(docs, canvas)
	if err != nil {
		return nil, err
	}
	return encode(p, assembly)
}

// SplitFile decodes file and returns a document holding only the pages in sel
func SplitFile(ctx context.Context, p Provider, file File, sel PageSelection) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := p.Load(file.Name, file.Data)
	if err != nil {
		return nil, err
	}
	return SplitDocument(p, doc, sel)
}

// SplitDocument is SplitFile for a document that is already decoded
func SplitDocument(p Provider, doc *Document, sel PageSelection) ([]byte, error) {
	assembly, err := Split(doc, sel)
	if err != nil {
		return nil, err
	}
	return encode(p, assembly)
}

// loadAll decodes files concurrently and returns the documents in input order
func loadAll(ctx context.Context, p Provider, files []File) ([]*Document, error) {
	docs := make([]*Document, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := p.Load(file.Name, file.Data)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func encode(p Provider, a *Assembly) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Serialize(&buf, a); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
