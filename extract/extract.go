package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tmc/langchaingo/documentloaders"
)

// Pages extracts the textual pages of a file, dispatching on extension.
//
// PDF files yield one page per PDF page. Plain-text formats (.txt, .md)
// yield a single page holding the whole file. Unsupported extensions
// yield no pages and no error; the caller decides whether that matters.
func Pages(ctx context.Context, filePath string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		return pdfPages(ctx, filePath)
	case ".txt", ".md":
		return textPages(ctx, filePath)
	default:
		slog.Default().With("component", "extract").
			Warn("unsupported file extension", "path", filePath)
		return nil, nil
	}
}

// pdfPages loads a PDF and returns the text of each page.
func pdfPages(ctx context.Context, filePath string) ([]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat pdf: %w", err)
	}

	docs, err := documentloaders.NewPDF(f, info.Size()).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading pdf: %w", err)
	}

	pages := make([]string, 0, len(docs))
	for _, doc := range docs {
		pages = append(pages, doc.PageContent)
	}
	return pages, nil
}

// textPages loads a plain-text file as a single page.
func textPages(ctx context.Context, filePath string) ([]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening text file: %w", err)
	}
	defer f.Close()

	docs, err := documentloaders.NewText(f).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading text file: %w", err)
	}

	pages := make([]string, 0, len(docs))
	for _, doc := range docs {
		pages = append(pages, doc.PageContent)
	}
	return pages, nil
}
