// Package pdf checks and reads in-memory PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Magic is the header every PDF file starts with.
const Magic = "%PDF-"

func init() {
	// Recipes run without a writable filesystem.
	api.DisableConfigDir()
}

// IsPDF reports whether data starts with the PDF header.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte(Magic))
}

// TooManyPagesError is returned when a document exceeds the page limit.
type TooManyPagesError struct {
	Pages int
	Max   int
}

func (e *TooManyPagesError) Error() string {
	return fmt.Sprintf("The PDF is too long, the maximum number of pages is %d", e.Max)
}

// Document is the text extracted from a PDF.
type Document struct {
	PageCount int
	Text      string
}

// Extractor validates a PDF, enforces the page limit and extracts its text.
// A MaxPages of zero disables the limit.
type Extractor struct {
	MaxPages int
}

// NewExtractor creates an Extractor with the given page limit.
func NewExtractor(maxPages int) *Extractor {
	return &Extractor{MaxPages: maxPages}
}

// PageCount validates data in relaxed mode and returns its page count.
func (e *Extractor) PageCount(data []byte) (int, error) {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	n, err := api.PageCount(bytes.NewReader(data), cfg)
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF: %w", err)
	}
	return n, nil
}

// Extract returns the concatenated text of every page in order. The page
// limit is checked before any text is extracted. Pages without text
// contribute nothing.
func (e *Extractor) Extract(data []byte) (*Document, error) {
	pageCount, err := e.PageCount(data)
	if err != nil {
		return nil, err
	}
	if e.MaxPages > 0 && pageCount > e.MaxPages {
		return nil, &TooManyPagesError{Pages: pageCount, Max: e.MaxPages}
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pages := make([]string, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", i+1, err)
		}
		if pageText == "" {
			slog.Debug("Page has no extractable text", "page", i+1)
		}
		pages = append(pages, pageText)
	}

	return &Document{PageCount: pageCount, Text: joinPages(pages)}, nil
}

// joinPages concatenates page texts in order, exactly as extracted.
func joinPages(pages []string) string {
	var text strings.Builder
	for _, p := range pages {
		text.WriteString(p)
	}
	return text.String()
}
