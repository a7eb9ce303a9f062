// Package doctext extracts the raw text lines of a statement document.
// PDF decoding itself is delegated to the pdf library; everything downstream
// of this package works on plain lines of text.
package doctext

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/paisatrail/paisatrail/internal/common"
)

// Extractor produces the ordered line sequence of a statement document.
type Extractor interface {
	// Lines returns the document's text split into lines, in page order.
	// Unreadable or undecodable documents yield common.ErrDocumentUnreadable.
	Lines(ctx context.Context, path string) ([]string, error)
}

// FileExtractor reads statement documents from the local filesystem.
// PDF documents are decoded page by page; anything else is treated as
// plain text. The zero value is ready to use.
type FileExtractor struct{}

// NewFileExtractor creates a new file-based text extractor.
func NewFileExtractor() *FileExtractor {
	return &FileExtractor{}
}

// Lines implements Extractor.
func (e *FileExtractor) Lines(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var text string
	var err error
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err = readPDFText(path)
	} else {
		text, err = readPlainText(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrDocumentUnreadable, path, err)
	}

	return strings.Split(text, "\n"), nil
}

func readPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}
		buf.WriteString(text)
		buf.WriteString("\n")
	}
	return buf.String(), nil
}

func readPlainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}
