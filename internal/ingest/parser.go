package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/knowledge-engine/textgap/internal/fetcher"
)

// ErrUnsupportedFormat is returned for file extensions ParseFile cannot read.
var ErrUnsupportedFormat = errors.New("unsupported file type")

// Document is the extracted text of a local file.
type Document struct {
	Title string
	Path  string
	Text  string
}

// ParseFile reads plain text, HTML or PDF files. The format is chosen by
// extension; files without one are treated as plain text.
func ParseFile(path string) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var text string
	switch ext {
	case "", ".txt", ".md", ".text":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		text = string(raw)
	case ".html", ".htm":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		parsed, err := fetcher.ParseHTML(bytes.NewReader(raw), "")
		if err != nil {
			return nil, fmt.Errorf("parse html: %w", err)
		}
		text = parsed.Text
	case ".pdf":
		var err error
		text, err = parsePDF(path)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	return &Document{
		Title: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path:  path,
		Text:  text,
	}, nil
}

func parsePDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, pageErr := p.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}
