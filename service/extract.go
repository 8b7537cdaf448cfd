package service

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// TextExtractor pulls native text out of a PDF, one page at a time.
type TextExtractor interface {
	PageCount(path string) (int, error)
	ExtractPage(path string, page int) (string, error)
}

type pdfExtractor struct{}

// NewPDFExtractor returns the pure-Go extractor used in production.
func NewPDFExtractor() TextExtractor {
	return &pdfExtractor{}
}

func (e *pdfExtractor) PageCount(path string) (int, error) {
	f, reader, err := openReader(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return reader.NumPage(), nil
}

func (e *pdfExtractor) ExtractPage(path string, page int) (string, error) {
	f, reader, err := openReader(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if page < 1 || page > reader.NumPage() {
		return "", fmt.Errorf("page %d out of range", page)
	}
	p := reader.Page(page)
	text, err := p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from page %d: %w", page, err)
	}
	return text, nil
}

func openReader(path string) (*os.File, *pdf.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	return f, reader, nil
}
