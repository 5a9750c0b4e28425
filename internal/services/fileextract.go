package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const (
	maxExtractPages = 5
	maxExtractChars = 2000
)

// Document is a parsed document whose pages are numbered from 1.
type Document interface {
	NumPages() int
	PageItems(page int) ([]string, error)
}

type DocumentLoader interface {
	Load(data []byte) (Document, error)
}

// FileExtractService pulls a bounded text prefix out of PDF uploads for
// backends that cannot take attachments.
type FileExtractService struct {
	loader DocumentLoader
}

func NewFileExtractService() *FileExtractService {
	return &FileExtractService{loader: pdfLoader{}}
}

func NewFileExtractServiceWithLoader(loader DocumentLoader) *FileExtractService {
	return &FileExtractService{loader: loader}
}

// ExtractPrefix returns the text of the first five pages, items joined by a
// space and pages by a blank line, cut to 2000 characters.
func (s *FileExtractService) ExtractPrefix(ctx context.Context, data []byte) (text string, err error) {
	// The PDF parser panics on some corrupt inputs.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", extractionFailure(fmt.Errorf("%v", r), "document could not be parsed")
		}
	}()

	doc, err := s.loader.Load(data)
	if err != nil {
		return "", extractionFailure(err, "document could not be opened")
	}

	last := doc.NumPages()
	if last > maxExtractPages {
		last = maxExtractPages
	}

	pages := make([]string, 0, last)
	for i := 1; i <= last; i++ {
		if err := ctx.Err(); err != nil {
			return "", extractionFailure(err, "extraction cancelled")
		}
		items, err := doc.PageItems(i)
		if err != nil {
			log.Printf("extract: skipping unreadable page %d: %v", i, err)
			continue
		}
		pages = append(pages, joinItems(items))
	}

	text = truncateRunes(strings.Join(pages, "\n\n"), maxExtractChars)
	if strings.TrimSpace(text) == "" {
		return "", extractionFailure(nil, "no extractable text found in pdf")
	}
	return text, nil
}

func joinItems(items []string) string {
	kept := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			kept = append(kept, it)
		}
	}
	return strings.Join(kept, " ")
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

type pdfLoader struct{}

func (pdfLoader) Load(data []byte) (Document, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return pdfDocument{r: r}, nil
}

type pdfDocument struct {
	r *pdf.Reader
}

func (d pdfDocument) NumPages() int {
	return d.r.NumPage()
}

// PageItems returns every text run of the page as its own item. Rows only
// break on a text matrix change, so a row can hold several lines.
func (d pdfDocument) PageItems(i int) ([]string, error) {
	page := d.r.Page(i)
	if page.V.IsNull() {
		return nil, nil
	}
	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, err
	}
	var items []string
	for _, row := range rows {
		for _, t := range row.Content {
			items = append(items, t.S)
		}
	}
	return items, nil
}
