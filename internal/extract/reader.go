package extract

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/tundex/resume-parser/constants"
	"github.com/tundex/resume-parser/internal/common"
)

// Reader converts a raw PDF or DOCX byte stream into a single plain-text
// string: PDF pages or DOCX paragraphs in original top-to-bottom order,
// joined by newlines. No whitespace normalization beyond what each format's
// own extraction yields.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// Read extracts the document text. It fails with ErrUnsupportedFormat for
// formats outside pdf/docx and ErrCorruptDocument when the underlying
// parser cannot read the content (encrypted PDF, malformed DOCX).
func (r *Reader) Read(doc RawDocument) (string, error) {
	switch doc.Format {
	case constants.PDF:
		return readPDF(doc.Data)
	case constants.DOCX:
		return readDOCX(doc.Data)
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, doc.Format)
	}
}

func readPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrCorruptDocument, err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Image-only or otherwise unextractable page: contributes an
			// empty string, not a failure. No OCR fallback.
			pages = append(pages, "")
			continue
		}
		pages = append(pages, strings.Trim(text, "\n"))
	}
	return strings.Join(pages, "\n"), nil
}

var docxTags = regexp.MustCompile(`<[^>]+>`)

var docxEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

func readDOCX(data []byte) (string, error) {
	d, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrCorruptDocument, err)
	}
	defer d.Close()

	// One paragraph per line, tabs preserved, remaining markup stripped.
	content := d.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = strings.ReplaceAll(content, "<w:tab/>", "\t")
	content = docxTags.ReplaceAllString(content, "")
	content = docxEntities.Replace(content)
	return strings.TrimRight(content, "\n"), nil
}
