// Package extract pulls plain text out of book input files. Plain text
// and Markdown pass through (with encoding repair), EPUB content documents
// are flattened to text, and PDF pages are extracted through their text
// layer.
package extract

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
)

// Extract reads the file at path and returns its plain text.
// Supported formats: .txt, .md, .epub, .pdf.
func Extract(path string) (string, error) {
	var (
		text string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		text, err = extractPlain(path)
	case ".epub":
		text, err = extractEPUB(path)
	case ".pdf":
		text, err = extractPDF(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyInput, path)
	}
	return text, nil
}

// extractPlain reads a text file, repairing legacy single-byte encodings
// when the content is not valid UTF-8.
func extractPlain(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- input path comes from a user argument
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	// Try Latin-1 first, then Windows-1252. Both always decode; prefer
	// the stricter one.
	for _, cm := range []*charmap.Charmap{charmap.ISO8859_1, charmap.Windows1252} {
		if decoded, err := cm.NewDecoder().Bytes(data); err == nil {
			return string(decoded), nil
		}
	}
	return "", fmt.Errorf("%w: undecodable text encoding", ErrUnreadable)
}

// extractEPUB flattens all content documents of an EPUB archive. Content
// files are visited in path order, which matches spine order for the
// common numbered-chapter layout.
func extractEPUB(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer func() { _ = zr.Close() }()

	var names []string
	byName := make(map[string]*zip.File)
	for _, f := range zr.File {
		switch strings.ToLower(filepath.Ext(f.Name)) {
		case ".xhtml", ".html", ".htm":
			names = append(names, f.Name)
			byName[f.Name] = f
		}
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		text, err := htmlFileText(byName[name])
		if err != nil {
			return "", err
		}
		if text != "" {
			sb.WriteString(text)
			sb.WriteString("\n\n")
		}
	}
	return sb.String(), nil
}

// htmlFileText extracts text from one HTML content document, with block
// elements separated by blank lines so paragraph structure survives.
func htmlFileText(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnreadable, f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	doc, err := html.Parse(rc)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnreadable, f.Name, err)
	}

	var sb strings.Builder
	walkHTML(doc, &sb)
	return strings.TrimSpace(sb.String()), nil
}

// blockElements are HTML elements that end a paragraph.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

func walkHTML(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "head") {
		return
	}
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			sb.WriteString(t)
			sb.WriteString(" ")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkHTML(c, sb)
	}
	if n.Type == html.ElementNode && blockElements[n.Data] {
		sb.WriteString("\n\n")
	}
}

// extractPDF reads the text layer of a PDF. Scanned PDFs without a text
// layer come back empty and surface as ErrEmptyInput.
func extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer func() { _ = f.Close() }()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return string(data), nil
}
