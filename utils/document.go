package utils

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ExtractResumeText extracts plain text from an uploaded resume based on its
// file extension. Unknown extensions are treated as plain text.
func ExtractResumeText(data []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".pdf":
		return extractPDFText(data)
	case ".docx":
		return extractDocxText(data)
	case ".doc":
		return "", fmt.Errorf("legacy .doc format is not supported, convert to .docx or .pdf")
	default:
		return string(data), nil
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		textBuilder.WriteString(text)
	}

	extracted := strings.TrimSpace(textBuilder.String())
	if extracted == "" {
		return "", fmt.Errorf("pdf contains no extractable text")
	}
	return extracted, nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}

// IsSupportedFormat checks if the file format is supported
func IsSupportedFormat(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md", ".pdf", ".docx", "":
		return true
	default:
		return false
	}
}
