package domain

import (
	"path"
	"strings"
)

// MaxFileSize is the upload limit for resumes and job descriptions.
const MaxFileSize = 10 << 20

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatPPTX Format = "pptx"
	FormatXLSX Format = "xlsx"
	FormatTXT  Format = "txt"
)

// Document is the transient result of text extraction.
type Document struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Text     string `json:"text"`
	Format   Format `json:"-"`
}

// Extension returns the lower-cased extension without the dot.
func Extension(filename string) string {
	ext := path.Ext(strings.TrimSpace(filename))
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// FormatFromFilename resolves the extractor format from a file name.
func FormatFromFilename(filename string) (Format, error) {
	switch ext := Extension(filename); ext {
	case "pdf", "docx", "pptx", "xlsx", "txt":
		return Format(ext), nil
	case "doc":
		return "", Reason(ErrUnsupportedFormat, "DOC files are not supported. Please convert to DOCX format.")
	default:
		if ext == "" {
			ext = "unknown"
		}
		return "", Reason(ErrUnsupportedFormat,
			"Unsupported file format: %s. Supported formats: PDF, DOCX, PPTX, XLSX, TXT", ext)
	}
}

// ValidateUpload checks the size limit first and then the format.
func ValidateUpload(filename string, size int64) (Format, error) {
	if size > MaxFileSize {
		return "", ErrFileTooLarge
	}
	return FormatFromFilename(filename)
}
