package infrastructure

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"resume-screener/domain"
)

// objectSource lets the extractor read files from our own buckets directly
// instead of going through their public URL.
type objectSource interface {
	Locate(rawURL string) (bucket, key string, ok bool)
	Download(ctx context.Context, bucket, key string) ([]byte, error)
}

// Extractor turns uploaded documents into plain text.
type Extractor struct {
	HTTP    *http.Client
	Objects objectSource
	Log     *logrus.Logger
}

func NewExtractor(httpClient *http.Client, objects objectSource, log *logrus.Logger) *Extractor {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Extractor{HTTP: httpClient, Objects: objects, Log: log}
}

// Extract validates size and format, then extracts trimmed text.
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (*domain.Document, error) {
	name := filename
	if domain.Extension(name) == "" && len(data) > 0 {
		name += mimetype.Detect(data).Extension()
	}

	format, err := domain.ValidateUpload(name, int64(len(data)))
	if err != nil {
		return nil, err
	}

	var text string
	switch format {
	case domain.FormatPDF:
		text, err = e.extractPDF(data)
	case domain.FormatDOCX:
		text, err = extractDOCX(data)
	case domain.FormatPPTX:
		text, err = extractPPTX(data)
	case domain.FormatXLSX:
		text, err = extractXLSX(data)
	case domain.FormatTXT:
		text = extractTXT(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s text from %s: %w", format, filename, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrNoReadableText
	}

	e.Log.WithFields(logrus.Fields{
		"filename": filename,
		"format":   format,
		"chars":    len(text),
	}).Debug("extracted document text")

	return &domain.Document{
		Filename: filename,
		Size:     int64(len(data)),
		Text:     text,
		Format:   format,
	}, nil
}

// ExtractFromURL downloads an http(s) document and extracts it. The
// filename is the last path segment, or "document" when there is none.
func (e *Extractor) ExtractFromURL(ctx context.Context, rawURL string) (*domain.Document, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, domain.Reason(domain.ErrValidation, "Invalid URL format")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, domain.Reason(domain.ErrValidation, "Only HTTP and HTTPS URLs are supported")
	}

	data, err := e.fetch(ctx, u.String())
	if err != nil {
		return nil, err
	}
	return e.Extract(ctx, FilenameFromURL(u), data)
}

func FilenameFromURL(u *url.URL) string {
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "document"
	}
	return name
}

func (e *Extractor) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if e.Objects != nil {
		if bucket, key, ok := e.Objects.Locate(rawURL); ok {
			data, err := e.Objects.Download(ctx, bucket, key)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
			}
			if len(data) > domain.MaxFileSize {
				return nil, domain.ErrFileTooLarge
			}
			return data, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, domain.Reason(domain.ErrValidation, "Invalid URL format")
	}
	resp, err := e.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.Reason(domain.ErrFetchFailed, "Failed to fetch file: %d %s",
			resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	if resp.ContentLength > domain.MaxFileSize {
		return nil, domain.ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, domain.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	if len(data) > domain.MaxFileSize {
		return nil, domain.ErrFileTooLarge
	}
	return data, nil
}
