package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers match them with errors.Is; the HTTP layer maps
// each one to a status code.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyAnalyzed    = errors.New("application has already been analyzed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("Invalid credentials")

	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrFileTooLarge      = errors.New("File is too large. Maximum size is 10MB.")
	ErrNoReadableText    = errors.New("No readable text found in the file.")
	ErrFetchFailed       = errors.New("failed to fetch file")

	ErrEmptyResume          = errors.New("Resume text is required and cannot be empty")
	ErrEmptyJobDescription  = errors.New("Job description text is required and cannot be empty")
	ErrLLMCredentialMissing = errors.New("LLM API key is not configured")
	ErrLLMAuth              = errors.New("LLM API authentication failed. Please check your API key.")
	ErrLLMRateLimited       = errors.New("LLM API rate limit exceeded. Please try again in a few minutes.")
	ErrLLMTimeout           = errors.New("LLM API request timed out. Please try again.")
	ErrInvalidLLMResponse   = errors.New("invalid analysis response")
	ErrAnalysisFailed       = errors.New("analysis failed")
)

type reasonError struct {
	kind error
	msg  string
}

func (e *reasonError) Error() string { return e.msg }
func (e *reasonError) Unwrap() error { return e.kind }

// Reason builds an error whose message is shown to the user verbatim while
// still matching kind under errors.Is.
func Reason(kind error, format string, args ...any) error {
	return &reasonError{kind: kind, msg: fmt.Sprintf(format, args...)}
}
