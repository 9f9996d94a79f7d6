package interfaces

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"resume-screener/domain"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{domain.ErrValidation, http.StatusBadRequest},
	{domain.ErrUnsupportedFormat, http.StatusBadRequest},
	{domain.ErrFileTooLarge, http.StatusBadRequest},
	{domain.ErrNoReadableText, http.StatusBadRequest},
	{domain.ErrFetchFailed, http.StatusBadRequest},
	{domain.ErrEmptyResume, http.StatusBadRequest},
	{domain.ErrEmptyJobDescription, http.StatusBadRequest},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrUnauthorized, http.StatusUnauthorized},
	{domain.ErrLLMAuth, http.StatusUnauthorized},
	{domain.ErrLLMCredentialMissing, http.StatusUnauthorized},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrAlreadyAnalyzed, http.StatusConflict},
	{domain.ErrLLMRateLimited, http.StatusTooManyRequests},
	{domain.ErrLLMTimeout, http.StatusGatewayTimeout},
}

func statusFor(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// respondError writes {"error": msg} with the mapped status. Server side
// failures are logged with their full cause.
func respondError(c *gin.Context, log *logrus.Logger, err error, extra gin.H) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}

	body := gin.H{"error": err.Error()}
	for k, v := range extra {
		body[k] = v
	}
	c.AbortWithStatusJSON(status, body)
}
