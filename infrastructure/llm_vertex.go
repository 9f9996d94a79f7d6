package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	vertex "cloud.google.com/go/vertexai/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// VertexCompleter calls Gemini through Vertex AI with application default
// credentials.
type VertexCompleter struct {
	client  *vertex.Client
	model   *vertex.GenerativeModel
	timeout time.Duration
}

func NewVertexCompleter(ctx context.Context, project, location, model string, temperature float32, timeout time.Duration) (*VertexCompleter, error) {
	client, err := vertex.NewClient(ctx, project, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex ai client: %w", err)
	}
	m := client.GenerativeModel(model)
	m.SetTemperature(temperature)
	return &VertexCompleter{client: client, model: m, timeout: timeout}, nil
}

func (v *VertexCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	resp, err := v.model.GenerateContent(ctx, vertex.Text(prompt))
	if err != nil {
		if st, ok := status.FromError(err); ok {
			return "", &ProviderError{Provider: "vertexai", StatusCode: httpStatusFromCode(st.Code()), Err: err}
		}
		return "", err
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(vertex.Text); ok {
				sb.WriteString(string(t))
			}
		}
		break
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("vertexai: empty response")
	}
	return sb.String(), nil
}

func (v *VertexCompleter) Close() error { return v.client.Close() }

func httpStatusFromCode(c codes.Code) int {
	switch c {
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
