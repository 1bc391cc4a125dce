// Package xhttp provides helpers for HTTP clients.
package xhttp

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxBodySize is the maximum number of bytes read from an error response body.
const maxBodySize = 64 << 10

// ClientError is an error returned for an HTTP response with an unexpected status code.
type ClientError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

// NewClientError creates a new ClientError from an HTTP response.
// The response body is consumed and closed.
func NewClientError(resp *http.Response) *ClientError {
	e := &ClientError{
		StatusCode: resp.StatusCode,
	}

	if req := resp.Request; req != nil {
		e.Method = req.Method
		if req.URL != nil {
			e.Path = req.URL.Path
		}
	}

	if resp.Body != nil {
		defer resp.Body.Close()

		b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err == nil {
			e.Message = parseMessage(b)
		}
	}

	return e
}

// parseMessage extracts the message field of a JSON error body, falling back to the raw body.
func parseMessage(b []byte) string {
	body := struct {
		Message string `json:"message"`
	}{}

	if err := json.Unmarshal(b, &body); err == nil && body.Message != "" {
		return body.Message
	}

	return strings.TrimSpace(string(b))
}

func (e *ClientError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}

	if e.Method == "" {
		return fmt.Sprintf("%d: %s", e.StatusCode, msg)
	}

	return fmt.Sprintf("%s %s %d: %s", e.Method, e.Path, e.StatusCode, msg)
}
