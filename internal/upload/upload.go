// Package upload publishes a finished report as a private GitHub gist or a
// pastebin paste.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// MaxContentSize is the largest report that is uploaded.
const MaxContentSize = 10 * 1024 * 1024

// UserAgent is sent with every request.
const UserAgent = "recap/2.0"

// DefaultTimeout bounds a single upload when the caller supplies no client.
const DefaultTimeout = 60 * time.Second

// ErrEmptyContent is returned for an empty report.
var ErrEmptyContent = errors.New("nothing to upload: report is empty")

// Uploader publishes content under filename and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, content []byte) (string, error)
}

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	Service string
	Status  int
	Body    string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s upload failed: HTTP %d", e.Service, e.Status)
	}
	return fmt.Sprintf("%s upload failed: HTTP %d: %s", e.Service, e.Status, body)
}

func checkContent(content []byte) error {
	if len(content) == 0 {
		return ErrEmptyContent
	}
	if len(content) > MaxContentSize {
		return fmt.Errorf("report is %d bytes, uploads are limited to %d bytes", len(content), MaxContentSize)
	}
	return nil
}

func httpClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: DefaultTimeout}
}

// do sends req and returns the response body of a 2xx answer.
func do(client *http.Client, service string, req *http.Request) ([]byte, error) {
	req.Header.Set("User-Agent", UserAgent)
	resp, err := httpClient(client).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", service, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", service, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Service: service, Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
