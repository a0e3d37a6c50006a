// Package ocr implements the HTTP client for the external text recognition
// service. The service is flaky by contract: 429 means rate-limited and
// retryable, any other non-2xx is terminal, and transport failures are
// retried alongside rate limits with linear backoff.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/notescan/notescan-server/internal/apierrors"
	"github.com/notescan/notescan-server/internal/logger"
	"github.com/notescan/notescan-server/internal/model"
)

const (
	maxAttempts    = 3
	defaultTimeout = 30 * time.Second
	backoffStep    = time.Second
)

// outcome classifies a single recognition attempt.
type outcome int

const (
	outcomeOK outcome = iota
	outcomeRateLimited
	outcomeTransportError
	outcomeTerminal
)

// extractResponse is the success body of the recognition service. A missing
// text field yields an empty string, not an error.
type extractResponse struct {
	Text string `json:"text"`
}

var _ model.TextExtractor = (*Client)(nil)

// Client calls the recognition service over HTTP multipart requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger

	// backoffStep is overridable in tests to keep retries fast.
	backoffStep time.Duration
}

// NewClient creates a recognition client for the given base URL.
func NewClient(baseURL string, logger *logger.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: defaultTimeout},
		logger:      logger,
		backoffStep: backoffStep,
	}
}

// ExtractText sends the buffered image to the recognition service and
// returns the recognized text. Up to three attempts are made in total:
// rate limits and transport errors wait attempt*step and retry, any other
// upstream error fails immediately without retrying.
func (c *Client) ExtractText(ctx context.Context, filename string, data []byte) (string, error) {
	var last outcome

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		// The multipart body is consumed by each request; data is the
		// replayable copy it gets rebuilt from.
		body, contentType, err := c.buildRequestBody(filename, data)
		if err != nil {
			return "", fmt.Errorf("failed to build multipart body: %w", err)
		}

		text, result := c.attempt(ctx, body, contentType)
		switch result {
		case outcomeOK:
			return text, nil
		case outcomeTerminal:
			return "", apierrors.NewErrOCRFailed()
		}
		last = result

		if attempt < maxAttempts {
			delay := time.Duration(attempt) * c.backoffStep
			c.logger.Info("OCR client: retrying after backoff",
				"attempt", attempt,
				"delay_ms", delay.Milliseconds())
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}

	if last == outcomeRateLimited {
		return "", apierrors.NewErrOCRBusy()
	}
	return "", apierrors.NewErrOCRUnavailable()
}

func (c *Client) attempt(ctx context.Context, body *bytes.Buffer, contentType string) (string, outcome) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract-text", body)
	if err != nil {
		return "", outcomeTerminal
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Info("OCR client: request failed",
			"error", err.Error())
		return "", outcomeTransportError
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		io.Copy(io.Discard, resp.Body)
		return "", outcomeRateLimited
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		io.Copy(io.Discard, resp.Body)
		c.logger.Error("OCR client: upstream returned error status",
			"status", resp.StatusCode)
		return "", outcomeTerminal
	}

	var parsed extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", outcomeTerminal
	}

	return parsed.Text, outcomeOK
}

func (c *Client) buildRequestBody(filename string, data []byte) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}
