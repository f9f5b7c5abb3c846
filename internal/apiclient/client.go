package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/nguyentantai21042004/recap-mailer/internal/logger"
	"github.com/nguyentantai21042004/recap-mailer/internal/workflow"
)

const (
	summarizePath = "/generate-summary"
	dispatchPath  = "/send-email"

	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 1 << 20
)

// ErrMissingBaseURL is returned by New when no backend address is configured.
var ErrMissingBaseURL = errors.New("apiclient: base URL is required")

// Client calls the summarize and dispatch endpoints of the recap backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

// New creates a Client for baseURL. A zero timeout leaves requests unbounded.
func New(baseURL string, timeout time.Duration, log logger.Logger) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  log,
	}, nil
}

var _ workflow.Remote = (*Client)(nil)

type dispatchRequest struct {
	Summary    string `json:"summary"`
	Recipients string `json:"recipients"`
}

// Summarize uploads the transcript and prompt as a multipart form.
func (c *Client) Summarize(ctx context.Context, file *workflow.TranscriptFile, prompt string) (string, error) {
	body, contentType, err := encodeTranscript(file, prompt)
	if err != nil {
		return "", fmt.Errorf("encode transcript: %w", err)
	}

	res, err := c.post(ctx, summarizePath, contentType, body)
	if err != nil {
		return "", err
	}

	summary := gjson.GetBytes(res, "summary")
	if summary.Type != gjson.String {
		return "", &workflow.RemoteError{StatusCode: http.StatusOK, Err: errors.New("response has no summary field")}
	}
	return summary.String(), nil
}

// Dispatch posts the summary with the recipients joined into one string.
func (c *Client) Dispatch(ctx context.Context, summary string, recipients []string) (string, error) {
	payload, err := json.Marshal(dispatchRequest{
		Summary:    summary,
		Recipients: strings.Join(recipients, ", "),
	})
	if err != nil {
		return "", fmt.Errorf("encode dispatch request: %w", err)
	}

	res, err := c.post(ctx, dispatchPath, "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}

	message := gjson.GetBytes(res, "message")
	if message.Type != gjson.String {
		return "", &workflow.RemoteError{StatusCode: http.StatusOK, Err: errors.New("response has no message field")}
	}
	return message.String(), nil
}

// post sends the request and returns the body of a 2xx response.
// Every failure is reported as a *workflow.RemoteError.
func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, &workflow.RemoteError{Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "POST %s failed: %v", path, err)
		return nil, &workflow.RemoteError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &workflow.RemoteError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug(ctx, "POST %s -> %d in %s", path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &workflow.RemoteError{
			StatusCode: resp.StatusCode,
			Message:    gjson.GetBytes(data, "error").String(),
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}
	return data, nil
}

// encodeTranscript builds the form a browser would send: a "transcript" file part
// carrying the file's own type, followed by the "prompt" field.
func encodeTranscript(file *workflow.TranscriptFile, prompt string) (io.Reader, string, error) {
	if file == nil {
		return nil, "", workflow.ReasonNoFileSelected
	}

	content, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer content.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="transcript"; filename=%q`, file.Name))
	header.Set("Content-Type", file.MIMEType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, "", err
	}

	if err := mw.WriteField("prompt", prompt); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return &buf, mw.FormDataContentType(), nil
}
