package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/recap-mailer/internal/apiclient"
	"github.com/nguyentantai21042004/recap-mailer/internal/config"
	"github.com/nguyentantai21042004/recap-mailer/internal/logger"
	"github.com/nguyentantai21042004/recap-mailer/internal/mailer"
	"github.com/nguyentantai21042004/recap-mailer/internal/workflow"
)

type stubSummarizer struct {
	summary      string
	err          error
	transcript   string
	instructions string
}

func (s *stubSummarizer) Summarize(ctx context.Context, transcript, instructions string) (string, error) {
	s.transcript, s.instructions = transcript, instructions
	return s.summary, s.err
}

type stubMailer struct {
	err  error
	sent []mailer.Message
}

func (m *stubMailer) Send(ctx context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newTestServer(sum *stubSummarizer, mail *stubMailer) http.Handler {
	gin.SetMode(gin.TestMode)
	cfg := config.ServerConfig{AllowedOrigin: "*", RequestTimeout: 5 * time.Second}
	return New(cfg, sum, mail, logger.Discard()).Routes()
}

func multipartBody(t *testing.T, name, contentType, content, prompt string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if name != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="transcript"; filename="`+name+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, _ = part.Write([]byte(content))
	}
	require.NoError(t, mw.WriteField("prompt", prompt))
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestGenerateSummary(t *testing.T) {
	sum := &stubSummarizer{summary: "Recap"}
	router := newTestServer(sum, &stubMailer{})

	body, ct := multipartBody(t, "sync.txt", "text/plain", "Alice: hi", "Bullets")
	req := httptest.NewRequest(http.MethodPost, "/generate-summary", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Recap", decodeBody(t, rec)["summary"])
	assert.Equal(t, "Alice: hi", sum.transcript)
	assert.Equal(t, "Bullets", sum.instructions)
}

func TestGenerateSummaryAcceptsCharsetParam(t *testing.T) {
	sum := &stubSummarizer{summary: "Recap"}
	router := newTestServer(sum, &stubMailer{})

	body, ct := multipartBody(t, "sync.txt", "text/plain; charset=utf-8", "Alice: hi", "Bullets")
	req := httptest.NewRequest(http.MethodPost, "/generate-summary", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGenerateSummaryValidation(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		contentType string
		prompt      string
		wantError   string
	}{
		{"missing file", "", "", "Bullets", "No file selected"},
		{"wrong type", "sync.pdf", "application/pdf", "Bullets", "Only .txt files allowed"},
		{"empty prompt", "sync.txt", "text/plain", "  ", "Prompt cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := &stubSummarizer{summary: "Recap"}
			router := newTestServer(sum, &stubMailer{})

			body, ct := multipartBody(t, tt.file, tt.contentType, "content", tt.prompt)
			req := httptest.NewRequest(http.MethodPost, "/generate-summary", body)
			req.Header.Set("Content-Type", ct)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantError, decodeBody(t, rec)["error"])
			assert.Empty(t, sum.instructions, "summarizer must not be called")
		})
	}
}

func TestGenerateSummaryTooLarge(t *testing.T) {
	router := newTestServer(&stubSummarizer{summary: "Recap"}, &stubMailer{})

	big := strings.Repeat("a", workflow.MaxTranscriptSize+1)
	body, ct := multipartBody(t, "sync.txt", "text/plain", big, "Bullets")
	req := httptest.NewRequest(http.MethodPost, "/generate-summary", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "File too large (max 5MB)", decodeBody(t, rec)["error"])
}

func TestGenerateSummaryUpstreamFailure(t *testing.T) {
	router := newTestServer(&stubSummarizer{err: errors.New("quota exceeded")}, &stubMailer{})

	body, ct := multipartBody(t, "sync.txt", "text/plain", "x", "Bullets")
	req := httptest.NewRequest(http.MethodPost, "/generate-summary", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "Error generating summary: quota exceeded", decodeBody(t, rec)["error"])
}

func TestSendEmail(t *testing.T) {
	mail := &stubMailer{}
	router := newTestServer(&stubSummarizer{}, mail)

	req := httptest.NewRequest(http.MethodPost, "/send-email", strings.NewReader(`{"summary":"Recap","recipients":"a@b.com, c@d.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Summary sent to 2 recipient(s)", decodeBody(t, rec)["message"])
	require.Len(t, mail.sent, 1)
	assert.Equal(t, []string{"a@b.com", "c@d.com"}, mail.sent[0].Recipients)
}

func TestSendEmailValidation(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{"malformed body", `{"summary":`, "Invalid request body"},
		{"empty summary", `{"summary":" ","recipients":"a@b.com"}`, "Summary cannot be empty"},
		{"bad recipients", `{"summary":"Recap","recipients":"a@b.com, nope"}`, "Invalid email format"},
		{"no recipients", `{"summary":"Recap","recipients":""}`, "Invalid email format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mail := &stubMailer{}
			router := newTestServer(&stubSummarizer{}, mail)

			req := httptest.NewRequest(http.MethodPost, "/send-email", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantError, decodeBody(t, rec)["error"])
			assert.Empty(t, mail.sent)
		})
	}
}

func TestSendEmailDeliveryFailure(t *testing.T) {
	router := newTestServer(&stubSummarizer{}, &stubMailer{err: errors.New("connection refused")})

	req := httptest.NewRequest(http.MethodPost, "/send-email", strings.NewReader(`{"summary":"Recap","recipients":"a@b.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "Error sending email")
}

func TestHealthAndCORS(t *testing.T) {
	router := newTestServer(&stubSummarizer{}, &stubMailer{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/send-email", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestWorkflowAgainstServer(t *testing.T) {
	mail := &stubMailer{}
	srv := httptest.NewServer(newTestServer(&stubSummarizer{summary: "- ship Friday"}, mail))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, 0, nil)
	require.NoError(t, err)

	ctl := workflow.NewController(client, nil)
	ctl.SetFile(workflow.NewTranscriptFile("sync.txt", "text/plain", []byte("Alice: ship Friday")))
	ctl.SetPrompt("Bullets")
	require.NoError(t, ctl.Generate(context.Background()))
	assert.Equal(t, "- ship Friday", ctl.State().Summary)

	ctl.SetSummary("- ship Friday\n- edited by hand")
	ctl.SetRecipients("a@b.com, c@d.com")
	require.NoError(t, ctl.Send(context.Background()))
	assert.Equal(t, workflow.Status{Tone: workflow.ToneSuccess, Text: "Summary sent to 2 recipient(s)"}, ctl.State().Status)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "- ship Friday\n- edited by hand", mail.sent[0].Summary)

	ctl.SetRecipients("nope")
	assert.Equal(t, workflow.ReasonInvalidEmailFormat, ctl.Send(context.Background()))
}
