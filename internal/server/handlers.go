package server

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/recap-mailer/internal/mailer"
	"github.com/nguyentantai21042004/recap-mailer/internal/workflow"
)

type sendEmailRequest struct {
	Summary    string `json:"summary"`
	Recipients string `json:"recipients"`
}

func (s *Server) handleGenerateSummary(c *gin.Context) {
	hdr, err := c.FormFile("transcript")
	if err != nil {
		respondError(c, http.StatusBadRequest, workflow.ReasonNoFileSelected.Error())
		return
	}

	file := &workflow.TranscriptFile{
		Name:     hdr.Filename,
		MIMEType: partMediaType(hdr.Header.Get("Content-Type")),
		Size:     hdr.Size,
	}
	if err := workflow.ValidateFile(file); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	prompt := c.PostForm("prompt")
	if strings.TrimSpace(prompt) == "" {
		respondError(c, http.StatusBadRequest, workflow.ReasonEmptyPrompt.Error())
		return
	}

	f, err := hdr.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Could not read transcript")
		return
	}
	defer f.Close()

	transcript, err := io.ReadAll(io.LimitReader(f, workflow.MaxTranscriptSize+1))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Could not read transcript")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.RequestTimeout)
	defer cancel()

	summary, err := s.summarizer.Summarize(ctx, string(transcript), prompt)
	if err != nil {
		s.logger.Error(ctx, "Summarize %s failed: %v", hdr.Filename, err)
		respondError(c, http.StatusBadGateway, "Error generating summary: "+err.Error())
		return
	}

	s.logger.Info(ctx, "Summarized %s (%d bytes -> %d chars)", hdr.Filename, len(transcript), len(summary))
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (s *Server) handleSendEmail(c *gin.Context) {
	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Summary) == "" {
		respondError(c, http.StatusBadRequest, workflow.ReasonEmptySummary.Error())
		return
	}
	if err := workflow.ValidateEmails(req.Recipients); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	recipients := workflow.ParseRecipients(req.Recipients)

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.RequestTimeout)
	defer cancel()

	if err := s.mailer.Send(ctx, mailer.Message{Summary: req.Summary, Recipients: recipients}); err != nil {
		s.logger.Error(ctx, "Send email failed: %v", err)
		respondError(c, http.StatusBadGateway, "Error sending email: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Summary sent to %d recipient(s)", len(recipients))})
}

// partMediaType drops parameters such as charset from an upload's Content-Type.
func partMediaType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return contentType
	}
	return mediaType
}

func respondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
