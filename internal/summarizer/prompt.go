package summarizer

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an assistant that summarizes meeting transcripts.
Follow the user's instructions for format and focus.
Use only information present in the transcript; do not invent attendees, dates or decisions.
Write in the language of the transcript unless the instructions say otherwise.
Use markdown (headings, bullet points, bold for key terms) when it helps readability.`

const userPromptTemplate = `Instructions:
%s

Meeting transcript:
---
%s
---`

// buildUserPrompt places the instructions ahead of the transcript.
func buildUserPrompt(transcript, instructions string) string {
	return fmt.Sprintf(userPromptTemplate, strings.TrimSpace(instructions), strings.TrimSpace(transcript))
}
