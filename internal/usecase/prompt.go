package usecase

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/mockmate/internal/dto"
)

func buildQuestionPrompt(req dto.GenerateInterviewRequest) string {
	return fmt.Sprintf(`Prepare questions for a job interview.
The job role is %s.
The job experience level is %s.
The tech stack used in the job is: %s.
The focus between behavioural and technical questions should lean towards: %s.
The amount of questions required is: %d.
Please return ONLY a valid JSON array of strings, nothing else.
The questions are going to be read by a voice assistant so do not use "/" or "*" or any other special characters which might break the voice assistant.
Also escape any quotes within questions.
Return the questions in this exact format (no extra text):
["Question 1", "Question 2", "Question 3"]

Thank you! <3
`, req.Role, req.Level, req.Techstack, req.Type, int(req.Amount))
}

// formatTranscript renders one "- role: content" line per utterance.
func formatTranscript(transcript []dto.TranscriptLine) string {
	var b strings.Builder
	for _, line := range transcript {
		fmt.Fprintf(&b, "- %s: %s\n", line.Role, line.Content)
	}
	return b.String()
}

const feedbackSystemPrompt = "You are a professional interviewer. You MUST always respond with a valid JSON object matching the requested schema. Do not include markdown code blocks or additional text."

func buildFeedbackPrompt(transcript []dto.TranscriptLine) string {
	return fmt.Sprintf(`Analyze this mock interview transcript and return a JSON object that matches this EXACT structure:
{
  "totalScore": number (0-100),
  "categoryScores": [
    { "name": "Communication Skills", "score": number, "comment": string },
    { "name": "Technical Knowledge", "score": number, "comment": string },
    { "name": "Problem Solving", "score": number, "comment": string },
    { "name": "Cultural Fit", "score": number, "comment": string },
    { "name": "Confidence and Clarity", "score": number, "comment": string }
  ],
  "strengths": string[],
  "areasForImprovement": string[],
  "finalAssessment": string
}

Transcript:
%s
Evaluation Criteria:
- Be thorough and do not be lenient.
- Provide specific examples from the transcript in the comments.
`, formatTranscript(transcript))
}
