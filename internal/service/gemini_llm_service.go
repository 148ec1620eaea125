package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"github.com/vhoang/skillforge/config"
	"github.com/vhoang/skillforge/internal/engine"
	"github.com/vhoang/skillforge/internal/model"
	"google.golang.org/api/option"
)

// InterviewAssessment is what the model is asked to return, verbatim JSON.
type InterviewAssessment struct {
	Score    float64          `json:"score"`
	Feedback model.Feedback   `json:"ai_feedback"`
	Review   model.ReviewList `json:"detailed_review"`
}

// GeminiLLMService is the model-assisted half of the engine: narrative
// interview assessment and per-question hints. It also satisfies
// engine.HintProvider.
type GeminiLLMService interface {
	AssessInterview(ctx context.Context, sub engine.Submission) (*InterviewAssessment, error)
	Hint(ctx context.Context, question model.Question, draft string) (string, error)
}

type geminiLLMService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewGeminiLLMService(cfg *config.Config) (GeminiLLMService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiLLMService will be non-functional.")
		return &geminiLLMService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	m := client.GenerativeModel("gemini-1.5-flash")
	return &geminiLLMService{client: m, cfg: cfg}, nil
}

// AssessInterview sends the whole submission to the model and parses the
// strict-JSON report back. Any failure here is a grading failure; the caller
// decides what that means for the session.
func (s *geminiLLMService) AssessInterview(ctx context.Context, sub engine.Submission) (*InterviewAssessment, error) {
	if s.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}

	prompt := buildAssessmentPrompt(sub)
	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Str("sessionID", sub.SessionID).Msg("Gemini API error during interview assessment")
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	raw, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	assessment, err := parseAssessment(raw)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse assessment from Gemini response")
		return nil, err
	}
	return assessment, nil
}

// Hint asks for a short nudge toward the expected discussion points without
// giving the answer away.
func (s *geminiLLMService) Hint(ctx context.Context, question model.Question, draft string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}

	var b strings.Builder
	b.WriteString("You are an interview coach. The candidate is working on this question:\n\n")
	b.WriteString(question.Prompt)
	b.WriteString("\n\n")
	if len(question.ExpectedPoints) > 0 {
		b.WriteString("A strong answer touches on: ")
		b.WriteString(strings.Join(question.ExpectedPoints, ", "))
		b.WriteString(".\n\n")
	}
	if strings.TrimSpace(draft) != "" {
		b.WriteString("Their draft so far:\n---\n")
		b.WriteString(draft)
		b.WriteString("\n---\n\n")
	}
	b.WriteString("Give ONE short hint (max two sentences) that nudges them toward a missing aspect. Do not give the full answer. Respond with the hint text only.")

	resp, err := s.client.GenerateContent(ctx, genai.Text(b.String()))
	if err != nil {
		log.Error().Err(err).Str("questionID", question.ID).Msg("Gemini API error during hint generation")
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	hint, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(hint), nil
}

func buildAssessmentPrompt(sub engine.Submission) string {
	answersByQuestion := make(map[string]model.Answer, len(sub.Answers))
	for _, a := range sub.Answers {
		answersByQuestion[a.QuestionID] = a
	}

	var b strings.Builder
	b.WriteString("You are an experienced technical interviewer evaluating a mock interview on the topic \"")
	b.WriteString(sub.Topic)
	b.WriteString("\".\n\nQuestions and the candidate's answers:\n\n")
	for i, q := range sub.Questions {
		fmt.Fprintf(&b, "Question %d (id: %s): %s\n", i+1, q.ID, q.Prompt)
		if len(q.ExpectedPoints) > 0 {
			fmt.Fprintf(&b, "Expected discussion points: %s\n", strings.Join(q.ExpectedPoints, ", "))
		}
		if a, ok := answersByQuestion[q.ID]; ok && strings.TrimSpace(a.Text) != "" {
			fmt.Fprintf(&b, "Answer (%d seconds spent): %s\n\n", a.TimeSpentSec, a.Text)
		} else {
			b.WriteString("Answer: (not answered)\n\n")
		}
	}
	b.WriteString(`Evaluate the interview as a whole. Respond with STRICT JSON only, no prose, no markdown fences, in exactly this shape:
{
  "score": <overall score 0-100>,
  "ai_feedback": {
    "strengths": ["..."],
    "weaknesses": ["..."],
    "tips": ["..."],
    "overall_assessment": "...",
    "recommendation": "..."
  },
  "detailed_review": [
    {"question_id": "<id>", "answer_review": "...", "score": <0-10>, "suggestions": "..."}
  ]
}
Include one detailed_review entry per question, echoing the question id exactly.`)
	return b.String()
}

// parseAssessment unmarshals the model output, tolerating a markdown code
// fence around the JSON, and clamps scores into range.
func parseAssessment(raw string) (*InterviewAssessment, error) {
	cleaned := stripJSONFence(raw)
	var assessment InterviewAssessment
	if err := json.Unmarshal([]byte(cleaned), &assessment); err != nil {
		return nil, fmt.Errorf("could not parse assessment JSON: %w", err)
	}
	if assessment.Score < 0 {
		assessment.Score = 0
	}
	if assessment.Score > 100 {
		assessment.Score = 100
	}
	for i := range assessment.Review {
		if assessment.Review[i].SubScore < 0 {
			assessment.Review[i].SubScore = 0
		}
		if assessment.Review[i].SubScore > 10 {
			assessment.Review[i].SubScore = 10
		}
	}
	return &assessment, nil
}

func stripJSONFence(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no content")
	}
	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text += string(txt)
		}
	}
	if text == "" {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return text, nil
}
