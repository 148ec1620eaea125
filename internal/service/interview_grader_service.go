package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vhoang/skillforge/internal/engine"
	"github.com/vhoang/skillforge/internal/model"
)

// Checklist thresholds. The checklist is computed locally so it stays
// deterministic even though the narrative feedback comes from the model.
const (
	minSubstantialAnswerLen = 50
	maxReasonableDuration   = 30 * 60 // seconds
)

// interviewGrader is the narrative grading strategy: deterministic checklist
// plus a delegated model assessment. If the model call fails nothing is
// stored; the caller keeps the session in progress and may retry.
type interviewGrader struct {
	llm GeminiLLMService
}

func NewInterviewGrader(llm GeminiLLMService) engine.Grader {
	return &interviewGrader{llm: llm}
}

func (g *interviewGrader) Grade(ctx context.Context, sub engine.Submission) (*engine.GradingResult, error) {
	if len(sub.Questions) == 0 {
		return nil, fmt.Errorf("session %s has no questions to grade", sub.SessionID)
	}

	assessment, err := g.llm.AssessInterview(ctx, sub)
	if err != nil {
		return nil, err
	}

	return &engine.GradingResult{
		Kind:  engine.KindInterview,
		Score: assessment.Score,
		Interview: &engine.InterviewReport{
			Checklist: buildChecklist(sub),
			Feedback:  assessment.Feedback,
			Review:    assessment.Review,
		},
	}, nil
}

func buildChecklist(sub engine.Submission) model.Checklist {
	answered := 0
	substantial := 0
	for _, a := range sub.Answers {
		if strings.TrimSpace(a.Text) == "" {
			continue
		}
		answered++
		if len(a.Text) > minSubstantialAnswerLen {
			substantial++
		}
	}
	duration := int(sub.SubmittedAt.Sub(sub.StartedAt).Seconds())

	return model.Checklist{
		{Criterion: "All questions answered", Passed: answered == len(sub.Questions)},
		{Criterion: "Answers are substantial", Passed: answered > 0 && substantial == answered},
		{Criterion: "Completed within reasonable time", Passed: duration < maxReasonableDuration},
	}
}
