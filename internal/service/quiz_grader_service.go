package service

import (
	"context"
	"fmt"
	"math"

	"github.com/vhoang/skillforge/internal/engine"
	"github.com/vhoang/skillforge/internal/model"
)

// quizGrader is the deterministic grading strategy: pure choice matching,
// no external calls. A question without a committed answer counts as
// incorrect, not as an error.
type quizGrader struct{}

func NewQuizGrader() engine.Grader { return &quizGrader{} }

func (g *quizGrader) Grade(ctx context.Context, sub engine.Submission) (*engine.GradingResult, error) {
	total := len(sub.Questions)
	if total == 0 {
		return nil, fmt.Errorf("session %s has no questions to grade", sub.SessionID)
	}

	answersByQuestion := make(map[string]model.Answer, len(sub.Answers))
	for _, a := range sub.Answers {
		answersByQuestion[a.QuestionID] = a
	}

	correct := 0
	for _, q := range sub.Questions {
		a, ok := answersByQuestion[q.ID]
		if !ok || a.SelectedChoice == nil || q.CorrectChoice == nil {
			continue
		}
		if *a.SelectedChoice == *q.CorrectChoice {
			correct++
		}
	}

	return &engine.GradingResult{
		Kind:  engine.KindQuiz,
		Score: math.Round(100 * float64(correct) / float64(total)),
		Quiz: &engine.QuizBreakdown{
			CorrectCount: correct,
			TotalCount:   total,
		},
	}, nil
}
