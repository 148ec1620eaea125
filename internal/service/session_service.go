package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/vhoang/skillforge/config"
	"github.com/vhoang/skillforge/internal/dto"
	"github.com/vhoang/skillforge/internal/engine"
	"github.com/vhoang/skillforge/internal/model"
	"github.com/vhoang/skillforge/internal/questionbank"
	"github.com/vhoang/skillforge/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrRetakeNotAllowed = errors.New("session cannot be retaken")
)

// SessionService is the application boundary of the engine: it owns the live
// orchestrators, persists their state through the repositories, and maps
// everything to transport DTOs.
type SessionService interface {
	Start(ctx context.Context, req dto.StartSessionDTO) (*dto.SessionStateDTO, error)
	State(id string) (*dto.SessionStateDTO, error)
	Detail(id string) (*dto.SessionDetailDTO, error)
	List() ([]dto.SessionSummaryDTO, error)
	RecordAnswer(id string, req dto.RecordAnswerDTO) (*dto.SessionStateDTO, error)
	Advance(id string) (*dto.SessionStateDTO, error)
	Retreat(id string) (*dto.SessionStateDTO, error)
	Submit(ctx context.Context, id string) (*dto.GradingResultDTO, error)
	Hint(ctx context.Context, id string, req dto.HintRequestDTO) (*dto.HintDTO, error)
	Retake(ctx context.Context, id string) (*dto.SessionStateDTO, error)
	Abandon(id string) error
	History(topic string) ([]dto.HistoryEntryDTO, error)
	Topics(mode string) (*dto.TopicsDTO, error)
}

type sessionService struct {
	cfg         *config.Config
	sessionRepo repository.SessionRepository
	answerRepo  repository.AnswerRepository
	bank        *questionbank.Bank
	llm         GeminiLLMService

	quizGrader      engine.Grader
	interviewGrader engine.Grader

	// active holds one orchestrator per in-flight session. Completed sessions
	// are evicted once their result is safely persisted; before that the
	// orchestrator stays authoritative.
	mu     sync.RWMutex
	active map[string]*engine.Orchestrator
}

func NewSessionService(
	cfg *config.Config,
	sessionRepo repository.SessionRepository,
	answerRepo repository.AnswerRepository,
	bank *questionbank.Bank,
	llm GeminiLLMService,
) SessionService {
	return &sessionService{
		cfg:             cfg,
		sessionRepo:     sessionRepo,
		answerRepo:      answerRepo,
		bank:            bank,
		llm:             llm,
		quizGrader:      NewQuizGrader(),
		interviewGrader: NewInterviewGrader(llm),
		active:          make(map[string]*engine.Orchestrator),
	}
}

// answerStore adapts the answer repository to the engine's persistence
// boundary.
type answerStore struct {
	repo repository.AnswerRepository
}

func (s *answerStore) SaveAnswer(ctx context.Context, sessionID string, answer model.Answer) error {
	return s.repo.Upsert(&answer)
}

func (s *sessionService) graderFor(mode string) engine.Grader {
	if mode == model.ModeInterview {
		return s.interviewGrader
	}
	return s.quizGrader
}

// Start spins up a new orchestrator and persists the session row with its
// questions. If the row cannot be written the orchestrator is discarded; a
// session the store never heard of must not keep running.
func (s *sessionService) Start(ctx context.Context, req dto.StartSessionDTO) (*dto.SessionStateDTO, error) {
	count := req.Count
	if count == 0 {
		count = s.cfg.Session.DefaultQuestionCount
	}

	orch, err := engine.Start(ctx, engine.StartConfig{
		Topic:  req.Topic,
		Mode:   req.Mode,
		Count:  count,
		Source: s.bank,
		Store:  &answerStore{repo: s.answerRepo},
		Grader: s.graderFor(req.Mode),
		Hints:  s.llm,
	})
	if err != nil {
		return nil, err
	}

	session := &model.Session{
		ID:        orch.SessionID(),
		Topic:     orch.Topic(),
		Mode:      orch.Mode(),
		Status:    model.StatusInProgress,
		Questions: orch.Questions(),
		StartedAt: orch.StartedAt(),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		_ = orch.Abandon()
		return nil, err
	}

	s.mu.Lock()
	s.active[orch.SessionID()] = orch
	s.mu.Unlock()

	log.Info().Str("sessionID", orch.SessionID()).Str("topic", req.Topic).Str("mode", req.Mode).
		Msg("Session started")
	return s.stateDTO(orch), nil
}

// orchestrator returns the live orchestrator for a session, resuming it from
// the store if the process no longer holds one. Sessions that are not in
// progress cannot be resumed.
func (s *sessionService) orchestrator(id string) (*engine.Orchestrator, error) {
	s.mu.RLock()
	orch, ok := s.active[id]
	s.mu.RUnlock()
	if ok {
		return orch, nil
	}

	session, err := s.sessionRepo.FindByIDWithDetails(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.Status != model.StatusInProgress {
		return nil, engine.ErrNotInProgress
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if orch, ok := s.active[id]; ok {
		return orch, nil
	}
	orch, err = engine.Resume(engine.ResumeConfig{
		SessionID: session.ID,
		Topic:     session.Topic,
		Mode:      session.Mode,
		StartedAt: session.StartedAt,
		Questions: session.Questions,
		Answers:   session.Answers,
		Store:     &answerStore{repo: s.answerRepo},
		Grader:    s.graderFor(session.Mode),
		Hints:     s.llm,
	})
	if err != nil {
		return nil, err
	}
	s.active[id] = orch
	log.Info().Str("sessionID", id).Msg("Session resumed from store")
	return orch, nil
}

func (s *sessionService) State(id string) (*dto.SessionStateDTO, error) {
	orch, err := s.orchestrator(id)
	if err == nil {
		return s.stateDTO(orch), nil
	}
	if !errors.Is(err, engine.ErrNotInProgress) {
		return nil, err
	}

	// Completed or abandoned: serve the stored terminal state.
	session, err := s.sessionRepo.FindByIDWithDetails(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &dto.SessionStateDTO{
		SessionID:      session.ID,
		Status:         session.Status,
		TotalQuestions: len(session.Questions),
		Result:         storedResultDTO(session),
	}, nil
}

func (s *sessionService) Detail(id string) (*dto.SessionDetailDTO, error) {
	session, err := s.sessionRepo.FindByIDWithDetails(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	detail := &dto.SessionDetailDTO{
		ID:          session.ID,
		Topic:       session.Topic,
		Mode:        session.Mode,
		Status:      session.Status,
		Result:      storedResultDTO(session),
		CanRetake:   session.CanRetake,
		StartedAt:   session.StartedAt,
		CompletedAt: session.CompletedAt,
	}
	if err := copier.Copy(&detail.Questions, &session.Questions); err != nil {
		return nil, err
	}
	if err := copier.Copy(&detail.Answers, &session.Answers); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *sessionService) List() ([]dto.SessionSummaryDTO, error) {
	sessions, err := s.sessionRepo.FindAll()
	if err != nil {
		return nil, err
	}
	var summaries []dto.SessionSummaryDTO
	if err := copier.Copy(&summaries, &sessions); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *sessionService) RecordAnswer(id string, req dto.RecordAnswerDTO) (*dto.SessionStateDTO, error) {
	orch, err := s.orchestrator(id)
	if err != nil {
		return nil, err
	}
	if err := orch.RecordAnswer(req.Text, req.SelectedChoice); err != nil {
		return nil, err
	}
	return s.stateDTO(orch), nil
}

func (s *sessionService) Advance(id string) (*dto.SessionStateDTO, error) {
	orch, err := s.orchestrator(id)
	if err != nil {
		return nil, err
	}
	if err := orch.Advance(); err != nil {
		return nil, err
	}
	return s.stateDTO(orch), nil
}

func (s *sessionService) Retreat(id string) (*dto.SessionStateDTO, error) {
	orch, err := s.orchestrator(id)
	if err != nil {
		return nil, err
	}
	if err := orch.Retreat(); err != nil {
		return nil, err
	}
	return s.stateDTO(orch), nil
}

// Submit grades the session and persists the outcome. Repeated submits of a
// completed session return the stored result without re-grading. A failed
// result write is logged and retried on the next submit; the caller still
// gets the result.
func (s *sessionService) Submit(ctx context.Context, id string) (*dto.GradingResultDTO, error) {
	orch, err := s.orchestrator(id)
	if err != nil {
		if !errors.Is(err, engine.ErrNotInProgress) {
			return nil, err
		}
		session, ferr := s.sessionRepo.FindByID(id)
		if ferr != nil {
			if errors.Is(ferr, gorm.ErrRecordNotFound) {
				return nil, ErrSessionNotFound
			}
			return nil, ferr
		}
		if session.Status == model.StatusCompleted {
			return storedResultDTO(session), nil
		}
		return nil, err
	}

	result, err := orch.Submit(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.persistCompletion(orch.SessionID(), result); err != nil {
		log.Error().Err(err).Str("sessionID", orch.SessionID()).
			Msg("Failed to persist grading result; orchestrator kept live for retry")
	} else {
		s.mu.Lock()
		delete(s.active, orch.SessionID())
		s.mu.Unlock()
	}
	return toResultDTO(result), nil
}

func (s *sessionService) persistCompletion(sessionID string, result *engine.GradingResult) error {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		return err
	}

	now := time.Now()
	score := result.Score
	session.Status = model.StatusCompleted
	session.Score = &score
	session.CanRetake = true
	session.CompletedAt = &now
	if result.Quiz != nil {
		correct, total := result.Quiz.CorrectCount, result.Quiz.TotalCount
		session.CorrectCount = &correct
		session.TotalCount = &total
	}
	if result.Interview != nil {
		session.Checklist = result.Interview.Checklist
		feedback := result.Interview.Feedback
		session.AIFeedback = &feedback
		session.Review = result.Interview.Review
	}
	return s.sessionRepo.Update(session)
}

func (s *sessionService) Hint(ctx context.Context, id string, req dto.HintRequestDTO) (*dto.HintDTO, error) {
	orch, err := s.orchestrator(id)
	if err != nil {
		return nil, err
	}
	hint, err := orch.Hint(ctx, req.DraftAnswer)
	if err != nil {
		return nil, err
	}
	return &dto.HintDTO{Hint: hint}, nil
}

// Retake starts a fresh session with the same topic, mode and question count
// as a completed one. The original session is left untouched; topics draw
// fresh question identities every time.
func (s *sessionService) Retake(ctx context.Context, id string) (*dto.SessionStateDTO, error) {
	original, err := s.sessionRepo.FindByIDWithDetails(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if original.Status != model.StatusCompleted || !original.CanRetake {
		return nil, ErrRetakeNotAllowed
	}

	return s.Start(ctx, dto.StartSessionDTO{
		Topic: original.Topic,
		Mode:  original.Mode,
		Count: len(original.Questions),
	})
}

func (s *sessionService) Abandon(id string) error {
	orch, err := s.orchestrator(id)
	if err != nil {
		return err
	}
	if err := orch.Abandon(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.active, id)
	s.mu.Unlock()

	session, err := s.sessionRepo.FindByID(id)
	if err != nil {
		return err
	}
	session.Status = model.StatusAbandoned
	return s.sessionRepo.Update(session)
}

// History lists completed sessions, most recent first, with a 1-based
// per-topic attempt number derived by counting from the oldest completion.
func (s *sessionService) History(topic string) ([]dto.HistoryEntryDTO, error) {
	sessions, err := s.sessionRepo.FindCompleted(topic)
	if err != nil {
		return nil, err
	}

	attempts := make(map[string]int)
	numbers := make([]int, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		attempts[sessions[i].Topic]++
		numbers[i] = attempts[sessions[i].Topic]
	}

	entries := make([]dto.HistoryEntryDTO, 0, len(sessions))
	for i, sess := range sessions {
		entry := dto.HistoryEntryDTO{
			SessionID: sess.ID,
			Topic:     sess.Topic,
			Mode:      sess.Mode,
			Attempt:   numbers[i],
		}
		if sess.Score != nil {
			entry.Score = *sess.Score
		}
		if sess.CompletedAt != nil {
			entry.CompletedAt = *sess.CompletedAt
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *sessionService) Topics(mode string) (*dto.TopicsDTO, error) {
	topics, err := s.bank.Topics(mode)
	if err != nil {
		return nil, err
	}
	return &dto.TopicsDTO{Mode: mode, Topics: topics}, nil
}

func (s *sessionService) stateDTO(orch *engine.Orchestrator) *dto.SessionStateDTO {
	snap := orch.State()
	state := &dto.SessionStateDTO{
		SessionID:      snap.SessionID,
		Status:         snap.Status,
		CurrentIndex:   snap.Index,
		TotalQuestions: snap.Total,
		ElapsedSec:     snap.ElapsedSec,
		RemainingSec:   snap.RemainingSec,
		TimerExpired:   snap.TimerExpired,
		Result:         toResultDTO(snap.Result),
	}
	if snap.Status == model.StatusInProgress {
		var q dto.QuestionDTO
		if err := copier.Copy(&q, &snap.Question); err == nil {
			state.CurrentQuestion = &q
		}
		if snap.Answer != nil {
			state.CurrentAnswer = &dto.AnswerDTO{
				QuestionID:     snap.Answer.QuestionID,
				Text:           snap.Answer.Text,
				SelectedChoice: snap.Answer.SelectedChoice,
				TimeSpentSec:   snap.Answer.TimeSpentSec,
			}
		}
	}
	return state
}

func toResultDTO(result *engine.GradingResult) *dto.GradingResultDTO {
	if result == nil {
		return nil
	}
	out := &dto.GradingResultDTO{Kind: result.Kind, Score: result.Score}
	if result.Quiz != nil {
		correct, total := result.Quiz.CorrectCount, result.Quiz.TotalCount
		out.CorrectCount = &correct
		out.TotalCount = &total
	}
	if result.Interview != nil {
		out.Checklist = result.Interview.Checklist
		feedback := result.Interview.Feedback
		out.AIFeedback = &feedback
		out.DetailedReview = result.Interview.Review
	}
	return out
}

// storedResultDTO rebuilds the grading result from a persisted completed
// session. Nil for sessions that never completed.
func storedResultDTO(session *model.Session) *dto.GradingResultDTO {
	if session.Status != model.StatusCompleted || session.Score == nil {
		return nil
	}
	out := &dto.GradingResultDTO{Score: *session.Score}
	switch session.Mode {
	case model.ModeQuiz:
		out.Kind = engine.KindQuiz
		out.CorrectCount = session.CorrectCount
		out.TotalCount = session.TotalCount
	case model.ModeInterview:
		out.Kind = engine.KindInterview
		out.Checklist = session.Checklist
		out.AIFeedback = session.AIFeedback
		out.DetailedReview = session.Review
	}
	return out
}
