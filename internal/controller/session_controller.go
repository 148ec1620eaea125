package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/vhoang/skillforge/internal/dto"
	"github.com/vhoang/skillforge/internal/engine"
	"github.com/vhoang/skillforge/internal/questionbank"
	"github.com/vhoang/skillforge/internal/service"
)

type Controller struct {
	sessionSvc service.SessionService
}

func NewController(sessionSvc service.SessionService) *Controller {
	return &Controller{sessionSvc: sessionSvc}
}

func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/topics", ctrl.GetTopicsHandler)
		apiV1.GET("/history", ctrl.GetHistoryHandler)

		sessions := apiV1.Group("/sessions")
		sessions.POST("", ctrl.StartSessionHandler)
		sessions.GET("", ctrl.GetAllSessionsHandler)
		sessions.GET("/:id", ctrl.GetSessionHandler)
		sessions.GET("/:id/state", ctrl.GetSessionStateHandler)
		sessions.PUT("/:id/answer", ctrl.RecordAnswerHandler)
		sessions.POST("/:id/advance", ctrl.AdvanceHandler)
		sessions.POST("/:id/retreat", ctrl.RetreatHandler)
		sessions.POST("/:id/submit", ctrl.SubmitHandler)
		sessions.POST("/:id/hint", ctrl.HintHandler)
		sessions.POST("/:id/retake", ctrl.RetakeHandler)
		sessions.DELETE("/:id", ctrl.AbandonHandler)
	}
}

// renderError maps domain errors onto HTTP statuses. Lifecycle violations are
// conflicts, bad topics are the caller's fault, upstream grading or hint
// failures are bad gateways.
func renderError(c *gin.Context, err error) {
	var createErr *engine.CreateError
	var gradingErr *engine.GradingError
	var hintErr *engine.HintError

	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Session not found"})
	case errors.Is(err, service.ErrRetakeNotAllowed):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "Session cannot be retaken"})
	case errors.Is(err, engine.ErrSubmitInFlight):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "Submission already in progress"})
	case errors.Is(err, engine.ErrNotInProgress):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "Session is not in progress"})
	case errors.Is(err, questionbank.ErrUnknownTopic), errors.Is(err, questionbank.ErrUnknownMode):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &gradingErr):
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "Grading failed, please retry: " + gradingErr.Err.Error()})
	case errors.As(err, &hintErr):
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "Hint generation failed: " + hintErr.Err.Error()})
	case errors.As(err, &createErr):
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create session: " + createErr.Err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
}

// GetTopicsHandler godoc
// @Summary List available topics
// @Description List the topics that have a question bank for the given practice mode
// @Tags topics
// @Produce json
// @Param mode query string false "Practice mode (quiz or interview)" default(quiz)
// @Success 200 {object} dto.TopicsDTO
// @Failure 400 {object} dto.ErrorResponse "Unknown mode"
// @Router /topics [get]
func (ctrl *Controller) GetTopicsHandler(c *gin.Context) {
	mode := c.DefaultQuery("mode", "quiz")
	topics, err := ctrl.sessionSvc.Topics(mode)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, topics)
}

// StartSessionHandler godoc
// @Summary Start a practice session
// @Description Create a new quiz or mock interview session for a topic and enter its first question
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body dto.StartSessionDTO true "Topic, mode and optional question count"
// @Success 201 {object} dto.SessionStateDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or unknown topic"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sessions [post]
func (ctrl *Controller) StartSessionHandler(c *gin.Context) {
	var req dto.StartSessionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind StartSessionDTO")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	state, err := ctrl.sessionSvc.Start(c.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Str("topic", req.Topic).Msg("Failed to start session")
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

// GetAllSessionsHandler godoc
// @Summary List sessions
// @Description Retrieve summaries of all sessions, most recently started first
// @Tags sessions
// @Produce json
// @Success 200 {array} dto.SessionSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sessions [get]
func (ctrl *Controller) GetAllSessionsHandler(c *gin.Context) {
	summaries, err := ctrl.sessionSvc.List()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list sessions")
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GetSessionHandler godoc
// @Summary Get session detail
// @Description Retrieve a session with its questions, answers and grading result
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionDetailDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id} [get]
func (ctrl *Controller) GetSessionHandler(c *gin.Context) {
	detail, err := ctrl.sessionSvc.Detail(c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetSessionStateHandler godoc
// @Summary Get live session state
// @Description Current question, committed answer, elapsed time and timer state for a session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionStateDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/state [get]
func (ctrl *Controller) GetSessionStateHandler(c *gin.Context) {
	state, err := ctrl.sessionSvc.State(c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// RecordAnswerHandler godoc
// @Summary Record an answer
// @Description Commit an answer for the session's current question, superseding any previous one
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param answer body dto.RecordAnswerDTO true "Answer text or selected choice"
// @Success 200 {object} dto.SessionStateDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session is not in progress"
// @Router /sessions/{id}/answer [put]
func (ctrl *Controller) RecordAnswerHandler(c *gin.Context) {
	var req dto.RecordAnswerDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	state, err := ctrl.sessionSvc.RecordAnswer(c.Param("id"), req)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// AdvanceHandler godoc
// @Summary Advance to the next question
// @Description Move the question pointer forward; a no-op on the last question
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionStateDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session is not in progress"
// @Router /sessions/{id}/advance [post]
func (ctrl *Controller) AdvanceHandler(c *gin.Context) {
	state, err := ctrl.sessionSvc.Advance(c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// RetreatHandler godoc
// @Summary Go back to the previous question
// @Description Move the question pointer backward; a no-op on the first question
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionStateDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session is not in progress"
// @Router /sessions/{id}/retreat [post]
func (ctrl *Controller) RetreatHandler(c *gin.Context) {
	state, err := ctrl.sessionSvc.Retreat(c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SubmitHandler godoc
// @Summary Submit the session for grading
// @Description Grade the session. Quizzes are scored locally, interviews by the AI reviewer. Submitting a completed session returns the stored result.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.GradingResultDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session is not in progress or a submit is already running"
// @Failure 502 {object} dto.ErrorResponse "Grading failed; the session stays open for retry"
// @Router /sessions/{id}/submit [post]
func (ctrl *Controller) SubmitHandler(c *gin.Context) {
	result, err := ctrl.sessionSvc.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Error().Err(err).Str("sessionID", c.Param("id")).Msg("Failed to submit session")
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HintHandler godoc
// @Summary Get a hint for the current question
// @Description Ask the AI coach for a short nudge based on the current draft. Advisory only; never affects grading.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param draft body dto.HintRequestDTO true "Draft answer so far"
// @Success 200 {object} dto.HintDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session is not in progress"
// @Failure 502 {object} dto.ErrorResponse "Hint generation failed"
// @Router /sessions/{id}/hint [post]
func (ctrl *Controller) HintHandler(c *gin.Context) {
	var req dto.HintRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	hint, err := ctrl.sessionSvc.Hint(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, hint)
}

// RetakeHandler godoc
// @Summary Retake a completed session
// @Description Start a fresh session with the same topic and mode as a completed one
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID of the completed session"
// @Success 201 {object} dto.SessionStateDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session cannot be retaken"
// @Router /sessions/{id}/retake [post]
func (ctrl *Controller) RetakeHandler(c *gin.Context) {
	state, err := ctrl.sessionSvc.Retake(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

// AbandonHandler godoc
// @Summary Abandon a session
// @Description Mark an in-progress session abandoned. Abandoned sessions cannot be resumed or graded.
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session is not in progress"
// @Router /sessions/{id} [delete]
func (ctrl *Controller) AbandonHandler(c *gin.Context) {
	if err := ctrl.sessionSvc.Abandon(c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetHistoryHandler godoc
// @Summary Completed-session history
// @Description List completed sessions, most recent first, with per-topic attempt numbers
// @Tags history
// @Produce json
// @Param topic query string false "Filter by topic"
// @Success 200 {array} dto.HistoryEntryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /history [get]
func (ctrl *Controller) GetHistoryHandler(c *gin.Context) {
	entries, err := ctrl.sessionSvc.History(c.Query("topic"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to load history")
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
