package handlers

import (
	"errors"
	"net/http"

	"clap-go/internal/models"
	"clap-go/internal/progress"
	"clap-go/internal/repository"
	"clap-go/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AssessmentHandler exposes the participant-facing attempt flow: start or
// resume an attempt, fetch the current question, submit answers, step back,
// and restart.
type AssessmentHandler struct {
	log       *zap.Logger
	tracker   *progress.Tracker
	attempts  *repository.Attempts
	questions *repository.Questions
	responses *repository.Responses
	email     *services.EmailService
}

func NewAssessmentHandler(log *zap.Logger, tracker *progress.Tracker, attempts *repository.Attempts, questions *repository.Questions, responses *repository.Responses, email *services.EmailService) *AssessmentHandler {
	return &AssessmentHandler{
		log:       log,
		tracker:   tracker,
		attempts:  attempts,
		questions: questions,
		responses: responses,
		email:     email,
	}
}

type startAttemptRequest struct {
	ParticipantID uint `json:"participantId" binding:"required"`
	AssessmentID  int  `json:"assessmentId" binding:"required"`
}

// Start resumes the participant's open attempt or creates a new one, and
// returns it together with the question at the cursor.
func (h *AssessmentHandler) Start(c *gin.Context) {
	var req startAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": progress.CodeValidation, "message": "participantId and assessmentId are required"})
		return
	}

	attempt, err := h.attempts.GetOrCreateInProgress(c.Request.Context(), req.ParticipantID, req.AssessmentID)
	if err != nil {
		h.log.Error("Failed to start attempt", zap.Uint("participantID", req.ParticipantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "could not start or resume the assessment"})
		return
	}

	question, err := h.questionAtCursor(c, attempt)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{"attempt": attempt, "question": question})
}

// CurrentQuestion returns the question at the attempt's cursor, along with
// any previously recorded answer so it stays visible and editable.
func (h *AssessmentHandler) CurrentQuestion(c *gin.Context) {
	attempt, ok := h.loadAttempt(c)
	if !ok {
		return
	}

	question, err := h.questionAtCursor(c, attempt)
	if err != nil {
		return
	}

	var recorded *models.Response
	responses, err := h.responses.ResponsesForAttempt(c.Request.Context(), attempt.ID)
	if err != nil {
		h.log.Error("Failed to load responses", zap.String("attemptID", attempt.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "could not load the question"})
		return
	}
	for i := range responses {
		if responses[i].QuestionID == question.ID {
			recorded = &responses[i]
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"attempt":  attempt,
		"question": question,
		"response": recorded,
	})
}

type submitAnswerRequest struct {
	QuestionID  int    `json:"questionId" binding:"required"`
	BestOption  string `json:"bestOption"`
	WorstOption string `json:"worstOption"`
}

func (h *AssessmentHandler) SubmitAnswer(c *gin.Context) {
	attemptID := c.Param("id")

	var req submitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": progress.CodeValidation, "message": "questionId is required"})
		return
	}

	outcome, err := h.tracker.SubmitAnswer(c.Request.Context(), attemptID, req.QuestionID, req.BestOption, req.WorstOption)
	if err != nil {
		h.respondTrackerError(c, err)
		return
	}

	if outcome.Completed {
		h.notifyCompletion(c, attemptID)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"completed":    outcome.Completed,
		"nextQuestion": outcome.NextQuestion,
	})
}

type previousQuestionRequest struct {
	CurrentQuestion int `json:"currentQuestion" binding:"required"`
}

func (h *AssessmentHandler) PreviousQuestion(c *gin.Context) {
	attemptID := c.Param("id")

	var req previousQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": progress.CodeValidation, "message": "currentQuestion is required"})
		return
	}

	outcome, err := h.tracker.GoToPreviousQuestion(c.Request.Context(), attemptID, req.CurrentQuestion)
	if err != nil {
		h.respondTrackerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"previousQuestion": outcome.PreviousQuestion,
		"message":          outcome.Message,
	})
}

// Reset wipes the attempt's responses and rewinds it to question 1. The
// confirmation step lives in the UI; by the time this endpoint is hit the
// participant has chosen to restart.
func (h *AssessmentHandler) Reset(c *gin.Context) {
	attemptID := c.Param("id")

	if err := h.tracker.ResetAttempt(c.Request.Context(), attemptID); err != nil {
		h.respondTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AssessmentHandler) loadAttempt(c *gin.Context) (*models.Attempt, bool) {
	attempt, err := h.attempts.GetAttempt(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": progress.CodeAttemptNotFound, "message": "assessment attempt not found"})
		} else {
			h.log.Error("Failed to load attempt", zap.String("attemptID", c.Param("id")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "could not load the attempt"})
		}
		return nil, false
	}
	return attempt, true
}

func (h *AssessmentHandler) questionAtCursor(c *gin.Context, attempt *models.Attempt) (*models.Question, error) {
	question, err := h.questions.ByPosition(c.Request.Context(), attempt.AssessmentID, attempt.LastQuestionSeen)
	if err != nil {
		h.log.Error("Failed to load question at cursor",
			zap.String("attemptID", attempt.ID),
			zap.Int("position", attempt.LastQuestionSeen),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "could not load the current question"})
		return nil, err
	}
	return question, nil
}

func (h *AssessmentHandler) respondTrackerError(c *gin.Context, err error) {
	var trackerErr *progress.Error
	if errors.As(err, &trackerErr) {
		status := http.StatusInternalServerError
		switch trackerErr.Code {
		case progress.CodeValidation:
			status = http.StatusBadRequest
		case progress.CodeAttemptNotFound:
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": trackerErr.Code, "message": trackerErr.Message})
		return
	}

	// Scoring or lower-level failure; log it and return a generic response.
	// The attempt was left in_progress, so resubmitting retries safely.
	h.log.Error("Attempt operation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "action_failed", "message": "something went wrong, please try again"})
}

func (h *AssessmentHandler) notifyCompletion(c *gin.Context, attemptID string) {
	attempt, err := h.attempts.GetAttemptWithParticipant(c.Request.Context(), attemptID)
	if err != nil {
		h.log.Warn("Completed attempt could not be reloaded for notification", zap.String("attemptID", attemptID), zap.Error(err))
		return
	}
	h.email.SendCompletionEmail(*attempt)
}
