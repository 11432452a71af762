package progress

import (
	"context"
	"errors"
	"time"

	"clap-go/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Machine-readable error codes returned across the tracker's boundary.
const (
	CodeValidation      = "validation_error"
	CodeAttemptNotFound = "attempt_not_found"
	CodeSaveFailed      = "save_failed"
)

// DefaultQuestionCount is used when the assessment's question count cannot
// be determined, to tolerate seed-data gaps. Taking this path is logged so
// the gap is visible.
const DefaultQuestionCount = 20

// Error is a structured, recoverable failure with a machine-readable code.
// Lower-level persistence and scoring errors are returned as-is for the
// caller to log and convert.
type Error struct {
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// AttemptStore reads and mutates attempt rows. GetAttempt reports a missing
// id as gorm.ErrRecordNotFound.
type AttemptStore interface {
	GetAttempt(ctx context.Context, id string) (*models.Attempt, error)
	UpdateCursor(ctx context.Context, id string, cursor int) error
	CompleteAttempt(ctx context.Context, id string, completedAt time.Time, report *models.AttemptResult) error
	ResetAttempt(ctx context.Context, id string) error
}

// ResponseStore persists responses, keyed uniquely by (attempt, question).
type ResponseStore interface {
	UpsertResponse(ctx context.Context, response *models.Response) error
	DeleteResponsesForAttempt(ctx context.Context, attemptID string) error
}

// QuestionCounter reports how many questions an assessment has.
type QuestionCounter interface {
	CountQuestions(ctx context.Context, assessmentID int) (int, error)
}

// Scorer computes the final report for a finished attempt.
type Scorer interface {
	ComputeResult(ctx context.Context, attemptID string) (*models.AttemptResult, error)
}

// Tracker advances a participant's position through the question sequence,
// persisting one response at a time and completing the attempt when the last
// question is answered.
type Tracker struct {
	attempts  AttemptStore
	responses ResponseStore
	questions QuestionCounter
	scorer    Scorer
	log       *zap.Logger
}

func NewTracker(attempts AttemptStore, responses ResponseStore, questions QuestionCounter, scorer Scorer, log *zap.Logger) *Tracker {
	return &Tracker{
		attempts:  attempts,
		responses: responses,
		questions: questions,
		scorer:    scorer,
		log:       log,
	}
}

// SubmitOutcome is the success shape of SubmitAnswer. NextQuestion is only
// set while the attempt is still in progress.
type SubmitOutcome struct {
	Completed    bool `json:"completed"`
	NextQuestion int  `json:"nextQuestion,omitempty"`
}

// PrevOutcome is the success shape of GoToPreviousQuestion.
type PrevOutcome struct {
	PreviousQuestion int    `json:"previousQuestion"`
	Message          string `json:"message,omitempty"`
}

// SubmitAnswer upserts the response for (attemptID, questionID) and advances
// the cursor. Answering while the cursor is on the final question completes
// the attempt instead: the scoring engine runs and its result is stored with
// the completion timestamp. If scoring fails the attempt is left in_progress
// with its cursor unchanged, so resubmitting the final answer retries.
func (t *Tracker) SubmitAnswer(ctx context.Context, attemptID string, questionID int, bestOption, worstOption string) (*SubmitOutcome, error) {
	if bestOption == "" || worstOption == "" {
		return nil, &Error{Code: CodeValidation, Message: "both a best and a worst option must be selected"}
	}

	response := &models.Response{
		AttemptID:   attemptID,
		QuestionID:  questionID,
		BestOption:  bestOption,
		WorstOption: worstOption,
	}
	if err := t.responses.UpsertResponse(ctx, response); err != nil {
		t.log.Error("Failed to save response", zap.String("attemptID", attemptID), zap.Int("questionID", questionID), zap.Error(err))
		return nil, &Error{Code: CodeSaveFailed, Message: "could not save your answer, please try again"}
	}

	attempt, err := t.attempts.GetAttempt(ctx, attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &Error{Code: CodeAttemptNotFound, Message: "assessment attempt not found"}
		}
		return nil, &Error{Code: CodeSaveFailed, Message: "could not load your attempt, please try again"}
	}

	totalQuestions := t.totalQuestions(ctx, attempt)

	if attempt.LastQuestionSeen >= totalQuestions {
		// The question just answered was the last one.
		report, err := t.scorer.ComputeResult(ctx, attemptID)
		if err != nil {
			// Completion is aborted; the attempt stays in_progress so the
			// participant can resubmit the final answer.
			return nil, err
		}
		if err := t.attempts.CompleteAttempt(ctx, attemptID, time.Now().UTC(), report); err != nil {
			t.log.Error("Failed to complete attempt", zap.String("attemptID", attemptID), zap.Error(err))
			return nil, &Error{Code: CodeSaveFailed, Message: "could not record completion, please try again"}
		}
		return &SubmitOutcome{Completed: true}, nil
	}

	next := attempt.LastQuestionSeen + 1
	if err := t.attempts.UpdateCursor(ctx, attemptID, next); err != nil {
		t.log.Error("Failed to advance cursor", zap.String("attemptID", attemptID), zap.Error(err))
		return nil, &Error{Code: CodeSaveFailed, Message: "could not save your progress, please try again"}
	}
	return &SubmitOutcome{NextQuestion: next}, nil
}

// GoToPreviousQuestion rewinds the cursor one step. At the first question it
// is a no-op; the cursor never drops below 1. Stored responses are untouched,
// so earlier answers stay visible when the participant returns to them.
func (t *Tracker) GoToPreviousQuestion(ctx context.Context, attemptID string, currentQuestionOrder int) (*PrevOutcome, error) {
	if currentQuestionOrder <= 1 {
		return &PrevOutcome{PreviousQuestion: 1, Message: "already at the first question"}, nil
	}

	previous := currentQuestionOrder - 1
	if err := t.attempts.UpdateCursor(ctx, attemptID, previous); err != nil {
		t.log.Error("Failed to rewind cursor", zap.String("attemptID", attemptID), zap.Error(err))
		return nil, &Error{Code: CodeSaveFailed, Message: "could not go back, please try again"}
	}
	return &PrevOutcome{PreviousQuestion: previous}, nil
}

// ResetAttempt wipes all responses for the attempt and rewinds it to a fresh
// in_progress state. Destructive; callers confirm intent before invoking.
func (t *Tracker) ResetAttempt(ctx context.Context, attemptID string) error {
	if err := t.responses.DeleteResponsesForAttempt(ctx, attemptID); err != nil {
		t.log.Error("Failed to delete responses", zap.String("attemptID", attemptID), zap.Error(err))
		return &Error{Code: CodeSaveFailed, Message: "could not restart the attempt, please try again"}
	}
	if err := t.attempts.ResetAttempt(ctx, attemptID); err != nil {
		t.log.Error("Failed to reset attempt", zap.String("attemptID", attemptID), zap.Error(err))
		return &Error{Code: CodeSaveFailed, Message: "could not restart the attempt, please try again"}
	}
	return nil
}

func (t *Tracker) totalQuestions(ctx context.Context, attempt *models.Attempt) int {
	count, err := t.questions.CountQuestions(ctx, attempt.AssessmentID)
	if err != nil || count <= 0 {
		t.log.Warn("Question count unavailable, using fallback",
			zap.String("attemptID", attempt.ID),
			zap.Int("assessmentID", attempt.AssessmentID),
			zap.Int("fallback", DefaultQuestionCount),
			zap.Error(err),
		)
		return DefaultQuestionCount
	}
	return count
}
