package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attempt types. A participant's attempt on an assessment is a pre_assessment
// until at least one earlier attempt for the same participant and assessment
// has been completed; from then on new attempts are post_assessment.
const (
	AttemptTypePre  = "pre_assessment"
	AttemptTypePost = "post_assessment"
)

// Attempt statuses.
const (
	AttemptInProgress = "in_progress"
	AttemptCompleted  = "completed"
	AttemptAbandoned  = "abandoned"
)

// ReportSchemaVersion is stamped into every stored AttemptResult so report
// payloads can be migrated if the scoring rules ever change shape.
const ReportSchemaVersion = 1

// Attempt is one participant's pass through an assessment.
// LastQuestionSeen is the 1-based cursor of the question currently presented.
type Attempt struct {
	ID               string `gorm:"primaryKey;size:36"`
	ParticipantID    uint   `gorm:"index"`
	Participant      Participant `gorm:"foreignKey:ParticipantID"`
	AssessmentID     int
	Type             string `gorm:"size:20"`
	Status           string `gorm:"size:20;index"`
	LastQuestionSeen int
	StartedAt        time.Time
	CompletedAt      *time.Time
	ReportData       *AttemptResult `gorm:"serializer:json"`
}

func (a *Attempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Type == "" {
		a.Type = AttemptTypePre
	}
	if a.Status == "" {
		a.Status = AttemptInProgress
	}
	if a.LastQuestionSeen == 0 {
		a.LastQuestionSeen = 1
	}
	if a.StartedAt.IsZero() {
		a.StartedAt = time.Now().UTC()
	}
	return nil
}

// NextAttemptType picks the type for a participant's new attempt given how
// many of their earlier attempts on the same assessment reached completed.
func NextAttemptType(completedPrior int64) string {
	if completedPrior > 0 {
		return AttemptTypePost
	}
	return AttemptTypePre
}

// Response is one participant's answer to one question within one attempt.
// At most one row exists per (attempt, question) pair; resubmitting the same
// question overwrites the stored option letters.
type Response struct {
	ID          uint   `gorm:"primaryKey"`
	AttemptID   string `gorm:"size:36;uniqueIndex:idx_response_attempt_question"`
	QuestionID  int    `gorm:"uniqueIndex:idx_response_attempt_question"`
	BestOption  string `gorm:"size:4"`
	WorstOption string `gorm:"size:4"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryResult is the scored outcome for one competency category.
type CategoryResult struct {
	Category   string  `json:"category"`
	Score      int     `json:"score"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// AttemptResult is the Scoring Engine's output, stored as the attempt's
// report data once the attempt completes. CategoryResults is always sorted
// ascending by category name; downstream reports rely on that order.
type AttemptResult struct {
	Version           int              `json:"version"`
	TotalScore        int              `json:"totalScore"`
	TotalPossible     int              `json:"totalPossible"`
	OverallPercentage float64          `json:"overallPercentage"`
	CategoryResults   []CategoryResult `json:"categoryResults"`
}
