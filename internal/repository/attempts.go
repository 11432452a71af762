package repository

import (
	"context"
	"time"

	"clap-go/internal/models"

	"gorm.io/gorm"
)

// Attempts is the persistence collaborator for attempt rows.
type Attempts struct {
	db *gorm.DB
}

func NewAttempts(db *gorm.DB) *Attempts {
	return &Attempts{db: db}
}

func (r *Attempts) GetAttempt(ctx context.Context, id string) (*models.Attempt, error) {
	var attempt models.Attempt
	if err := r.db.WithContext(ctx).First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *Attempts) GetAttemptWithParticipant(ctx context.Context, id string) (*models.Attempt, error) {
	var attempt models.Attempt
	if err := r.db.WithContext(ctx).Preload("Participant").First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

// GetOrCreateInProgress resumes the participant's open attempt on an
// assessment, or starts a new one. A new attempt becomes post_assessment
// only when an earlier attempt for the same participant and assessment has
// already been completed.
func (r *Attempts) GetOrCreateInProgress(ctx context.Context, participantID uint, assessmentID int) (*models.Attempt, error) {
	var attempt models.Attempt
	err := r.db.WithContext(ctx).
		Where("participant_id = ? AND assessment_id = ? AND status = ?", participantID, assessmentID, models.AttemptInProgress).
		Order("started_at DESC").
		First(&attempt).Error
	if err == nil {
		return &attempt, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	var completedPrior int64
	err = r.db.WithContext(ctx).Model(&models.Attempt{}).
		Where("participant_id = ? AND assessment_id = ? AND status = ?", participantID, assessmentID, models.AttemptCompleted).
		Count(&completedPrior).Error
	if err != nil {
		return nil, err
	}

	attempt = models.Attempt{
		ParticipantID: participantID,
		AssessmentID:  assessmentID,
		Type:          models.NextAttemptType(completedPrior),
	}
	if err := r.db.WithContext(ctx).Create(&attempt).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *Attempts) UpdateCursor(ctx context.Context, id string, cursor int) error {
	return r.db.WithContext(ctx).Model(&models.Attempt{}).
		Where("id = ?", id).
		Update("last_question_seen", cursor).Error
}

func (r *Attempts) CompleteAttempt(ctx context.Context, id string, completedAt time.Time, report *models.AttemptResult) error {
	return r.db.WithContext(ctx).Model(&models.Attempt{}).
		Where("id = ?", id).
		Updates(models.Attempt{
			Status:      models.AttemptCompleted,
			CompletedAt: &completedAt,
			ReportData:  report,
		}).Error
}

func (r *Attempts) ResetAttempt(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Attempt{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":             models.AttemptInProgress,
			"last_question_seen": 1,
			"completed_at":       nil,
			"report_data":        nil,
		}).Error
}

func (r *Attempts) ListForParticipant(ctx context.Context, participantID uint) ([]models.Attempt, error) {
	var attempts []models.Attempt
	err := r.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}

// StaleInProgress finds open attempts untouched for longer than olderThan,
// with their participants preloaded for reminder emails.
func (r *Attempts) StaleInProgress(ctx context.Context, olderThan time.Duration) ([]models.Attempt, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	var attempts []models.Attempt
	err := r.db.WithContext(ctx).
		Preload("Participant").
		Where("status = ? AND started_at < ?", models.AttemptInProgress, cutoff).
		Find(&attempts).Error
	return attempts, err
}
