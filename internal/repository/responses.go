package repository

import (
	"context"

	"clap-go/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Responses is the persistence collaborator for response rows.
type Responses struct {
	db *gorm.DB
}

func NewResponses(db *gorm.DB) *Responses {
	return &Responses{db: db}
}

// UpsertResponse inserts the response, or overwrites the stored option
// letters if a row for (attempt, question) already exists.
func (r *Responses) UpsertResponse(ctx context.Context, response *models.Response) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"best_option", "worst_option", "updated_at"}),
	}).Create(response).Error
}

func (r *Responses) ResponsesForAttempt(ctx context.Context, attemptID string) ([]models.Response, error) {
	var responses []models.Response
	err := r.db.WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		Order("question_id").
		Find(&responses).Error
	return responses, err
}

func (r *Responses) DeleteResponsesForAttempt(ctx context.Context, attemptID string) error {
	return r.db.WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		Delete(&models.Response{}).Error
}
