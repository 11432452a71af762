package repository

import (
	"context"

	"clap-go/internal/models"

	"gorm.io/gorm"
)

// Questions is the read-side collaborator for the question bank.
type Questions struct {
	db *gorm.DB
}

func NewQuestions(db *gorm.DB) *Questions {
	return &Questions{db: db}
}

func (r *Questions) CountQuestions(ctx context.Context, assessmentID int) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Question{}).
		Where("assessment_id = ?", assessmentID).
		Count(&count).Error
	return int(count), err
}

func (r *Questions) CategoriesForQuestions(ctx context.Context, questionIDs []int) (map[int]string, error) {
	var questions []models.Question
	err := r.db.WithContext(ctx).
		Select("id", "category").
		Where("id IN ?", questionIDs).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}

	categories := make(map[int]string, len(questions))
	for _, q := range questions {
		categories[q.ID] = q.Category
	}
	return categories, nil
}

func (r *Questions) ListByAssessment(ctx context.Context, assessmentID int) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.WithContext(ctx).
		Preload("Options").
		Where("assessment_id = ?", assessmentID).
		Order("position").
		Find(&questions).Error
	return questions, err
}

// ByPosition fetches the question at a 1-based position within an assessment,
// with its options preloaded.
func (r *Questions) ByPosition(ctx context.Context, assessmentID, position int) (*models.Question, error) {
	var question models.Question
	err := r.db.WithContext(ctx).
		Preload("Options").
		Where("assessment_id = ? AND position = ?", assessmentID, position).
		First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}
