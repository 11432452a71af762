package repository

import (
	"context"

	"clap-go/internal/models"

	"gorm.io/gorm"
)

// AnswerKeys is the read-side collaborator for the answer key.
type AnswerKeys struct {
	db *gorm.DB
}

func NewAnswerKeys(db *gorm.DB) *AnswerKeys {
	return &AnswerKeys{db: db}
}

// KeysForQuestions loads the answer-key rows for the given question ids.
// Questions with no key row are simply absent from the returned map.
func (r *AnswerKeys) KeysForQuestions(ctx context.Context, questionIDs []int) (map[int]models.CorrectAnswer, error) {
	var keys []models.CorrectAnswer
	err := r.db.WithContext(ctx).
		Where("question_id IN ?", questionIDs).
		Find(&keys).Error
	if err != nil {
		return nil, err
	}

	byQuestion := make(map[int]models.CorrectAnswer, len(keys))
	for _, k := range keys {
		byQuestion[k.QuestionID] = k
	}
	return byQuestion, nil
}
