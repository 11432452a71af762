package scoring

import (
	"context"
	"sort"

	"clap-go/internal/models"
)

// ResponseReader loads all recorded responses for one attempt.
type ResponseReader interface {
	ResponsesForAttempt(ctx context.Context, attemptID string) ([]models.Response, error)
}

// QuestionReader resolves question ids to their category labels.
type QuestionReader interface {
	CategoriesForQuestions(ctx context.Context, questionIDs []int) (map[int]string, error)
}

// AnswerKeyReader resolves question ids to their answer-key rows.
type AnswerKeyReader interface {
	KeysForQuestions(ctx context.Context, questionIDs []int) (map[int]models.CorrectAnswer, error)
}

// Engine scores a completed attempt by comparing its recorded responses
// against the answer key, bucketed per competency category.
type Engine struct {
	responses ResponseReader
	questions QuestionReader
	keys      AnswerKeyReader
}

func NewEngine(responses ResponseReader, questions QuestionReader, keys AnswerKeyReader) *Engine {
	return &Engine{
		responses: responses,
		questions: questions,
		keys:      keys,
	}
}

type categoryTally struct {
	correct int
	total   int
}

// ComputeResult computes the per-category and overall scores for an attempt.
// Each answered question contributes exactly 2 to its category's total (one
// point for the best pick, one for the worst pick), whether or not an
// answer-key row exists for it — a question without a key inflates the
// denominator and can never score. An attempt with no responses yields the
// zero result, not an error. Output is deterministic for fixed inputs and
// CategoryResults is sorted ascending by category name.
func (e *Engine) ComputeResult(ctx context.Context, attemptID string) (*models.AttemptResult, error) {
	responses, err := e.responses.ResponsesForAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	result := &models.AttemptResult{
		Version:         models.ReportSchemaVersion,
		CategoryResults: []models.CategoryResult{},
	}
	if len(responses) == 0 {
		return result, nil
	}

	questionIDs := distinctQuestionIDs(responses)

	categories, err := e.questions.CategoriesForQuestions(ctx, questionIDs)
	if err != nil {
		return nil, err
	}
	keys, err := e.keys.KeysForQuestions(ctx, questionIDs)
	if err != nil {
		return nil, err
	}

	tallies := make(map[string]*categoryTally)
	for _, r := range responses {
		category, ok := categories[r.QuestionID]
		if !ok {
			// Response to a question that no longer exists; it carries no
			// category and cannot be scored.
			continue
		}

		tally := tallies[category]
		if tally == nil {
			tally = &categoryTally{}
			tallies[category] = tally
		}
		tally.total += 2

		key, ok := keys[r.QuestionID]
		if !ok {
			continue
		}
		if r.BestOption == key.BestOption {
			tally.correct++
		}
		if r.WorstOption == key.WorstOption {
			tally.correct++
		}
	}

	names := make([]string, 0, len(tallies))
	for name := range tallies {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		tally := tallies[name]
		result.CategoryResults = append(result.CategoryResults, models.CategoryResult{
			Category:   name,
			Score:      tally.correct,
			Total:      tally.total,
			Percentage: percentage(tally.correct, tally.total),
		})
		result.TotalScore += tally.correct
		result.TotalPossible += tally.total
	}
	result.OverallPercentage = percentage(result.TotalScore, result.TotalPossible)

	return result, nil
}

func distinctQuestionIDs(responses []models.Response) []int {
	seen := make(map[int]bool, len(responses))
	ids := make([]int, 0, len(responses))
	for _, r := range responses {
		if !seen[r.QuestionID] {
			seen[r.QuestionID] = true
			ids = append(ids, r.QuestionID)
		}
	}
	sort.Ints(ids)
	return ids
}

func percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(score) / float64(total) * 100
}
