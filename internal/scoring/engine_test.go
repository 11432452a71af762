package scoring

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"clap-go/internal/models"
)

type fakeResponses struct {
	responses []models.Response
	err       error
}

func (f *fakeResponses) ResponsesForAttempt(ctx context.Context, attemptID string) ([]models.Response, error) {
	return f.responses, f.err
}

type fakeQuestions map[int]string

func (f fakeQuestions) CategoriesForQuestions(ctx context.Context, questionIDs []int) (map[int]string, error) {
	return f, nil
}

type fakeKeys map[int]models.CorrectAnswer

func (f fakeKeys) KeysForQuestions(ctx context.Context, questionIDs []int) (map[int]models.CorrectAnswer, error) {
	return f, nil
}

func TestComputeResultEmptyAttempt(t *testing.T) {
	engine := NewEngine(&fakeResponses{}, fakeQuestions{}, fakeKeys{})

	got, err := engine.ComputeResult(context.Background(), "attempt-1")
	if err != nil {
		t.Fatalf("ComputeResult: %v", err)
	}

	want := &models.AttemptResult{
		Version:         models.ReportSchemaVersion,
		CategoryResults: []models.CategoryResult{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ComputeResult on empty attempt = %+v, want zero result %+v", got, want)
	}
}

func TestComputeResultSingleCategory(t *testing.T) {
	// Two questions in one category. The first response matches the key on
	// both picks, the second only on the best pick: 3 of 4 points.
	responses := &fakeResponses{responses: []models.Response{
		{AttemptID: "attempt-1", QuestionID: 1, BestOption: "A", WorstOption: "B"},
		{AttemptID: "attempt-1", QuestionID: 2, BestOption: "C", WorstOption: "D"},
	}}
	questions := fakeQuestions{
		1: CategoryCommunication,
		2: CategoryCommunication,
	}
	keys := fakeKeys{
		1: {QuestionID: 1, BestOption: "A", WorstOption: "B"},
		2: {QuestionID: 2, BestOption: "C", WorstOption: "E"},
	}

	engine := NewEngine(responses, questions, keys)
	got, err := engine.ComputeResult(context.Background(), "attempt-1")
	if err != nil {
		t.Fatalf("ComputeResult: %v", err)
	}

	if got.TotalScore != 3 || got.TotalPossible != 4 {
		t.Errorf("totals = %d/%d, want 3/4", got.TotalScore, got.TotalPossible)
	}
	if got.OverallPercentage != 75 {
		t.Errorf("overall percentage = %v, want 75", got.OverallPercentage)
	}
	if len(got.CategoryResults) != 1 {
		t.Fatalf("got %d category results, want 1", len(got.CategoryResults))
	}
	cr := got.CategoryResults[0]
	if cr.Category != CategoryCommunication || cr.Score != 3 || cr.Total != 4 || cr.Percentage != 75 {
		t.Errorf("category result = %+v", cr)
	}
}

func TestComputeResultMissingAnswerKey(t *testing.T) {
	// A question without an answer-key row still adds 2 to its category's
	// total but can never contribute points.
	responses := &fakeResponses{responses: []models.Response{
		{AttemptID: "attempt-1", QuestionID: 1, BestOption: "A", WorstOption: "B"},
		{AttemptID: "attempt-1", QuestionID: 2, BestOption: "C", WorstOption: "D"},
	}}
	questions := fakeQuestions{
		1: CategoryService,
		2: CategoryService,
	}
	keys := fakeKeys{
		1: {QuestionID: 1, BestOption: "A", WorstOption: "B"},
	}

	engine := NewEngine(responses, questions, keys)
	got, err := engine.ComputeResult(context.Background(), "attempt-1")
	if err != nil {
		t.Fatalf("ComputeResult: %v", err)
	}

	if got.TotalScore != 2 || got.TotalPossible != 4 {
		t.Errorf("totals = %d/%d, want 2/4", got.TotalScore, got.TotalPossible)
	}
	if got.OverallPercentage != 50 {
		t.Errorf("overall percentage = %v, want 50", got.OverallPercentage)
	}
}

func TestComputeResultSkipsOrphanedResponses(t *testing.T) {
	// A response whose question was removed from the bank carries no category
	// and is excluded from every tally.
	responses := &fakeResponses{responses: []models.Response{
		{AttemptID: "attempt-1", QuestionID: 1, BestOption: "A", WorstOption: "B"},
		{AttemptID: "attempt-1", QuestionID: 99, BestOption: "A", WorstOption: "B"},
	}}
	questions := fakeQuestions{1: CategoryResilience}
	keys := fakeKeys{1: {QuestionID: 1, BestOption: "A", WorstOption: "B"}}

	engine := NewEngine(responses, questions, keys)
	got, err := engine.ComputeResult(context.Background(), "attempt-1")
	if err != nil {
		t.Fatalf("ComputeResult: %v", err)
	}

	if got.TotalScore != 2 || got.TotalPossible != 2 {
		t.Errorf("totals = %d/%d, want 2/2", got.TotalScore, got.TotalPossible)
	}
	if len(got.CategoryResults) != 1 {
		t.Errorf("got %d category results, want 1", len(got.CategoryResults))
	}
}

func TestComputeResultCategoryOrderAndAggregates(t *testing.T) {
	responses := &fakeResponses{responses: []models.Response{
		{AttemptID: "attempt-1", QuestionID: 1, BestOption: "A", WorstOption: "B"},
		{AttemptID: "attempt-1", QuestionID: 2, BestOption: "A", WorstOption: "B"},
		{AttemptID: "attempt-1", QuestionID: 3, BestOption: "A", WorstOption: "B"},
		{AttemptID: "attempt-1", QuestionID: 4, BestOption: "E", WorstOption: "D"},
	}}
	questions := fakeQuestions{
		1: CategoryTeamDevelopment,
		2: CategoryCommunication,
		3: CategoryService,
		4: CategoryDecisionMaking,
	}
	keys := fakeKeys{
		1: {QuestionID: 1, BestOption: "A", WorstOption: "B"},
		2: {QuestionID: 2, BestOption: "A", WorstOption: "C"},
		3: {QuestionID: 3, BestOption: "A", WorstOption: "B"},
		4: {QuestionID: 4, BestOption: "A", WorstOption: "B"},
	}

	engine := NewEngine(responses, questions, keys)
	got, err := engine.ComputeResult(context.Background(), "attempt-1")
	if err != nil {
		t.Fatalf("ComputeResult: %v", err)
	}

	wantOrder := []string{
		CategoryCommunication,
		CategoryDecisionMaking,
		CategoryService,
		CategoryTeamDevelopment,
	}
	if len(got.CategoryResults) != len(wantOrder) {
		t.Fatalf("got %d category results, want %d", len(got.CategoryResults), len(wantOrder))
	}
	for i, cr := range got.CategoryResults {
		if cr.Category != wantOrder[i] {
			t.Errorf("category at index %d = %q, want %q", i, cr.Category, wantOrder[i])
		}
	}

	sumScore, sumTotal := 0, 0
	for _, cr := range got.CategoryResults {
		sumScore += cr.Score
		sumTotal += cr.Total
	}
	if got.TotalScore != sumScore || got.TotalPossible != sumTotal {
		t.Errorf("aggregate totals %d/%d do not match category sums %d/%d",
			got.TotalScore, got.TotalPossible, sumScore, sumTotal)
	}
}

func TestComputeResultDeterministic(t *testing.T) {
	responses := &fakeResponses{responses: []models.Response{
		{AttemptID: "attempt-1", QuestionID: 3, BestOption: "A", WorstOption: "B"},
		{AttemptID: "attempt-1", QuestionID: 1, BestOption: "C", WorstOption: "D"},
		{AttemptID: "attempt-1", QuestionID: 2, BestOption: "E", WorstOption: "A"},
	}}
	questions := fakeQuestions{
		1: CategoryCommunication,
		2: CategoryResilience,
		3: CategoryService,
	}
	keys := fakeKeys{
		1: {QuestionID: 1, BestOption: "C", WorstOption: "D"},
		2: {QuestionID: 2, BestOption: "E", WorstOption: "B"},
		3: {QuestionID: 3, BestOption: "B", WorstOption: "A"},
	}

	engine := NewEngine(responses, questions, keys)

	first, err := engine.ComputeResult(context.Background(), "attempt-1")
	if err != nil {
		t.Fatalf("ComputeResult: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := engine.ComputeResult(context.Background(), "attempt-1")
		if err != nil {
			t.Fatalf("ComputeResult: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d diverged: %+v vs %+v", i, again, first)
		}
	}
}

func TestComputeResultReadError(t *testing.T) {
	readErr := errors.New("connection reset")
	engine := NewEngine(&fakeResponses{err: readErr}, fakeQuestions{}, fakeKeys{})

	if _, err := engine.ComputeResult(context.Background(), "attempt-1"); !errors.Is(err, readErr) {
		t.Errorf("ComputeResult error = %v, want %v", err, readErr)
	}
}
