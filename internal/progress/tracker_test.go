package progress

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"clap-go/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeAttempts struct {
	attempts    map[string]*models.Attempt
	completeErr error
	cursorErr   error
}

func newFakeAttempts(attempts ...*models.Attempt) *fakeAttempts {
	f := &fakeAttempts{attempts: make(map[string]*models.Attempt)}
	for _, a := range attempts {
		f.attempts[a.ID] = a
	}
	return f
}

func (f *fakeAttempts) GetAttempt(ctx context.Context, id string) (*models.Attempt, error) {
	a, ok := f.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAttempts) UpdateCursor(ctx context.Context, id string, cursor int) error {
	if f.cursorErr != nil {
		return f.cursorErr
	}
	f.attempts[id].LastQuestionSeen = cursor
	return nil
}

func (f *fakeAttempts) CompleteAttempt(ctx context.Context, id string, completedAt time.Time, report *models.AttemptResult) error {
	if f.completeErr != nil {
		return f.completeErr
	}
	a := f.attempts[id]
	a.Status = models.AttemptCompleted
	a.CompletedAt = &completedAt
	a.ReportData = report
	return nil
}

func (f *fakeAttempts) ResetAttempt(ctx context.Context, id string) error {
	a := f.attempts[id]
	a.Status = models.AttemptInProgress
	a.LastQuestionSeen = 1
	a.CompletedAt = nil
	a.ReportData = nil
	return nil
}

type fakeResponses struct {
	saved     map[string]models.Response
	upsertErr error
	deleteErr error
}

func newFakeResponses() *fakeResponses {
	return &fakeResponses{saved: make(map[string]models.Response)}
}

func (f *fakeResponses) UpsertResponse(ctx context.Context, response *models.Response) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	key := fmt.Sprintf("%s/%d", response.AttemptID, response.QuestionID)
	f.saved[key] = *response
	return nil
}

func (f *fakeResponses) DeleteResponsesForAttempt(ctx context.Context, attemptID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for key := range f.saved {
		delete(f.saved, key)
	}
	return nil
}

type fakeCounter struct {
	count int
	err   error
}

func (f *fakeCounter) CountQuestions(ctx context.Context, assessmentID int) (int, error) {
	return f.count, f.err
}

type fakeScorer struct {
	result *models.AttemptResult
	err    error
	calls  int
}

func (f *fakeScorer) ComputeResult(ctx context.Context, attemptID string) (*models.AttemptResult, error) {
	f.calls++
	return f.result, f.err
}

func inProgressAttempt(cursor int) *models.Attempt {
	return &models.Attempt{
		ID:               "attempt-1",
		ParticipantID:    7,
		AssessmentID:     1,
		Type:             models.AttemptTypePre,
		Status:           models.AttemptInProgress,
		LastQuestionSeen: cursor,
		StartedAt:        time.Now().UTC(),
	}
}

func TestSubmitAnswerValidation(t *testing.T) {
	tracker := NewTracker(newFakeAttempts(), newFakeResponses(), &fakeCounter{count: 20}, &fakeScorer{}, zap.NewNop())

	tests := []struct {
		name        string
		best, worst string
	}{
		{"missing best", "", "B"},
		{"missing worst", "A", ""},
		{"missing both", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tracker.SubmitAnswer(context.Background(), "attempt-1", 1, tt.best, tt.worst)
			var trackerErr *Error
			if !errors.As(err, &trackerErr) || trackerErr.Code != CodeValidation {
				t.Errorf("SubmitAnswer error = %v, want code %q", err, CodeValidation)
			}
		})
	}
}

func TestSubmitAnswerUnknownAttempt(t *testing.T) {
	tracker := NewTracker(newFakeAttempts(), newFakeResponses(), &fakeCounter{count: 20}, &fakeScorer{}, zap.NewNop())

	_, err := tracker.SubmitAnswer(context.Background(), "no-such-attempt", 1, "A", "B")
	var trackerErr *Error
	if !errors.As(err, &trackerErr) || trackerErr.Code != CodeAttemptNotFound {
		t.Errorf("SubmitAnswer error = %v, want code %q", err, CodeAttemptNotFound)
	}
}

func TestSubmitAnswerAdvancesCursor(t *testing.T) {
	attempts := newFakeAttempts(inProgressAttempt(3))
	responses := newFakeResponses()
	tracker := NewTracker(attempts, responses, &fakeCounter{count: 20}, &fakeScorer{}, zap.NewNop())

	outcome, err := tracker.SubmitAnswer(context.Background(), "attempt-1", 3, "A", "B")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if outcome.Completed {
		t.Error("attempt completed mid-sequence")
	}
	if outcome.NextQuestion != 4 {
		t.Errorf("NextQuestion = %d, want 4", outcome.NextQuestion)
	}
	if got := attempts.attempts["attempt-1"].LastQuestionSeen; got != 4 {
		t.Errorf("stored cursor = %d, want 4", got)
	}
	if saved := responses.saved["attempt-1/3"]; saved.BestOption != "A" || saved.WorstOption != "B" {
		t.Errorf("stored response = %+v", saved)
	}
}

func TestSubmitAnswerResubmitOverwrites(t *testing.T) {
	attempts := newFakeAttempts(inProgressAttempt(5))
	responses := newFakeResponses()
	tracker := NewTracker(attempts, responses, &fakeCounter{count: 20}, &fakeScorer{}, zap.NewNop())

	if _, err := tracker.SubmitAnswer(context.Background(), "attempt-1", 5, "A", "B"); err != nil {
		t.Fatalf("first SubmitAnswer: %v", err)
	}
	// Participant went back and changed their mind.
	attempts.attempts["attempt-1"].LastQuestionSeen = 5
	if _, err := tracker.SubmitAnswer(context.Background(), "attempt-1", 5, "C", "D"); err != nil {
		t.Fatalf("second SubmitAnswer: %v", err)
	}

	if len(responses.saved) != 1 {
		t.Fatalf("stored %d responses, want 1", len(responses.saved))
	}
	saved := responses.saved["attempt-1/5"]
	if saved.BestOption != "C" || saved.WorstOption != "D" {
		t.Errorf("stored response after resubmit = %+v, want C/D", saved)
	}
}

func TestSubmitAnswerFinalQuestionCompletes(t *testing.T) {
	attempts := newFakeAttempts(inProgressAttempt(20))
	report := &models.AttemptResult{
		Version:           models.ReportSchemaVersion,
		TotalScore:        30,
		TotalPossible:     40,
		OverallPercentage: 75,
		CategoryResults:   []models.CategoryResult{},
	}
	scorer := &fakeScorer{result: report}
	tracker := NewTracker(attempts, newFakeResponses(), &fakeCounter{count: 20}, scorer, zap.NewNop())

	outcome, err := tracker.SubmitAnswer(context.Background(), "attempt-1", 20, "A", "B")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if !outcome.Completed {
		t.Error("final answer did not complete the attempt")
	}
	if outcome.NextQuestion != 0 {
		t.Errorf("NextQuestion = %d on completion, want unset", outcome.NextQuestion)
	}

	stored := attempts.attempts["attempt-1"]
	if stored.Status != models.AttemptCompleted {
		t.Errorf("status = %q, want %q", stored.Status, models.AttemptCompleted)
	}
	if stored.CompletedAt == nil {
		t.Error("CompletedAt not set")
	}
	if stored.ReportData != report {
		t.Errorf("ReportData = %+v, want the scored report", stored.ReportData)
	}
}

func TestSubmitAnswerScoringFailureLeavesAttemptOpen(t *testing.T) {
	attempts := newFakeAttempts(inProgressAttempt(20))
	scoreErr := errors.New("connection reset")
	tracker := NewTracker(attempts, newFakeResponses(), &fakeCounter{count: 20}, &fakeScorer{err: scoreErr}, zap.NewNop())

	_, err := tracker.SubmitAnswer(context.Background(), "attempt-1", 20, "A", "B")
	if !errors.Is(err, scoreErr) {
		t.Fatalf("SubmitAnswer error = %v, want %v", err, scoreErr)
	}

	stored := attempts.attempts["attempt-1"]
	if stored.Status != models.AttemptInProgress {
		t.Errorf("status = %q after scoring failure, want %q", stored.Status, models.AttemptInProgress)
	}
	if stored.LastQuestionSeen != 20 {
		t.Errorf("cursor = %d after scoring failure, want 20", stored.LastQuestionSeen)
	}
	if stored.ReportData != nil {
		t.Error("report stored despite scoring failure")
	}
}

func TestSubmitAnswerQuestionCountFallback(t *testing.T) {
	// When the question count is unavailable the tracker assumes the default
	// sequence length, so the cursor sitting at that length completes.
	attempts := newFakeAttempts(inProgressAttempt(DefaultQuestionCount))
	scorer := &fakeScorer{result: &models.AttemptResult{Version: models.ReportSchemaVersion, CategoryResults: []models.CategoryResult{}}}
	counter := &fakeCounter{err: errors.New("connection reset")}
	tracker := NewTracker(attempts, newFakeResponses(), counter, scorer, zap.NewNop())

	outcome, err := tracker.SubmitAnswer(context.Background(), "attempt-1", DefaultQuestionCount, "A", "B")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if !outcome.Completed {
		t.Error("attempt did not complete under the fallback question count")
	}
	if scorer.calls != 1 {
		t.Errorf("scorer ran %d times, want 1", scorer.calls)
	}
}

func TestGoToPreviousQuestion(t *testing.T) {
	tests := []struct {
		name        string
		current     int
		want        int
		wantMessage bool
	}{
		{"mid sequence", 5, 4, false},
		{"second question", 2, 1, false},
		{"first question is the floor", 1, 1, true},
		{"below the floor", 0, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := newFakeAttempts(inProgressAttempt(tt.current))
			tracker := NewTracker(attempts, newFakeResponses(), &fakeCounter{count: 20}, &fakeScorer{}, zap.NewNop())

			outcome, err := tracker.GoToPreviousQuestion(context.Background(), "attempt-1", tt.current)
			if err != nil {
				t.Fatalf("GoToPreviousQuestion: %v", err)
			}
			if outcome.PreviousQuestion != tt.want {
				t.Errorf("PreviousQuestion = %d, want %d", outcome.PreviousQuestion, tt.want)
			}
			if (outcome.Message != "") != tt.wantMessage {
				t.Errorf("Message = %q, wantMessage %v", outcome.Message, tt.wantMessage)
			}
		})
	}
}

func TestResetAttempt(t *testing.T) {
	completed := time.Now().UTC()
	attempt := inProgressAttempt(20)
	attempt.Status = models.AttemptCompleted
	attempt.CompletedAt = &completed
	attempt.ReportData = &models.AttemptResult{Version: models.ReportSchemaVersion}

	attempts := newFakeAttempts(attempt)
	responses := newFakeResponses()
	responses.saved["attempt-1/1"] = models.Response{AttemptID: "attempt-1", QuestionID: 1}
	responses.saved["attempt-1/2"] = models.Response{AttemptID: "attempt-1", QuestionID: 2}

	tracker := NewTracker(attempts, responses, &fakeCounter{count: 20}, &fakeScorer{}, zap.NewNop())
	if err := tracker.ResetAttempt(context.Background(), "attempt-1"); err != nil {
		t.Fatalf("ResetAttempt: %v", err)
	}

	if len(responses.saved) != 0 {
		t.Errorf("%d responses survived the reset", len(responses.saved))
	}
	stored := attempts.attempts["attempt-1"]
	if stored.Status != models.AttemptInProgress || stored.LastQuestionSeen != 1 {
		t.Errorf("attempt after reset = status %q cursor %d", stored.Status, stored.LastQuestionSeen)
	}
	if stored.CompletedAt != nil || stored.ReportData != nil {
		t.Error("completion fields survived the reset")
	}
}

func TestResetAttemptDeleteFailure(t *testing.T) {
	attempts := newFakeAttempts(inProgressAttempt(5))
	responses := newFakeResponses()
	responses.deleteErr = errors.New("connection reset")

	tracker := NewTracker(attempts, responses, &fakeCounter{count: 20}, &fakeScorer{}, zap.NewNop())
	err := tracker.ResetAttempt(context.Background(), "attempt-1")

	var trackerErr *Error
	if !errors.As(err, &trackerErr) || trackerErr.Code != CodeSaveFailed {
		t.Errorf("ResetAttempt error = %v, want code %q", err, CodeSaveFailed)
	}
}
