package models

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validBank() *Bank {
	return &Bank{
		Name:       "Culinary Leadership Assessment",
		Slug:       "culinary-leadership",
		Categories: []string{"Communication & Active Listening", "Decision Making Under Pressure"},
		Questions: []BankQuestion{
			{
				Position: 1,
				Category: "Communication & Active Listening",
				Text:     "The expeditor reports the grill is falling behind. What do you do?",
				Options: []BankOption{
					{Value: "A", Text: "Ask the cook what they need."},
					{Value: "B", Text: "Shout across the pass."},
					{Value: "C", Text: "Take over without a word."},
					{Value: "D", Text: "Slow every ticket down."},
					{Value: "E", Text: "Wait until after service."},
				},
				Answer: BankAnswer{Best: "A", Worst: "B"},
			},
			{
				Position: 2,
				Category: "Decision Making Under Pressure",
				Text:     "The walk-in fails mid-service. What is your first move?",
				Options: []BankOption{
					{Value: "A", Text: "Keep cooking."},
					{Value: "B", Text: "Triage the product at once."},
					{Value: "C", Text: "Close the kitchen."},
					{Value: "D", Text: "Ask the manager to decide."},
					{Value: "E", Text: "Discount the affected dishes."},
				},
				Answer: BankAnswer{Best: "B", Worst: "A"},
			},
		},
	}
}

func TestBankValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Bank)
		wantErr string
	}{
		{"valid bank", func(b *Bank) {}, ""},
		{"missing name", func(b *Bank) { b.Name = "" }, "no name"},
		{"no questions", func(b *Bank) { b.Questions = nil }, "no questions"},
		{"position zero", func(b *Bank) { b.Questions[0].Position = 0 }, "out of range"},
		{"position gap", func(b *Bank) { b.Questions[1].Position = 3 }, "out of range"},
		{"duplicate position", func(b *Bank) { b.Questions[1].Position = 1 }, "duplicate question position"},
		{"unknown category", func(b *Bank) { b.Questions[0].Category = "Knife Skills" }, "unknown category"},
		{"four options", func(b *Bank) { b.Questions[0].Options = b.Questions[0].Options[:4] }, "want 5"},
		{"duplicate option value", func(b *Bank) { b.Questions[0].Options[1].Value = "A" }, "duplicate option"},
		{"best equals worst", func(b *Bank) { b.Questions[0].Answer.Worst = "A" }, "best and worst"},
		{"best not an option", func(b *Bank) { b.Questions[0].Answer.Best = "F" }, "unknown best option"},
		{"worst not an option", func(b *Bank) { b.Questions[0].Answer.Worst = "F" }, "unknown worst option"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bank := validBank()
			tt.mutate(bank)

			err := bank.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadBank(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.yaml")

	data := `name: Culinary Leadership Assessment
slug: culinary-leadership
categories:
  - "Communication & Active Listening"
questions:
  - position: 1
    category: "Communication & Active Listening"
    text: "The expeditor reports the grill is falling behind. What do you do?"
    options:
      - value: A
        text: "Ask the cook what they need."
      - value: B
        text: "Shout across the pass."
      - value: C
        text: "Take over without a word."
      - value: D
        text: "Slow every ticket down."
      - value: E
        text: "Wait until after service."
    answer:
      best: A
      worst: B
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	bank, err := LoadBank(path)
	if err != nil {
		t.Fatalf("LoadBank: %v", err)
	}
	if bank.Name != "Culinary Leadership Assessment" {
		t.Errorf("Name = %q", bank.Name)
	}
	if len(bank.Questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(bank.Questions))
	}
	q := bank.Questions[0]
	if q.Position != 1 || len(q.Options) != 5 || q.Answer.Best != "A" || q.Answer.Worst != "B" {
		t.Errorf("question = %+v", q)
	}
}

func TestLoadBankMissingFile(t *testing.T) {
	if _, err := LoadBank(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadBank on a missing file did not fail")
	}
}

func TestNextAttemptType(t *testing.T) {
	tests := []struct {
		completedPrior int64
		want           string
	}{
		{0, AttemptTypePre},
		{1, AttemptTypePost},
		{5, AttemptTypePost},
	}
	for _, tt := range tests {
		if got := NextAttemptType(tt.completedPrior); got != tt.want {
			t.Errorf("NextAttemptType(%d) = %q, want %q", tt.completedPrior, got, tt.want)
		}
	}
}
