package models

import (
	"fmt"
	"os"
	"time"

	"github.com/lib/pq"
	"gopkg.in/yaml.v3"
)

// Assessment is one published question bank participants are assessed against.
type Assessment struct {
	ID         int    `gorm:"primaryKey"`
	Name       string `gorm:"uniqueIndex"`
	Slug       string
	Categories pq.StringArray `gorm:"type:text[]"`
	CreatedAt  time.Time
}

// Question is a single best/worst scenario prompt. Position is 1-based and
// contiguous within an assessment.
type Question struct {
	ID           int `gorm:"primaryKey"`
	AssessmentID int `gorm:"index:idx_question_position,unique"`
	Position     int `gorm:"index:idx_question_position,unique"`
	Category     string
	Text         string
	Options      []Option `gorm:"foreignKey:QuestionID"`
}

// Option is one of the five selectable choices for a question. Value is the
// option letter ("A".."E") and is unique within its question.
type Option struct {
	QuestionID int    `gorm:"primaryKey"`
	Value      string `gorm:"primaryKey;size:4"`
	Text       string
}

// CorrectAnswer is the answer key for one question: the canonical best and
// worst option letters.
type CorrectAnswer struct {
	QuestionID  int    `gorm:"primaryKey"`
	BestOption  string `gorm:"size:4"`
	WorstOption string `gorm:"size:4"`
}

// Bank is the on-disk YAML form of an assessment: questions, options and the
// answer key together, loaded once at startup and seeded into the database.
type Bank struct {
	Name       string         `yaml:"name"`
	Slug       string         `yaml:"slug"`
	Categories []string       `yaml:"categories"`
	Questions  []BankQuestion `yaml:"questions"`
}

type BankQuestion struct {
	Position int          `yaml:"position"`
	Category string       `yaml:"category"`
	Text     string       `yaml:"text"`
	Options  []BankOption `yaml:"options"`
	Answer   BankAnswer   `yaml:"answer"`
}

type BankOption struct {
	Value string `yaml:"value"`
	Text  string `yaml:"text"`
}

type BankAnswer struct {
	Best  string `yaml:"best"`
	Worst string `yaml:"worst"`
}

// LoadBank reads and parses the question bank YAML file.
func LoadBank(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}

	var bank Bank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("failed to unmarshal question bank YAML: %w", err)
	}

	if err := bank.Validate(); err != nil {
		return nil, fmt.Errorf("invalid question bank: %w", err)
	}
	return &bank, nil
}

// Validate enforces the bank invariants: contiguous 1-based positions, five
// options per question, known categories, and an answer key whose best and
// worst letters differ and reference options of that question.
func (b *Bank) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("bank has no name")
	}
	if len(b.Questions) == 0 {
		return fmt.Errorf("bank has no questions")
	}

	categories := make(map[string]bool, len(b.Categories))
	for _, c := range b.Categories {
		categories[c] = true
	}

	seen := make(map[int]bool, len(b.Questions))
	for _, q := range b.Questions {
		if q.Position < 1 || q.Position > len(b.Questions) {
			return fmt.Errorf("question position %d out of range", q.Position)
		}
		if seen[q.Position] {
			return fmt.Errorf("duplicate question position %d", q.Position)
		}
		seen[q.Position] = true

		if !categories[q.Category] {
			return fmt.Errorf("question %d has unknown category %q", q.Position, q.Category)
		}
		if len(q.Options) != 5 {
			return fmt.Errorf("question %d has %d options, want 5", q.Position, len(q.Options))
		}

		values := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if values[o.Value] {
				return fmt.Errorf("question %d has duplicate option %q", q.Position, o.Value)
			}
			values[o.Value] = true
		}

		if q.Answer.Best == q.Answer.Worst {
			return fmt.Errorf("question %d answer key: best and worst are both %q", q.Position, q.Answer.Best)
		}
		if !values[q.Answer.Best] {
			return fmt.Errorf("question %d answer key references unknown best option %q", q.Position, q.Answer.Best)
		}
		if !values[q.Answer.Worst] {
			return fmt.Errorf("question %d answer key references unknown worst option %q", q.Position, q.Answer.Worst)
		}
	}
	return nil
}
