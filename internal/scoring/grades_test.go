package scoring

import "testing"

func TestClassifyIndividualScale(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  string
	}{
		{"top of scale", 8, GradeExceptional},
		{"lower exceptional bound", 7, GradeExceptional},
		{"high", 6, GradeHigh},
		{"moderate", 4, GradeModerate},
		{"lower moderate bound", 3, GradeModerate},
		{"developing", 2, GradeDeveloping},
		// 1 sits in two ranges; listed order resolves it to Developing.
		{"overlap resolves to developing", 1, GradeDeveloping},
		{"zero", 0, GradeNeedsDevelopment},
		{"negative is out of domain", -1, GradeNotAvailable},
		{"beyond scale maximum", 9, GradeNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.score, ScaleIndividual); got != tt.want {
				t.Errorf("Classify(%d, individual) = %q, want %q", tt.score, got, tt.want)
			}
		})
	}
}

func TestClassifyOverallScale(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  string
	}{
		{"perfect score", 40, GradeExceptional},
		{"lower exceptional bound", 36, GradeExceptional},
		{"upper high bound", 35, GradeHigh},
		{"lower high bound", 30, GradeHigh},
		{"upper moderate bound", 29, GradeModerate},
		{"lower moderate bound", 20, GradeModerate},
		{"upper developing bound", 19, GradeDeveloping},
		{"lower developing bound", 10, GradeDeveloping},
		{"upper needs-development bound", 9, GradeNeedsDevelopment},
		{"zero", 0, GradeNeedsDevelopment},
		{"negative is out of domain", -5, GradeNotAvailable},
		{"beyond scale maximum", 41, GradeNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.score, ScaleOverall); got != tt.want {
				t.Errorf("Classify(%d, overall) = %q, want %q", tt.score, got, tt.want)
			}
		})
	}
}

func TestClassifyUnknownScale(t *testing.T) {
	if got := Classify(5, "percentile"); got != GradeNotAvailable {
		t.Errorf("Classify on unknown scale = %q, want %q", got, GradeNotAvailable)
	}
}

func TestDescribe(t *testing.T) {
	for category, grades := range gradeDescriptions {
		for grade := range grades {
			if Describe(category, grade) == "" {
				t.Errorf("Describe(%q, %q) returned empty prose", category, grade)
			}
		}
	}

	if got := Describe(CategoryOverall, GradeNotAvailable); got != "" {
		t.Errorf("Describe for ungraded result = %q, want empty", got)
	}
	if got := Describe("Knife Skills", GradeHigh); got != "" {
		t.Errorf("Describe for unknown category = %q, want empty", got)
	}
}
