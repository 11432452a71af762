package utils

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"chef@brigade.kitchen", true},
		{"sous.chef@example.co.uk", true},
		{"no-at-sign", false},
		{"@leading.at", false},
		{"trailing-at@", false},
		{"no-dot@domain", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidEmail(tt.email); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestIsComplexPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"meets all requirements", "Brigade#9", true},
		{"too short", "Br#9aB", false},
		{"no uppercase", "brigade#9", false},
		{"no lowercase", "BRIGADE#9", false},
		{"no digit", "Brigade#x", false},
		{"no special", "Brigade99", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsComplexPassword(tt.password); got != tt.want {
				t.Errorf("IsComplexPassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestGenerateSecureToken(t *testing.T) {
	first, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatalf("GenerateSecureToken: %v", err)
	}
	second, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatalf("GenerateSecureToken: %v", err)
	}
	if first == second {
		t.Error("two generated tokens are identical")
	}
	if len(first) == 0 {
		t.Error("generated token is empty")
	}
}
