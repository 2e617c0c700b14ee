package utils

import "testing"

func TestContains(t *testing.T) {
	tests := []struct {
		name  string
		slice []string
		item  string
		want  bool
	}{
		{"present", []string{"full-time", "contract"}, "contract", true},
		{"absent", []string{"full-time", "contract"}, "gig", false},
		{"empty slice", nil, "full-time", false},
		{"empty item", []string{"full-time", ""}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(tt.slice, tt.item); got != tt.want {
				t.Errorf("Contains(%v, %q) = %v, want %v", tt.slice, tt.item, got, tt.want)
			}
		})
	}
}

func TestGetStringOrDefault(t *testing.T) {
	if got := GetStringOrDefault("eur", "usd"); got != "eur" {
		t.Errorf("GetStringOrDefault(eur, usd) = %q, want eur", got)
	}
	if got := GetStringOrDefault("", "usd"); got != "usd" {
		t.Errorf("GetStringOrDefault(\"\", usd) = %q, want usd", got)
	}
}

func TestGenerateRequestID_Unique(t *testing.T) {
	a := GenerateRequestID()
	b := GenerateRequestID()
	if a == "" || a == b {
		t.Errorf("request ids should be non-empty and unique: %q, %q", a, b)
	}
}
