package validation

import "testing"

func TestNormalizeWebsite(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already normalized", "example.com", "example.com"},
		{"uppercase", "Example.COM", "example.com"},
		{"surrounding whitespace", "  example.com  ", "example.com"},
		{"mixed", "  WWW.Example.com ", "www.example.com"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeWebsite(tt.input); got != tt.want {
				t.Errorf("NormalizeWebsite(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		valid bool
	}{
		{"valid http", "http://example.com", true},
		{"valid https", "https://example.com/page", true},
		{"javascript scheme", "javascript:alert(1)", false},
		{"data scheme", "data:text/html,x", false},
		{"no scheme", "example.com", false},
		{"no host", "https://", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, _ := ValidateURL(tt.url)
			if valid != tt.valid {
				t.Errorf("ValidateURL(%q) = %v, want %v", tt.url, valid, tt.valid)
			}
		})
	}
}
