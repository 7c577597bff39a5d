package utils

import "testing"

func TestValidateURL(t *testing.T) {
	valid := []string{"https://example.com", "http://example.com/path?q=1"}
	for _, u := range valid {
		if !ValidateURL(u) {
			t.Fatalf("expected %q to be valid", u)
		}
	}

	invalid := []string{"", "example.com", "ftp://example.com", "javascript:alert(1)", "https://"}
	for _, u := range invalid {
		if ValidateURL(u) {
			t.Fatalf("expected %q to be invalid", u)
		}
	}
}

func TestSanitizeURL(t *testing.T) {
	if got := SanitizeURL("  https://example.com "); got != "https://example.com" {
		t.Fatalf("expected trimmed URL, got %q", got)
	}
	if got := SanitizeURL("JavaScript:alert(1)"); got != "" {
		t.Fatalf("expected javascript URL stripped, got %q", got)
	}
}

func TestValidateEmail(t *testing.T) {
	if !ValidateEmail("reviewer@example.com") {
		t.Fatal("expected valid email")
	}
	if ValidateEmail("not-an-email") {
		t.Fatal("expected invalid email")
	}
}
