package auth

import (
	"net/http/httptest"
	"testing"
)

func TestVerify(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		password string
		want     bool
	}{
		{"match", "s3cret", "s3cret", true},
		{"mismatch", "s3cret", "wrong", false},
		{"prefix is not a match", "s3cret", "s3cre", false},
		{"longer is not a match", "s3cret", "s3cret1", false},
		{"missing password", "s3cret", "", false},
		{"missing secret", "", "anything", false},
		{"both missing never verifies", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVerifier(tt.secret)
			if got := v.Verify(tt.password); got != tt.want {
				t.Errorf("Verify(%q) with secret %q = %v, want %v", tt.password, tt.secret, got, tt.want)
			}
		})
	}
}

func TestExtractPassword(t *testing.T) {
	t.Run("bearer header wins over body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", nil)
		r.Header.Set("Authorization", "Bearer from-header")

		if got := ExtractPassword(r, "from-body"); got != "from-header" {
			t.Errorf("Expected header password, got %q", got)
		}
	})

	t.Run("falls back to body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", nil)

		if got := ExtractPassword(r, "from-body"); got != "from-body" {
			t.Errorf("Expected body password, got %q", got)
		}
	})

	t.Run("non-bearer header is ignored", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", nil)
		r.Header.Set("Authorization", "Basic dXNlcjpwdw==")

		if got := ExtractPassword(r, "from-body"); got != "from-body" {
			t.Errorf("Expected body password, got %q", got)
		}
	})

	t.Run("nothing supplied", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/", nil)

		if got := ExtractPassword(r, ""); got != "" {
			t.Errorf("Expected empty password, got %q", got)
		}
	})
}
