package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// Verifier checks caller-supplied passwords against the configured
// access password.
type Verifier struct {
	secret string
}

// NewVerifier creates a Verifier for the given access password.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

// Verify reports whether password matches the configured secret. Both
// values are hashed with SHA-256 and the digests compared in constant
// time, so the duration does not depend on where the inputs differ or
// on their lengths. A missing configured secret or a missing supplied
// password never verifies.
func (v *Verifier) Verify(password string) bool {
	if v.secret == "" || password == "" {
		return false
	}

	supplied := sha256.Sum256([]byte(password))
	expected := sha256.Sum256([]byte(v.secret))
	return subtle.ConstantTimeCompare(supplied[:], expected[:]) == 1
}

// ExtractPassword pulls the caller's password from the Authorization
// header (Bearer token), falling back to the password field of the
// decoded request body. Returns "" when neither is present.
func ExtractPassword(r *http.Request, bodyPassword string) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimPrefix(header, bearerPrefix)
	}
	return bodyPassword
}
