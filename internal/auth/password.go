package auth

import (
	"fmt"
	"regexp"
)

var (
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	digitPattern   = regexp.MustCompile(`[0-9]`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// PasswordPolicy validates candidate passwords before hashing. Reuse of the
// current password is checked separately against the stored hash.
type PasswordPolicy struct {
	MinLength int
}

func NewPasswordPolicy(minLength int) PasswordPolicy {
	if minLength <= 0 {
		minLength = 12
	}
	return PasswordPolicy{MinLength: minLength}
}

func (p PasswordPolicy) Validate(password string) error {
	if len(password) < p.MinLength {
		return fmt.Errorf("password must be at least %d characters long", p.MinLength)
	}
	if !upperPattern.MatchString(password) {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !digitPattern.MatchString(password) {
		return fmt.Errorf("password must contain at least one number")
	}
	if !specialPattern.MatchString(password) {
		return fmt.Errorf("password must contain at least one special character (e.g., @, #, $)")
	}
	return nil
}
