package auth

import (
	"strings"
	"unicode/utf8"

	"github.com/mercata/storefront/services/user-service/internal/domain"
)

const minPasswordLength = 8

// specialChars is the accepted special-character set.
const specialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// commonPasswords is a small denylist of passwords rejected regardless of
// the other rules. Matching is case-insensitive.
var commonPasswords = []string{"password", "123456", "qwerty"}

// ValidatePassword applies the registration credential policy in order,
// stopping at the first violated rule. It has no side effects; a violation
// never leaves a partially created account behind.
func ValidatePassword(username, password string) error {
	if password == username {
		return domain.ErrPolicyViolation("username and password cannot be the same")
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return domain.ErrPolicyViolation("password must be at least 8 characters long")
	}
	if !strings.ContainsAny(password, specialChars) {
		return domain.ErrPolicyViolation("password must contain at least one special character")
	}
	if !containsUpperASCII(password) {
		return domain.ErrPolicyViolation("password must contain at least one capital letter")
	}
	if isCommonPassword(password) {
		return domain.ErrPolicyViolation("password is too common")
	}
	return nil
}

func containsUpperASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			return true
		}
	}
	return false
}

func isCommonPassword(password string) bool {
	lower := strings.ToLower(password)
	for _, p := range commonPasswords {
		if lower == p {
			return true
		}
	}
	return false
}
