package feed

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minPasswordLength = 6
	passwordSpecials  = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`
)

// PasswordCheck is the client side strength rule for new accounts. The
// server accepts any non-empty password.
type PasswordCheck struct {
	Length  bool
	Upper   bool
	Special bool
}

func CheckPassword(password string) PasswordCheck {
	return PasswordCheck{
		Length:  utf8.RuneCountInString(password) >= minPasswordLength,
		Upper:   strings.IndexFunc(password, unicode.IsUpper) >= 0,
		Special: strings.ContainsAny(password, passwordSpecials),
	}
}

func (c PasswordCheck) Valid() bool {
	return c.Length && c.Upper && c.Special
}

// Problems lists the unmet rules in display order.
func (c PasswordCheck) Problems() []string {
	var problems []string
	if !c.Length {
		problems = append(problems, "at least 6 characters")
	}
	if !c.Upper {
		problems = append(problems, "one UPPERCASE letter")
	}
	if !c.Special {
		problems = append(problems, "one special character (!@#$%^&*...)")
	}
	return problems
}

type WeakPasswordError struct {
	Check PasswordCheck
}

func (e *WeakPasswordError) Error() string {
	return "password needs " + strings.Join(e.Check.Problems(), ", ")
}
