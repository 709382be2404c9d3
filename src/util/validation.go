package util

import (
	"regexp"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

func ValidateTransactionType(t string) bool {
	return t == "income" || t == "expense"
}

func ValidateTheme(theme string) bool {
	return theme == "light" || theme == "dark"
}
