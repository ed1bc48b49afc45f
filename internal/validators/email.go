package validators

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func IsEmailValid(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}
