package validation

import (
	"fmt"
	"regexp"
)

// Thai phone numbers: +66 or a leading 0, followed by 8 or 9 digits.
var phoneRegex = regexp.MustCompile(`^(\+66|0)\d{8,9}$`)

// ValidatePhone validates a Thai phone number. An empty phone is allowed;
// callers decide whether the field is required.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phoneRegex.MatchString(phone) {
		return fmt.Errorf("phone must start with +66 or 0 followed by 8-9 digits")
	}
	return nil
}
