package validation

import (
	"fmt"
	"strings"
)

// ValidateStoreVerification enforces the rule that a store registration must
// carry at least one form of verification: an uploaded document or a written
// statement.
func ValidateStoreVerification(docURL, statement string) error {
	if strings.TrimSpace(docURL) == "" && strings.TrimSpace(statement) == "" {
		return fmt.Errorf("either a verification document or a verification statement is required")
	}
	return nil
}

// ValidateRating checks that a review rating is within the 1-5 scale.
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}
