package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStoreVerification(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		docURL    string
		statement string
		wantErr   bool
	}{
		{"Document Only", "https://docs/biz.pdf", "", false},
		{"Statement Only", "", "Registered company 0105561234567", false},
		{"Both", "https://docs/biz.pdf", "Registered company", false},
		{"Neither", "", "", true},
		{"Whitespace Only", "   ", "\t", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStoreVerification(tt.docURL, tt.statement)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRating(t *testing.T) {
	t.Parallel()
	for rating := 1; rating <= 5; rating++ {
		assert.NoError(t, ValidateRating(rating))
	}
	assert.Error(t, ValidateRating(0))
	assert.Error(t, ValidateRating(6))
	assert.Error(t, ValidateRating(-1))
}
