package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{"Empty Allowed", "", false},
		{"Local Mobile", "0812345678", false},
		{"Local Landline", "021234567", false},
		{"International", "+66812345678", false},
		{"Too Short", "081234", true},
		{"Too Long", "08123456789012", true},
		{"Wrong Prefix", "66812345678", true},
		{"Letters", "08abcdefgh", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhone(tt.phone)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
