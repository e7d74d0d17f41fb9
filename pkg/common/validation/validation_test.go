package validation

import (
	"errors"
	"testing"

	tferrors "github.com/vnykmshr/taskflow/pkg/common/errors"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"positive value", 5, false},
		{"one", 1, false},
		{"zero", 0, true},
		{"negative", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("test", "field", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%d) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, tferrors.ErrInvalidConfiguration) {
				t.Errorf("error does not match ErrInvalidConfiguration: %v", err)
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	if err := ValidateNonNegative("test", "field", 0); err != nil {
		t.Errorf("zero should be valid: %v", err)
	}
	if err := ValidateNonNegative("test", "field", -1); err == nil {
		t.Error("negative should be invalid")
	}
}

func TestValidateNotNil(t *testing.T) {
	if err := ValidateNotNil("test", "field", struct{}{}); err != nil {
		t.Errorf("non-nil should be valid: %v", err)
	}
	if err := ValidateNotNil("test", "field", nil); err == nil {
		t.Error("nil should be invalid")
	}
}

func TestValidateNotEmpty(t *testing.T) {
	if err := ValidateNotEmpty("test", "field", "value"); err != nil {
		t.Errorf("non-empty should be valid: %v", err)
	}
	if err := ValidateNotEmpty("test", "field", ""); err == nil {
		t.Error("empty should be invalid")
	}
}
