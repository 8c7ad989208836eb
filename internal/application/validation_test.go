package application

import (
	"errors"
	"math"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "name",
			value:     "Acme",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "name",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "address",
			value:     " \t ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
			}
		})
	}
}

func TestValidateCoordinate(t *testing.T) {
	if err := ValidateCoordinate(7.8731, 80.7718); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := ValidateCoordinate(math.NaN(), 0)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if valErr.Field != "coordinate" {
		t.Errorf("expected field coordinate, got %s", valErr.Field)
	}
}

func TestPreconditionError_Is(t *testing.T) {
	err := &PreconditionError{Reason: "placement mode is off"}

	if !errors.Is(err, ErrPrecondition) {
		t.Error("expected PreconditionError to match ErrPrecondition")
	}
	if !IsPrecondition(err) {
		t.Error("expected IsPrecondition to be true")
	}
	if IsPrecondition(errors.New("other")) {
		t.Error("expected IsPrecondition to be false for plain errors")
	}

	wrapped := &PreconditionError{Reason: "no session", Err: ErrNoSession}
	if !errors.Is(wrapped, ErrNoSession) {
		t.Error("expected wrapped cause to be reachable")
	}
}

func TestNetworkError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &NetworkError{Op: "update pin", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("expected NetworkError to unwrap to its cause")
	}
	if err.Error() != "update pin failed: connection refused" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
