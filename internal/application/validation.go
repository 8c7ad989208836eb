package application

import (
	"fmt"
	"strings"

	"fabmap/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts field names to readable words for error messages
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"pinID":   "pin ID",
		"name":    "name",
		"address": "address",
		"query":   "query",
		"email":   "email",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateCoordinate checks that lat/lng form a usable WGS84 position
func ValidateCoordinate(lat, lng float64) error {
	if err := (domain.Coordinate{Lat: lat, Lng: lng}).Validate(); err != nil {
		return &ValidationError{
			Field:   "coordinate",
			Message: err.Error(),
		}
	}
	return nil
}
