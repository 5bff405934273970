// pkg/validate/parse.go
package validate

import (
	"errors"
	"strconv"
	"strings"
)

// ParseInt converts a raw CSV field to int64
func ParseInt(value string) (int64, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0, errors.New("empty string")
	}
	return strconv.ParseInt(cleaned, 10, 64)
}

// ParseFloat converts a raw CSV field to float64
func ParseFloat(value string) (float64, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0, errors.New("empty string")
	}
	return strconv.ParseFloat(cleaned, 64)
}

// Missing reports whether a raw CSV field should be treated as absent.
// Bare "null"/"NULL" markers count as absent, matching common export tools.
func Missing(value string) bool {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return true
	}
	switch cleaned {
	case "null", "NULL", "nil", "NIL":
		return true
	}
	return false
}
