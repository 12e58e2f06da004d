package lanyard

import "strings"

// Discord snowflake IDs are 64-bit unsigned integers, which print as
// 17-20 decimal digits. The ID is handled purely as digit text so values
// above the signed 64-bit range survive unchanged.
const (
	minUserIDLength = 17
	maxUserIDLength = 20
)

// ValidateUserID trims and validates a caller-supplied Discord user ID,
// returning the cleaned ID or a ValidationError describing the rejection.
func ValidateUserID(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return "", &ValidationError{Reason: "empty", Message: "User ID cannot be empty"}
	}
	for _, r := range clean {
		if r < '0' || r > '9' {
			return "", &ValidationError{Reason: "non-digit", Message: "User ID must contain only digits"}
		}
	}
	if len(clean) < minUserIDLength || len(clean) > maxUserIDLength {
		return "", &ValidationError{Reason: "length", Message: "User ID must be between 17-20 digits"}
	}
	return clean, nil
}
