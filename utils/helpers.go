package utils

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// --- HTTP Response Helpers ---

// ErrorResponse returns a JSON error response with the given status code and message
func ErrorResponse(re *core.RequestEvent, status int, message string) error {
	return re.JSON(status, map[string]string{"error": message})
}

// NotFoundResponse returns a 404 JSON error response
func NotFoundResponse(re *core.RequestEvent, message string) error {
	return ErrorResponse(re, http.StatusNotFound, message)
}

// BadRequestResponse returns a 400 JSON error response
func BadRequestResponse(re *core.RequestEvent, message string) error {
	return ErrorResponse(re, http.StatusBadRequest, message)
}

// InternalErrorResponse returns a 500 JSON error response
func InternalErrorResponse(re *core.RequestEvent, message string) error {
	return ErrorResponse(re, http.StatusInternalServerError, message)
}

// GoneResponse returns a 410 JSON error response (expired invite links)
func GoneResponse(re *core.RequestEvent, message string) error {
	return ErrorResponse(re, http.StatusGone, message)
}

// SuccessResponse returns a 200 JSON success response with a message
func SuccessResponse(re *core.RequestEvent, message string) error {
	return re.JSON(http.StatusOK, map[string]string{"message": message})
}

// DataResponse returns a JSON response with arbitrary data
func DataResponse(re *core.RequestEvent, status int, data any) error {
	return re.JSON(status, data)
}

// --- Date Helpers ---

// ParseExpiryDate parses an expiry date string in the formats PocketBase
// stores or clients submit.
func ParseExpiryDate(dateStr string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04:05.000Z",
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04", // datetime-local inputs
		"2006-01-02",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("could not parse date: %s", dateStr)
}

// --- Validation Helpers ---

// NormalizeEmail normalizes an email address (lowercase, trimmed)
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail performs the minimal shape check used before any remote call.
// Full validation is left to the mail provider.
func IsValidEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t\n")
}
