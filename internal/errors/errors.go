package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"

	"github.com/julianstephens/tablebot/internal/api"
	"github.com/julianstephens/tablebot/internal/keyring"
	"github.com/julianstephens/tablebot/internal/logger"
)

// Format formats an error message with a consistent "Error: " prefix,
// followed by a hint when the failure has a known remedy
func Format(err error) string {
	if err == nil {
		return ""
	}
	if hint := Hint(err); hint != "" {
		return fmt.Sprintf("Error: %v\nHint: %s", err, hint)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Hint suggests a next step for failures the user can fix themselves
func Hint(err error) string {
	var apiErr *api.APIError
	switch {
	case stderrors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden):
		return "the backend rejected the bearer token; store a new one with `tablebot token set`"
	case stderrors.As(err, &apiErr) && apiErr.Status == http.StatusTooManyRequests:
		return "the backend is rate limiting requests; wait a moment and retry"
	case stderrors.Is(err, context.DeadlineExceeded):
		return "the backend did not answer in time; raise --timeout or check the base URL"
	case stderrors.Is(err, keyring.ErrKeyringUnavailable):
		return "no OS keyring is available; set TABLEBOT_TOKEN instead"
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
