// Package validation checks the required fields of the booking sub-flow forms.
//
// Validators are shared by the huh forms, which show the message inline, and by
// the controller, which refuses to mutate state or call the backend on failure.
package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/tablebot/internal/constants"
)

// Field names a form input that failed validation
type Field string

const (
	FieldReference Field = "reference"
	FieldFirstName Field = "first_name"
	FieldSurname   Field = "surname"
	FieldDate      Field = "date"
	FieldTime      Field = "time"
	FieldPartySize Field = "party_size"
)

// Error is a local form validation failure; Message is shown to the user as-is
type Error struct {
	Field   Field
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Reference requires a non-blank booking reference and returns it trimmed.
func Reference(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", &Error{Field: FieldReference, Message: constants.ReferenceRequiredMessage}
	}
	return ref, nil
}

// Customer requires both names to be non-blank and returns them trimmed.
func Customer(firstName, surname string) (string, string, error) {
	firstName, err := Name(FieldFirstName, firstName)
	if err != nil {
		return "", "", err
	}
	surname, err = Name(FieldSurname, surname)
	if err != nil {
		return "", "", err
	}
	return firstName, surname, nil
}

// Name requires one customer name field to be non-blank.
func Name(field Field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &Error{Field: field, Message: constants.CustomerRequiredMessage}
	}
	return s, nil
}

// Date requires an ISO date (YYYY-MM-DD).
func Date(s string) (string, error) {
	s = strings.TrimSpace(s)
	d, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return "", &Error{Field: FieldDate, Message: "Please enter a date as YYYY-MM-DD."}
	}
	return d.Format(constants.DateFormat), nil
}

// Time accepts HH:MM or HH:MM:SS and returns the backend's HH:MM:SS form.
func Time(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{constants.TimeFormat, constants.ShortTimeFormat} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(constants.TimeFormat), nil
		}
	}
	return "", &Error{Field: FieldTime, Message: "Please enter a time as HH:MM."}
}

// PartySize parses a party size within the bookable bounds.
func PartySize(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < constants.MinPartySize || n > constants.MaxPartySize {
		return 0, &Error{
			Field:   FieldPartySize,
			Message: fmt.Sprintf("Party size must be between %d and %d.", constants.MinPartySize, constants.MaxPartySize),
		}
	}
	return n, nil
}

// Func adapts a validator to the func(string) error shape huh inputs expect.
func Func[T any](v func(string) (T, error)) func(string) error {
	return func(s string) error {
		_, err := v(s)
		return err
	}
}
