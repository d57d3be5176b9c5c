package validation

import (
	"errors"
	"testing"

	"github.com/julianstephens/tablebot/internal/constants"
)

func TestReference(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "trimmed", input: "  ABC1234 ", want: "ABC1234"},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reference(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Reference() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var verr *Error
				if !errors.As(err, &verr) || verr.Message != constants.ReferenceRequiredMessage {
					t.Errorf("Reference() error = %v, want validation message", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Reference() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCustomer(t *testing.T) {
	tests := []struct {
		name      string
		first     string
		surname   string
		wantField Field
	}{
		{name: "blank surname", first: "Ada", surname: "  ", wantField: FieldSurname},
		{name: "blank first name", first: "", surname: "Lovelace", wantField: FieldFirstName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Customer(tt.first, tt.surname)
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("Customer() error = %v, want *Error", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Customer() field = %q, want %q", verr.Field, tt.wantField)
			}
			if verr.Error() != constants.CustomerRequiredMessage {
				t.Errorf("Customer() message = %q", verr.Error())
			}
		})
	}

	first, surname, err := Customer(" Ada ", " Lovelace")
	if err != nil || first != "Ada" || surname != "Lovelace" {
		t.Errorf("Customer() = (%q, %q, %v)", first, surname, err)
	}
}

func TestDateTimeParty(t *testing.T) {
	if d, err := Date("2025-08-16"); err != nil || d != "2025-08-16" {
		t.Errorf("Date() = (%q, %v)", d, err)
	}
	if _, err := Date("16/08/2025"); err == nil {
		t.Error("Date() accepted a non-ISO date")
	}
	if _, err := Date("2025-02-30"); err == nil {
		t.Error("Date() accepted Feb 30")
	}

	for in, want := range map[string]string{"19:30": "19:30:00", "07:05:00": "07:05:00"} {
		if got, err := Time(in); err != nil || got != want {
			t.Errorf("Time(%q) = (%q, %v), want %q", in, got, err, want)
		}
	}
	if _, err := Time("7pm"); err == nil {
		t.Error("Time() accepted 7pm")
	}

	if n, err := PartySize(" 4 "); err != nil || n != 4 {
		t.Errorf("PartySize() = (%d, %v)", n, err)
	}
	for _, bad := range []string{"0", "21", "four", ""} {
		if _, err := PartySize(bad); err == nil {
			t.Errorf("PartySize(%q) should fail", bad)
		}
	}
}

func TestFunc(t *testing.T) {
	check := Func(Reference)
	if err := check(""); err == nil {
		t.Error("Func(Reference)(\"\") should fail")
	}
	if err := check("ABC"); err != nil {
		t.Errorf("Func(Reference)(\"ABC\") = %v", err)
	}
}

func TestName(t *testing.T) {
	if got, err := Name(FieldSurname, " Hopper "); err != nil || got != "Hopper" {
		t.Errorf("Name() = (%q, %v)", got, err)
	}
	_, err := Name(FieldSurname, "")
	var verr *Error
	if !errors.As(err, &verr) || verr.Field != FieldSurname {
		t.Errorf("Name(blank) error = %v", err)
	}
}
