package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tablebot/internal/constants"
	"github.com/julianstephens/tablebot/internal/models"
	"github.com/julianstephens/tablebot/internal/validation"
)

// formKind identifies which sub-flow form is on screen
type formKind int

const (
	formNone formKind = iota
	formAvailability
	formCreate
	formCustomer
	formGet
	formLookup
	formUpdate
	formCancel
)

// BookingFormModel backs the availability, create and update forms
type BookingFormModel struct {
	Date      string
	Time      string
	PartySize string
}

// CustomerFormModel backs the customer details form
type CustomerFormModel struct {
	FirstName string
	Surname   string
}

// ReferenceFormModel backs the get, update lookup and cancel forms
type ReferenceFormModel struct {
	Reference string
}

func partyInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Party size").
		Description("Between 1 and 20 guests").
		Value(value).
		Validate(validation.Func(validation.PartySize))
}

func dateInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Date (YYYY-MM-DD)").
		Placeholder("2025-08-16").
		Value(value).
		Validate(validation.Func(validation.Date))
}

func timeInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Time (HH:MM)").
		Placeholder("19:30").
		Value(value).
		Validate(validation.Func(validation.Time))
}

// NewAvailabilityForm collects a date and party size
func NewAvailabilityForm(fm *BookingFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			dateInput(&fm.Date),
			partyInput(&fm.PartySize),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewBookingForm collects date, time and party size for a new or changed booking
func NewBookingForm(fm *BookingFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			dateInput(&fm.Date),
			timeInput(&fm.Time),
			partyInput(&fm.PartySize),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewCustomerForm collects the name the booking is made under
func NewCustomerForm(fm *CustomerFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First name").
				Value(&fm.FirstName).
				Validate(func(s string) error {
					_, err := validation.Name(validation.FieldFirstName, s)
					return err
				}),
			huh.NewInput().
				Title("Surname").
				Value(&fm.Surname).
				Validate(func(s string) error {
					_, err := validation.Name(validation.FieldSurname, s)
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewReferenceForm collects a booking reference
func NewReferenceForm(fm *ReferenceFormModel, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(&fm.Reference).
				Validate(validation.Func(validation.Reference)),
		),
	).WithTheme(huh.ThemeDracula())
}

func defaultBookingForm() *BookingFormModel {
	return &BookingFormModel{PartySize: strconv.Itoa(constants.DefaultPartySize)}
}

// bookingFormFrom pre-fills the update form with the loaded booking
func bookingFormFrom(b *models.Booking) *BookingFormModel {
	fm := defaultBookingForm()
	if b == nil {
		return fm
	}
	fm.Date = b.VisitDate
	fm.Time = b.VisitTime
	if t, err := validation.Time(b.VisitTime); err == nil {
		fm.Time = t[:len(constants.ShortTimeFormat)]
	}
	fm.PartySize = strconv.Itoa(b.PartySize)
	return fm
}

// party parses a party size the form has already validated
func (fm *BookingFormModel) party() int {
	n, _ := strconv.Atoi(strings.TrimSpace(fm.PartySize))
	return n
}
