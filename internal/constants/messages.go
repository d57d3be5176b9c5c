package constants

// Fixed agent and echo texts shown in the conversation thread.
const (
	WelcomeMessage        = "Welcome to The Hungry Unicorn! How can I help you today?"
	EmptyInputMessage     = "Please click one of the options or type your request."
	GenericFailureMessage = "Sorry, something went wrong. Please try again."
	LookupFailureMessage  = "Could not find a booking with that reference."

	AvailabilityEcho = "Checking availability for %d people on %s…"
	TimeChipEcho     = "I’ll take %s on %s."
	CreateEcho       = "Booking %d people on %s at %s…"
	CustomerEcho     = "My details: %s %s"
	UpdateEcho       = "Updating to %s at %s for %d…"
	BookingFoundText = "Got it—your current reservation is on %s at %s for %d people. What would you like to change?"

	ReferenceRequiredMessage = "Please enter your booking reference number."
	CustomerRequiredMessage  = "Please fill out both your first name and surname."
)
