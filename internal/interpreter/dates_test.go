package interpreter

import "testing"

func TestExtractFirstDateISO(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{name: "weekday with comma", text: "Saturday, Aug 16, 2025", want: "2025-08-16", wantOK: true},
		{name: "weekday without comma", text: "Available times on Saturday Aug 16, 2025: 7:30 PM", want: "2025-08-16", wantOK: true},
		{name: "full month name", text: "Friday, August 1, 2025", want: "2025-08-01", wantOK: true},
		{name: "ISO wins over long form", text: "Saturday, Aug 16, 2025 or 2025-09-01", want: "2025-09-01", wantOK: true},
		{name: "ambiguous prefix takes first month", text: "Tuesday, Ma 4, 2025", want: "2025-03-04", wantOK: true},
		{name: "invalid calendar date", text: "Sunday, Feb 30, 2025", wantOK: false},
		{name: "unknown month", text: "Monday, Foo 3, 2025", wantOK: false},
		{name: "lowercase weekday is not a match", text: "saturday, Aug 16, 2025", wantOK: false},
		{name: "no date", text: "no date here", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractFirstDateISO(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ExtractFirstDateISO(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ExtractFirstDateISO(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
