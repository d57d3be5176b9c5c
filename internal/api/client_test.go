package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestChat(t *testing.T) {
	var gotAuth, gotBody, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chat/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		gotBody = req.Message
		_ = json.NewEncoder(w).Encode(ChatResponse{Reply: "Available times: 7:30 PM"})
	}))
	defer srv.Close()

	c := New(srv.URL+"/", WithToken("secret"))
	reply, err := c.Chat(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if reply != "Available times: 7:30 PM" {
		t.Errorf("Chat() reply = %q", reply)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotBody != "hello" {
		t.Errorf("message = %q", gotBody)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestChatErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"detail":"bad token"}`, wantStatus: 401},
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantStatus: 500},
		{name: "redirect is not success", status: http.StatusNotModified, wantStatus: 304},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).Chat(context.Background(), "hi")
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Chat() error = %v, want *APIError", err)
			}
			if apiErr.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.wantStatus)
			}
		})
	}
}

func TestChatTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithTimeout(50*time.Millisecond)).Chat(context.Background(), "hi")
	if err == nil {
		t.Fatal("Chat() expected timeout error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("timeout should not be an APIError, got %v", apiErr)
	}
}

func TestGetBooking(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/ConsumerApi/v1/Restaurant/TheHungryUnicorn/Booking/ABC1234":
			_, _ = w.Write([]byte(`{"booking_reference":"ABC1234","visit_date":"2025-08-16","visit_time":"19:30:00","party_size":4}`))
		case "/api/ConsumerApi/v1/Restaurant/Other/Booking/XYZ":
			_, _ = w.Write([]byte(`{"booking_reference":"XYZ","visit_date":"2025-09-01","visit_time":"12:00:00","party_size":2}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	b, err := New(srv.URL).GetBooking(context.Background(), "ABC1234")
	if err != nil {
		t.Fatalf("GetBooking() error = %v", err)
	}
	if b.VisitDate != "2025-08-16" || b.VisitTime != "19:30:00" || b.PartySize != 4 {
		t.Errorf("GetBooking() = %+v", b)
	}

	b, err = New(srv.URL, WithRestaurant("Other")).GetBooking(context.Background(), "XYZ")
	if err != nil || b.BookingReference != "XYZ" {
		t.Errorf("GetBooking(Other) = (%+v, %v)", b, err)
	}

	_, err = New(srv.URL).GetBooking(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Errorf("GetBooking(missing) error = %v, want 404 APIError", err)
	}
}

func TestPing(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantStatus int
	}{
		{"healthy", http.StatusOK, 0},
		{"no health route", http.StatusNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/health" {
					t.Errorf("path = %q", r.URL.Path)
				}
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := New(srv.URL).Ping(context.Background())
			if tt.wantStatus == 0 {
				if err != nil {
					t.Errorf("Ping() error = %v", err)
				}
				return
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.Status != tt.wantStatus {
				t.Errorf("Ping() error = %v, want status %d", err, tt.wantStatus)
			}
		})
	}
}
