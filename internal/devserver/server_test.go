package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/julianstephens/tablebot/internal/api"
	"github.com/julianstephens/tablebot/internal/constants"
	"github.com/julianstephens/tablebot/internal/controller"
	"github.com/julianstephens/tablebot/internal/models"
)

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	if opts.Now == nil {
		opts.Now = fixedNow
	}
	srv, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})
	return ts
}

func TestServerAuthAndValidation(t *testing.T) {
	ts := newTestServer(t, Options{Token: "secret"})
	ctx := context.Background()

	_, err := api.New(ts.URL, api.WithToken("wrong")).Chat(ctx, "hello")
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Errorf("bad token error = %v, want 401", err)
	}

	_, err = api.New(ts.URL, api.WithToken("secret")).Chat(ctx, "   ")
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest {
		t.Errorf("empty message error = %v, want 400", err)
	}

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", resp.StatusCode)
	}
	var health map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("health body: %v", err)
	}
	if health["restaurant"] != constants.DefaultRestaurant {
		t.Errorf("health restaurant = %q", health["restaurant"])
	}
}

func TestServerRateLimit(t *testing.T) {
	ts := newTestServer(t, Options{RequestsPerMinute: 1, Burst: 2})
	client := api.New(ts.URL)

	for i := 0; i < 2; i++ {
		if _, err := client.Chat(context.Background(), "hello"); err != nil {
			t.Fatalf("request %d error = %v", i, err)
		}
	}
	_, err := client.Chat(context.Background(), "hello")
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusTooManyRequests {
		t.Errorf("third request error = %v, want 429", err)
	}
}

func TestServerGetBooking(t *testing.T) {
	srv, err := New(Options{Now: fixedNow})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer srv.Close()
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	b, err := srv.Store().Create(NewBooking{VisitDate: "2025-08-16", VisitTime: "19:30:00", PartySize: 2})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := api.New(ts.URL).GetBooking(context.Background(), b.BookingReference)
	if err != nil || got != b {
		t.Errorf("GetBooking() = (%+v, %v), want %+v", got, err, b)
	}

	_, err = api.New(ts.URL, api.WithRestaurant("Elsewhere")).GetBooking(context.Background(), b.BookingReference)
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Errorf("other restaurant error = %v, want 404", err)
	}
}

func TestConversationAgainstServer(t *testing.T) {
	ts := newTestServer(t, Options{Token: "secret"})
	c := controller.New(api.New(ts.URL, api.WithToken("secret")))
	ctx := context.Background()

	if err := c.SelectOption(models.ModeAvailability); err != nil {
		t.Fatalf("SelectOption() error = %v", err)
	}
	if err := c.SubmitAvailability(ctx, "2025-08-16", 2); err != nil {
		t.Fatalf("SubmitAvailability() error = %v", err)
	}
	s := c.State()
	if s.ChipOffer == nil || s.ChipOffer.Date != "2025-08-16" || s.ChipOffer.PartySize != 2 {
		t.Fatalf("ChipOffer = %+v", s.ChipOffer)
	}
	if !reflect.DeepEqual(s.ChipOffer.Times, Slots()) {
		t.Errorf("chip times = %v, want every slot", s.ChipOffer.Times)
	}

	if !c.SelectTime("19:30:00") {
		t.Fatal("SelectTime() not applied")
	}
	if err := c.SubmitCustomer(ctx, "Ada", "Lovelace"); err != nil {
		t.Fatalf("SubmitCustomer() error = %v", err)
	}
	s = c.State()
	confirmation := s.Messages[len(s.Messages)-1].Text
	m := referencePattern.FindStringSubmatch(confirmation)
	if m == nil {
		t.Fatalf("no reference in %q", confirmation)
	}

	if err := c.SelectOption(models.ModeUpdate); err != nil {
		t.Fatalf("SelectOption(update) error = %v", err)
	}
	if err := c.LookupBooking(ctx, m[1]); err != nil {
		t.Fatalf("LookupBooking() error = %v", err)
	}
	if err := c.SubmitUpdate(ctx, "2025-08-16", "20:00", 3); err != nil {
		t.Fatalf("SubmitUpdate() error = %v", err)
	}
	s = c.State()
	if last := s.Messages[len(s.Messages)-1].Text; !strings.Contains(last, "updated successfully") {
		t.Errorf("update reply = %q", last)
	}

	if err := c.SelectOption(models.ModeCancel); err != nil {
		t.Fatalf("SelectOption(cancel) error = %v", err)
	}
	if err := c.SubmitCancel(ctx, m[1]); err != nil {
		t.Fatalf("SubmitCancel() error = %v", err)
	}
	s = c.State()
	if last := s.Messages[len(s.Messages)-1].Text; last != "Your booking "+m[1]+" has been cancelled." {
		t.Errorf("cancel reply = %q", last)
	}
	if s.Mode != models.ModeOptions || !s.ShowOptions {
		t.Errorf("after cancel mode = %s, ShowOptions = %v", s.Mode, s.ShowOptions)
	}
}
