package devserver

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/tablebot/internal/constants"
	"github.com/julianstephens/tablebot/internal/models"
)

// ErrBookingNotFound is returned for unknown or cancelled references
var ErrBookingNotFound = errors.New("booking not found")

const schema = `
CREATE TABLE IF NOT EXISTS bookings (
	reference  TEXT PRIMARY KEY,
	restaurant TEXT NOT NULL,
	visit_date TEXT NOT NULL,
	visit_time TEXT NOT NULL,
	party_size INTEGER NOT NULL,
	first_name TEXT NOT NULL DEFAULT '',
	surname    TEXT NOT NULL DEFAULT '',
	channel    TEXT NOT NULL DEFAULT '',
	cancelled  INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bookings_slot ON bookings(restaurant, visit_date, visit_time);
`

// NewBooking is the input to Store.Create
type NewBooking struct {
	VisitDate string
	VisitTime string
	PartySize int
	FirstName string
	Surname   string
	Channel   string
}

// BookingChanges lists the fields an update replaces; nil fields are kept
type BookingChanges struct {
	VisitDate *string
	VisitTime *string
	PartySize *int
}

// Store keeps bookings for one restaurant in SQLite
type Store struct {
	db         *sql.DB
	restaurant string
}

// OpenStore opens (and migrates) the booking database at path. ":memory:" is allowed.
func OpenStore(path, restaurant string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// every pooled connection to :memory: would get its own empty database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db, restaurant: restaurant}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Restaurant is the name bookings are stored under
func (s *Store) Restaurant() string {
	return s.restaurant
}

// Create stores a booking under a fresh reference
func (s *Store) Create(nb NewBooking) (models.Booking, error) {
	ref := newReference()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`
		INSERT INTO bookings (reference, restaurant, visit_date, visit_time, party_size, first_name, surname, channel, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ref, s.restaurant, nb.VisitDate, nb.VisitTime, nb.PartySize, nb.FirstName, nb.Surname, nb.Channel, now, now)
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to insert booking: %w", err)
	}
	return models.Booking{
		BookingReference: ref,
		VisitDate:        nb.VisitDate,
		VisitTime:        nb.VisitTime,
		PartySize:        nb.PartySize,
	}, nil
}

// Get returns an active booking by reference
func (s *Store) Get(ref string) (models.Booking, error) {
	var b models.Booking
	err := s.db.QueryRow(`
		SELECT reference, visit_date, visit_time, party_size FROM bookings
		WHERE reference = ? AND restaurant = ? AND cancelled = 0`,
		ref, s.restaurant).Scan(&b.BookingReference, &b.VisitDate, &b.VisitTime, &b.PartySize)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, ErrBookingNotFound
	}
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to query booking: %w", err)
	}
	return b, nil
}

// Update applies changes to an active booking
func (s *Store) Update(ref string, ch BookingChanges) (models.Booking, error) {
	b, err := s.Get(ref)
	if err != nil {
		return models.Booking{}, err
	}
	if ch.VisitDate != nil {
		b.VisitDate = *ch.VisitDate
	}
	if ch.VisitTime != nil {
		b.VisitTime = *ch.VisitTime
	}
	if ch.PartySize != nil {
		b.PartySize = *ch.PartySize
	}

	_, err = s.db.Exec(`
		UPDATE bookings SET visit_date = ?, visit_time = ?, party_size = ?, updated_at = ?
		WHERE reference = ? AND restaurant = ?`,
		b.VisitDate, b.VisitTime, b.PartySize, time.Now().UTC().Format(time.RFC3339), ref, s.restaurant)
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to update booking: %w", err)
	}
	return b, nil
}

// Cancel marks an active booking as cancelled
func (s *Store) Cancel(ref string) error {
	res, err := s.db.Exec(`
		UPDATE bookings SET cancelled = 1, updated_at = ?
		WHERE reference = ? AND restaurant = ? AND cancelled = 0`,
		time.Now().UTC().Format(time.RFC3339), ref, s.restaurant)
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// CoversBooked sums party sizes of active bookings in one slot, excluding ref if non-empty
func (s *Store) CoversBooked(date, slot, excludeRef string) (int, error) {
	var covers sql.NullInt64
	err := s.db.QueryRow(`
		SELECT SUM(party_size) FROM bookings
		WHERE restaurant = ? AND visit_date = ? AND visit_time = ? AND cancelled = 0 AND reference != ?`,
		s.restaurant, date, slot, excludeRef).Scan(&covers)
	if err != nil {
		return 0, fmt.Errorf("failed to count covers: %w", err)
	}
	return int(covers.Int64), nil
}

func newReference() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return id[:constants.DevReferenceLength]
}
