package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/tripbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingRepository persists the user-facing trip aggregate.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
}

type FlightBookingRepository interface {
	Create(ctx context.Context, booking *domain.FlightBooking) error
	GetByID(ctx context.Context, id string) (*domain.FlightBooking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.FlightBooking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	flightID := nullable(booking.FlightBookingID)
	hotelID := nullable(booking.HotelBookingID)
	return r.db.QueryRow(ctx, `INSERT INTO bookings (id, user_id, status, flight_booking_id, hotel_booking_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		booking.ID, booking.UserID, booking.Status, flightID, hotelID).
		Scan(&booking.CreatedAt, &booking.UpdatedAt)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, user_id, status, flight_booking_id, hotel_booking_id, created_at, updated_at FROM bookings WHERE id=$1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$2, updated_at=now() WHERE id=$1 RETURNING id, user_id, status, flight_booking_id, hotel_booking_id, created_at, updated_at`, id, status)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return b, nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b        domain.Booking
		flightID *string
		hotelID  *string
	)
	if err := row.Scan(&b.ID, &b.UserID, &b.Status, &flightID, &hotelID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	if flightID != nil {
		b.FlightBookingID = *flightID
	}
	if hotelID != nil {
		b.HotelBookingID = *hotelID
	}
	return &b, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type PGFlightBookingRepository struct {
	db *pgxpool.Pool
}

func NewFlightBookingRepository(db *pgxpool.Pool) FlightBookingRepository {
	return &PGFlightBookingRepository{db: db}
}

func (r *PGFlightBookingRepository) Create(ctx context.Context, booking *domain.FlightBooking) error {
	return r.db.QueryRow(ctx, `INSERT INTO flight_bookings (id, reference, status)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`,
		booking.ID, booking.Reference, booking.Status).
		Scan(&booking.CreatedAt, &booking.UpdatedAt)
}

func (r *PGFlightBookingRepository) GetByID(ctx context.Context, id string) (*domain.FlightBooking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, reference, status, created_at, updated_at FROM flight_bookings WHERE id=$1`, id)
	var b domain.FlightBooking
	if err := row.Scan(&b.ID, &b.Reference, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("flight booking %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGFlightBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.FlightBooking, error) {
	row := r.db.QueryRow(ctx, `UPDATE flight_bookings SET status=$2, updated_at=now() WHERE id=$1 RETURNING id, reference, status, created_at, updated_at`, id, status)
	var b domain.FlightBooking
	if err := row.Scan(&b.ID, &b.Reference, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("flight booking %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &b, nil
}

var (
	_ BookingRepository       = (*PGBookingRepository)(nil)
	_ FlightBookingRepository = (*PGFlightBookingRepository)(nil)
)
