package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/tripbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HotelBookingRepository interface {
	// Create reserves a free room index for the booking's range and
	// inserts the record in one transaction. Returns
	// calendar.ErrNoCapacity when no room is free.
	Create(ctx context.Context, booking *domain.HotelBooking) error
	GetByID(ctx context.Context, id string) (*domain.HotelBooking, error)
	// Cancel releases the booking's calendar slot and flips its status.
	// Cancelling an already-cancelled booking is a no-op.
	Cancel(ctx context.Context, id string) (*domain.HotelBooking, error)
	ListActiveByRoomType(ctx context.Context, roomTypeID string) ([]domain.HotelBooking, error)
}

type PGHotelBookingRepository struct {
	db *pgxpool.Pool
}

func NewHotelBookingRepository(db *pgxpool.Pool) HotelBookingRepository {
	return &PGHotelBookingRepository{db: db}
}

const hotelBookingColumns = `id, hotel_id, room_type_id, user_id, room_index, check_in, check_out, status, created_at, updated_at`

func (r *PGHotelBookingRepository) Create(ctx context.Context, booking *domain.HotelBooking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cal, err := lockSchedule(ctx, tx, booking.RoomTypeID)
	if err != nil {
		return err
	}

	roomIndex, err := cal.Reserve(booking.CheckIn, booking.CheckOut)
	if err != nil {
		return err
	}
	if err := storeSchedule(ctx, tx, booking.RoomTypeID, cal); err != nil {
		return err
	}

	booking.RoomIndex = roomIndex
	booking.Status = domain.BookingStatusActive
	if err := tx.QueryRow(ctx, `INSERT INTO hotel_bookings (id, hotel_id, room_type_id, user_id, room_index, check_in, check_out, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		booking.ID, booking.HotelID, booking.RoomTypeID, booking.UserID, booking.RoomIndex, booking.CheckIn, booking.CheckOut, booking.Status).
		Scan(&booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGHotelBookingRepository) GetByID(ctx context.Context, id string) (*domain.HotelBooking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+hotelBookingColumns+` FROM hotel_bookings WHERE id=$1`, id)
	b, err := scanHotelBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("hotel booking %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return b, nil
}

func (r *PGHotelBookingRepository) Cancel(ctx context.Context, id string) (*domain.HotelBooking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+hotelBookingColumns+` FROM hotel_bookings WHERE id=$1 FOR UPDATE`, id)
	booking, err := scanHotelBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("hotel booking %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	if booking.Status == domain.BookingStatusCancelled {
		return booking, tx.Commit(ctx)
	}

	cal, err := lockSchedule(ctx, tx, booking.RoomTypeID)
	if err != nil {
		return nil, err
	}
	if err := cal.Release(booking.RoomIndex, booking.CheckIn, booking.CheckOut); err != nil {
		return nil, err
	}
	if err := storeSchedule(ctx, tx, booking.RoomTypeID, cal); err != nil {
		return nil, err
	}

	if err := tx.QueryRow(ctx, `UPDATE hotel_bookings SET status=$2, updated_at=now() WHERE id=$1 RETURNING status, updated_at`,
		id, domain.BookingStatusCancelled).Scan(&booking.Status, &booking.UpdatedAt); err != nil {
		return nil, err
	}

	return booking, tx.Commit(ctx)
}

func (r *PGHotelBookingRepository) ListActiveByRoomType(ctx context.Context, roomTypeID string) ([]domain.HotelBooking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+hotelBookingColumns+` FROM hotel_bookings WHERE room_type_id=$1 AND status=$2 ORDER BY created_at, id`,
		roomTypeID, domain.BookingStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.HotelBooking, 0)
	for rows.Next() {
		b, err := scanHotelBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func scanHotelBooking(row pgx.Row) (*domain.HotelBooking, error) {
	var b domain.HotelBooking
	if err := row.Scan(&b.ID, &b.HotelID, &b.RoomTypeID, &b.UserID, &b.RoomIndex, &b.CheckIn, &b.CheckOut, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.CheckIn = asUTCDate(b.CheckIn)
	b.CheckOut = asUTCDate(b.CheckOut)
	return &b, nil
}

var _ HotelBookingRepository = (*PGHotelBookingRepository)(nil)
