package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/tripbooking/internal/calendar"
	"github.com/Domenick1991/tripbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomTypeRepository interface {
	Create(ctx context.Context, room *domain.RoomType) error
	GetByID(ctx context.Context, id string) (*domain.RoomType, error)
	ListByHotel(ctx context.Context, hotelID string) ([]domain.RoomType, error)
}

type PGRoomTypeRepository struct {
	db *pgxpool.Pool
}

func NewRoomTypeRepository(db *pgxpool.Pool) RoomTypeRepository {
	return &PGRoomTypeRepository{db: db}
}

func (r *PGRoomTypeRepository) Create(ctx context.Context, room *domain.RoomType) error {
	schedule, err := json.Marshal(room.Schedule)
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}

	return r.db.QueryRow(ctx, `INSERT INTO room_types (id, hotel_id, name, amenities, price_cents, total_rooms, schedule)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb)
		RETURNING created_at, updated_at`,
		room.ID, room.HotelID, room.Name, room.Amenities, room.PriceCents, room.TotalRooms, string(schedule)).
		Scan(&room.CreatedAt, &room.UpdatedAt)
}

func (r *PGRoomTypeRepository) GetByID(ctx context.Context, id string) (*domain.RoomType, error) {
	row := r.db.QueryRow(ctx, `SELECT id, hotel_id, name, amenities, price_cents, total_rooms, schedule, created_at, updated_at FROM room_types WHERE id=$1`, id)
	room, err := scanRoomType(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("room type %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return room, nil
}

func (r *PGRoomTypeRepository) ListByHotel(ctx context.Context, hotelID string) ([]domain.RoomType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, hotel_id, name, amenities, price_cents, total_rooms, schedule, created_at, updated_at FROM room_types WHERE hotel_id=$1 ORDER BY id`, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]domain.RoomType, 0)
	for rows.Next() {
		room, err := scanRoomType(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}
	return rooms, rows.Err()
}

func scanRoomType(row pgx.Row) (*domain.RoomType, error) {
	var (
		room     domain.RoomType
		schedule []byte
	)
	if err := row.Scan(&room.ID, &room.HotelID, &room.Name, &room.Amenities, &room.PriceCents, &room.TotalRooms, &schedule, &room.CreatedAt, &room.UpdatedAt); err != nil {
		return nil, err
	}

	room.Schedule = &calendar.Calendar{}
	if err := json.Unmarshal(schedule, room.Schedule); err != nil {
		return nil, fmt.Errorf("decode schedule for room type %s: %w", room.ID, err)
	}
	return &room, nil
}

// lockSchedule loads a room type's calendar under FOR UPDATE inside tx.
// Every calendar mutation goes through this lock so two concurrent
// reservations cannot observe the same free slot.
func lockSchedule(ctx context.Context, tx pgx.Tx, roomTypeID string) (*calendar.Calendar, error) {
	var schedule []byte
	err := tx.QueryRow(ctx, `SELECT schedule FROM room_types WHERE id=$1 FOR UPDATE`, roomTypeID).Scan(&schedule)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("room type %s: %w", roomTypeID, domain.ErrNotFound)
		}
		return nil, err
	}

	cal := &calendar.Calendar{}
	if err := json.Unmarshal(schedule, cal); err != nil {
		return nil, fmt.Errorf("decode schedule for room type %s: %w", roomTypeID, err)
	}
	return cal, nil
}

func storeSchedule(ctx context.Context, tx pgx.Tx, roomTypeID string, cal *calendar.Calendar) error {
	schedule, err := json.Marshal(cal)
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}
	_, err = tx.Exec(ctx, `UPDATE room_types SET schedule=$2::jsonb, updated_at=now() WHERE id=$1`, roomTypeID, string(schedule))
	return err
}

// timestamps on hotel_bookings use DATE columns; keep scans UTC.
func asUTCDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
