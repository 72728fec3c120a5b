package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/tripbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HotelFilter narrows List to the static search criteria; zero values
// mean "no constraint".
type HotelFilter struct {
	City       string
	Name       string
	StarRating int
}

type HotelRepository interface {
	Create(ctx context.Context, hotel *domain.Hotel) error
	GetByID(ctx context.Context, id string) (*domain.Hotel, error)
	List(ctx context.Context, filter HotelFilter) ([]domain.Hotel, error)
}

type PGHotelRepository struct {
	db *pgxpool.Pool
}

func NewHotelRepository(db *pgxpool.Pool) HotelRepository {
	return &PGHotelRepository{db: db}
}

func (r *PGHotelRepository) Create(ctx context.Context, hotel *domain.Hotel) error {
	return r.db.QueryRow(ctx, `INSERT INTO hotels (id, owner_id, name, address, city, star_rating)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		hotel.ID, hotel.OwnerID, hotel.Name, hotel.Address, hotel.City, hotel.StarRating).
		Scan(&hotel.CreatedAt, &hotel.UpdatedAt)
}

func (r *PGHotelRepository) GetByID(ctx context.Context, id string) (*domain.Hotel, error) {
	row := r.db.QueryRow(ctx, `SELECT id, owner_id, name, address, city, star_rating, created_at, updated_at FROM hotels WHERE id=$1`, id)
	var h domain.Hotel
	if err := row.Scan(&h.ID, &h.OwnerID, &h.Name, &h.Address, &h.City, &h.StarRating, &h.CreatedAt, &h.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("hotel %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &h, nil
}

func (r *PGHotelRepository) List(ctx context.Context, filter HotelFilter) ([]domain.Hotel, error) {
	query := `SELECT id, owner_id, name, address, city, star_rating, created_at, updated_at FROM hotels WHERE 1=1`
	args := make([]any, 0, 3)
	if filter.City != "" {
		args = append(args, filter.City)
		query += fmt.Sprintf(" AND city=$%d", len(args))
	}
	if filter.Name != "" {
		args = append(args, filter.Name)
		query += fmt.Sprintf(" AND name=$%d", len(args))
	}
	if filter.StarRating > 0 {
		args = append(args, filter.StarRating)
		query += fmt.Sprintf(" AND star_rating >= $%d", len(args))
	}
	query += " ORDER BY id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hotels := make([]domain.Hotel, 0)
	for rows.Next() {
		var h domain.Hotel
		if err := rows.Scan(&h.ID, &h.OwnerID, &h.Name, &h.Address, &h.City, &h.StarRating, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

var _ HotelRepository = (*PGHotelRepository)(nil)
