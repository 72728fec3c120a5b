package hotels

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/tripbooking/internal/calendar"
	"github.com/Domenick1991/tripbooking/internal/domain"
	"github.com/Domenick1991/tripbooking/internal/repository"
	"github.com/google/uuid"
)

type HotelUseCase interface {
	CreateHotel(ctx context.Context, input CreateHotelInput) (*domain.Hotel, error)
	Search(ctx context.Context, filters SearchFilters) ([]domain.HotelSummary, error)
}

type Cache interface {
	GetSearchResults(ctx context.Context, key string) ([]domain.HotelSummary, error)
	SetSearchResults(ctx context.Context, key string, hotels []domain.HotelSummary) error
}

type CreateHotelInput struct {
	OwnerID    string
	Name       string
	Address    string
	City       string
	StarRating int
}

// SearchFilters is the visitor search surface: the date pair and city
// are required, the rest optional. Zero price bounds mean unconstrained.
type SearchFilters struct {
	CheckIn       time.Time
	CheckOut      time.Time
	City          string
	Name          string
	StarRating    int
	MinPriceCents int64
	MaxPriceCents int64
}

func (f SearchFilters) cacheKey() string {
	return fmt.Sprintf("%s:%s:%s:%s:%d:%d:%d",
		f.CheckIn.Format(calendar.ISODate), f.CheckOut.Format(calendar.ISODate),
		f.City, f.Name, f.StarRating, f.MinPriceCents, f.MaxPriceCents)
}

type HotelService struct {
	hotels repository.HotelRepository
	rooms  repository.RoomTypeRepository
	cache  Cache
}

func NewHotelService(hotels repository.HotelRepository, rooms repository.RoomTypeRepository, cache Cache) *HotelService {
	return &HotelService{hotels: hotels, rooms: rooms, cache: cache}
}

func (s *HotelService) CreateHotel(ctx context.Context, input CreateHotelInput) (*domain.Hotel, error) {
	validation := domain.NewValidationError()
	if input.Name == "" {
		validation.Add("name", "name is required")
	}
	if input.Address == "" {
		validation.Add("address", "address is required")
	}
	if input.City == "" {
		validation.Add("city", "city is required")
	}
	if input.StarRating < 1 || input.StarRating > 5 {
		validation.Add("star_rating", "star rating must be between 1 and 5")
	}
	if validation.HasErrors() {
		return nil, validation
	}

	hotel := &domain.Hotel{
		ID:         uuid.NewString(),
		OwnerID:    input.OwnerID,
		Name:       input.Name,
		Address:    input.Address,
		City:       input.City,
		StarRating: input.StarRating,
	}
	if err := s.hotels.Create(ctx, hotel); err != nil {
		return nil, err
	}
	return hotel, nil
}

// Search returns hotels with at least one room type that is both in the
// requested price range and available for the whole date range.
func (s *HotelService) Search(ctx context.Context, filters SearchFilters) ([]domain.HotelSummary, error) {
	validation := domain.NewValidationError()
	if filters.City == "" {
		validation.Add("city", "city is required")
	}
	if filters.CheckIn.IsZero() || filters.CheckOut.IsZero() {
		validation.Add("dates", "check-in and check-out are required")
	} else if !filters.CheckOut.After(filters.CheckIn) {
		validation.Add("check_out", "check-out must be after check-in")
	}
	if validation.HasErrors() {
		return nil, validation
	}

	if s.cache != nil {
		if cached, err := s.cache.GetSearchResults(ctx, filters.cacheKey()); err == nil && cached != nil {
			return cached, nil
		}
	}

	candidates, err := s.hotels.List(ctx, repository.HotelFilter{
		City:       filters.City,
		Name:       filters.Name,
		StarRating: filters.StarRating,
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.HotelSummary, 0)
	for _, hotel := range candidates {
		roomTypes, err := s.rooms.ListByHotel(ctx, hotel.ID)
		if err != nil {
			return nil, err
		}

		var startingPrice int64 = -1
		for _, room := range roomTypes {
			if filters.MinPriceCents > 0 && room.PriceCents < filters.MinPriceCents {
				continue
			}
			if filters.MaxPriceCents > 0 && room.PriceCents > filters.MaxPriceCents {
				continue
			}

			available, err := room.Schedule.CountAvailable(filters.CheckIn, filters.CheckOut)
			if err != nil {
				// A window beyond this room type's horizon has no entries,
				// which never counts as free.
				if errors.Is(err, calendar.ErrOutOfHorizon) {
					continue
				}
				return nil, err
			}
			if available == 0 {
				continue
			}
			if startingPrice < 0 || room.PriceCents < startingPrice {
				startingPrice = room.PriceCents
			}
		}

		if startingPrice < 0 {
			continue
		}
		summaries = append(summaries, domain.HotelSummary{
			ID:                 hotel.ID,
			Name:               hotel.Name,
			Address:            hotel.Address,
			City:               hotel.City,
			StarRating:         hotel.StarRating,
			StartingPriceCents: startingPrice,
		})
	}

	if s.cache != nil {
		if err := s.cache.SetSearchResults(ctx, filters.cacheKey(), summaries); err != nil {
			log.Printf("WARNING: failed to cache search results: %v", err)
		}
	}
	return summaries, nil
}

var _ HotelUseCase = (*HotelService)(nil)
