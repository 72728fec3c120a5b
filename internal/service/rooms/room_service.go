package rooms

import (
	"context"
	"log"
	"time"

	"github.com/Domenick1991/tripbooking/internal/auth"
	"github.com/Domenick1991/tripbooking/internal/calendar"
	"github.com/Domenick1991/tripbooking/internal/domain"
	"github.com/Domenick1991/tripbooking/internal/notify"
	"github.com/Domenick1991/tripbooking/internal/obs"
	"github.com/Domenick1991/tripbooking/internal/repository"
	"github.com/google/uuid"
)

type RoomUseCase interface {
	CreateRoomType(ctx context.Context, input CreateRoomTypeInput) (*domain.RoomType, error)
	HotelAvailability(ctx context.Context, input AvailabilityInput) ([]RoomTypeAvailability, error)
	RoomTypeAvailability(ctx context.Context, roomTypeID string, checkIn, checkOut time.Time) (int, error)
	Resize(ctx context.Context, input ResizeInput) (*ResizeResult, error)
}

type CreateRoomTypeInput struct {
	ActorID    string
	HotelID    string
	Name       string
	Amenities  []string
	PriceCents int64
	TotalRooms int
}

type AvailabilityInput struct {
	ActorID  string
	HotelID  string
	CheckIn  time.Time
	CheckOut time.Time
}

type RoomTypeAvailability struct {
	RoomTypeID string `json:"room_type_id"`
	Name       string `json:"name"`
	TotalRooms int    `json:"total_rooms"`
	Available  int    `json:"available"`
}

type ResizeInput struct {
	ActorID   string
	ActorRole string
	// RoomTypeID's operative availability is lowered to Target within
	// [CheckIn, CheckOut).
	RoomTypeID string
	Target     int
	CheckIn    time.Time
	CheckOut   time.Time
}

// ResizeResult reports what reconciliation actually did. Satisfied is
// false when every overlapping booking was cancelled and availability
// still sits below the target.
type ResizeResult struct {
	FinalAvailable      int      `json:"final_available"`
	CancelledBookingIDs []string `json:"cancelled_booking_ids"`
	Satisfied           bool     `json:"satisfied"`
}

type RoomService struct {
	rooms       repository.RoomTypeRepository
	hotels      repository.HotelRepository
	bookings    repository.HotelBookingRepository
	notifier    notify.Notifier
	metrics     *obs.Metrics
	horizonDays int
}

func NewRoomService(
	rooms repository.RoomTypeRepository,
	hotels repository.HotelRepository,
	bookings repository.HotelBookingRepository,
	notifier notify.Notifier,
	metrics *obs.Metrics,
	horizonDays int,
) *RoomService {
	return &RoomService{
		rooms:       rooms,
		hotels:      hotels,
		bookings:    bookings,
		notifier:    notifier,
		metrics:     metrics,
		horizonDays: horizonDays,
	}
}

func (s *RoomService) CreateRoomType(ctx context.Context, input CreateRoomTypeInput) (*domain.RoomType, error) {
	validation := domain.NewValidationError()
	if input.Name == "" {
		validation.Add("name", "name is required")
	}
	if input.PriceCents <= 0 {
		validation.Add("price_cents", "price must be positive")
	}
	if input.TotalRooms <= 0 {
		validation.Add("total_rooms", "total rooms must be positive")
	}
	if validation.HasErrors() {
		return nil, validation
	}

	hotel, err := s.hotels.GetByID(ctx, input.HotelID)
	if err != nil {
		return nil, err
	}
	if hotel.OwnerID != input.ActorID {
		return nil, domain.ErrForbidden
	}

	schedule, err := calendar.New(input.TotalRooms, s.horizonDays, time.Now())
	if err != nil {
		return nil, err
	}

	room := &domain.RoomType{
		ID:         uuid.NewString(),
		HotelID:    input.HotelID,
		Name:       input.Name,
		Amenities:  input.Amenities,
		PriceCents: input.PriceCents,
		TotalRooms: input.TotalRooms,
		Schedule:   schedule,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// HotelAvailability is the owner's view: per room type, how many rooms
// are free across the window.
func (s *RoomService) HotelAvailability(ctx context.Context, input AvailabilityInput) ([]RoomTypeAvailability, error) {
	hotel, err := s.hotels.GetByID(ctx, input.HotelID)
	if err != nil {
		return nil, err
	}
	if hotel.OwnerID != input.ActorID {
		return nil, domain.ErrForbidden
	}

	roomTypes, err := s.rooms.ListByHotel(ctx, input.HotelID)
	if err != nil {
		return nil, err
	}

	result := make([]RoomTypeAvailability, 0, len(roomTypes))
	for _, room := range roomTypes {
		available, err := room.Schedule.CountAvailable(input.CheckIn, input.CheckOut)
		if err != nil {
			return nil, err
		}
		result = append(result, RoomTypeAvailability{
			RoomTypeID: room.ID,
			Name:       room.Name,
			TotalRooms: room.TotalRooms,
			Available:  available,
		})
	}
	return result, nil
}

// RoomTypeAvailability is the visitor's view of one room type.
func (s *RoomService) RoomTypeAvailability(ctx context.Context, roomTypeID string, checkIn, checkOut time.Time) (int, error) {
	room, err := s.rooms.GetByID(ctx, roomTypeID)
	if err != nil {
		return 0, err
	}
	return room.Schedule.CountAvailable(checkIn, checkOut)
}

// Resize cascades cancellations over existing reservations until the
// target available-room count is met within the window, and no further.
func (s *RoomService) Resize(ctx context.Context, input ResizeInput) (*ResizeResult, error) {
	room, err := s.rooms.GetByID(ctx, input.RoomTypeID)
	if err != nil {
		return nil, err
	}
	hotel, err := s.hotels.GetByID(ctx, room.HotelID)
	if err != nil {
		return nil, err
	}
	if hotel.OwnerID != input.ActorID && input.ActorRole != auth.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	validation := domain.NewValidationError()
	if input.Target < 0 {
		validation.Add("target", "available rooms cannot be negative")
	}
	if input.Target > room.TotalRooms {
		validation.Add("target", "available rooms cannot exceed total rooms")
	}
	if validation.HasErrors() {
		return nil, validation
	}

	current, err := room.Schedule.CountAvailable(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, err
	}
	if current >= input.Target {
		// Target already satisfied: never cancel anything.
		return &ResizeResult{FinalAvailable: current, CancelledBookingIDs: []string{}, Satisfied: true}, nil
	}

	// Creation order keeps cancellation deterministic: the earliest
	// overlapping bookings go first.
	bookings, err := s.bookings.ListActiveByRoomType(ctx, input.RoomTypeID)
	if err != nil {
		return nil, err
	}

	cancelled := make([]string, 0)
	for _, booking := range bookings {
		if !overlaps(booking, input.CheckIn, input.CheckOut) {
			continue
		}

		if _, err := s.bookings.Cancel(ctx, booking.ID); err != nil {
			return nil, err
		}
		cancelled = append(cancelled, booking.ID)
		if s.metrics != nil {
			s.metrics.ReconcilerCancellations.Inc()
		}

		if err := s.notifier.Notify(ctx, booking.UserID, "Your hotel room booking has been cancelled."); err != nil {
			// The calendar change is the authoritative effect; a lost
			// notification never rolls it back.
			log.Printf("WARNING: failed to notify user %s about cancelled booking %s: %v", booking.UserID, booking.ID, err)
			if s.metrics != nil {
				s.metrics.NotifyFailuresTotal.Inc()
			}
		}

		room, err = s.rooms.GetByID(ctx, input.RoomTypeID)
		if err != nil {
			return nil, err
		}
		current, err = room.Schedule.CountAvailable(input.CheckIn, input.CheckOut)
		if err != nil {
			return nil, err
		}
		if current >= input.Target {
			return &ResizeResult{FinalAvailable: current, CancelledBookingIDs: cancelled, Satisfied: true}, nil
		}
	}

	// Every overlapping booking is gone and the target is still out of
	// reach; report rather than fail silently.
	return &ResizeResult{FinalAvailable: current, CancelledBookingIDs: cancelled, Satisfied: false}, nil
}

func overlaps(booking domain.HotelBooking, checkIn, checkOut time.Time) bool {
	return booking.CheckIn.Before(checkOut) && booking.CheckOut.After(checkIn)
}

var _ RoomUseCase = (*RoomService)(nil)
