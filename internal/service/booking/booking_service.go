package booking

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Domenick1991/tripbooking/internal/domain"
	"github.com/Domenick1991/tripbooking/internal/notify"
	"github.com/Domenick1991/tripbooking/internal/obs"
	"github.com/Domenick1991/tripbooking/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, input CancelBookingInput) (*CancelResult, error)
}

// FlightCanceller is the remote AFS capability this core calls but does
// not implement.
type FlightCanceller interface {
	CancelFlight(ctx context.Context, bookingReference, lastName string) (json.RawMessage, error)
}

type Cache interface {
	AcquireRoomTypeLock(ctx context.Context, roomTypeID string, ttl time.Duration) (bool, error)
	ReleaseRoomTypeLock(ctx context.Context, roomTypeID string) error
}

type BookingService struct {
	trips         repository.BookingRepository
	hotelBookings repository.HotelBookingRepository
	flights       repository.FlightBookingRepository
	users         repository.UserRepository
	afs           FlightCanceller
	cache         Cache
	notifier      notify.Notifier
	metrics       *obs.Metrics
	lockTTL       time.Duration
}

func NewBookingService(
	trips repository.BookingRepository,
	hotelBookings repository.HotelBookingRepository,
	flights repository.FlightBookingRepository,
	users repository.UserRepository,
	afs FlightCanceller,
	cache Cache,
	notifier notify.Notifier,
	metrics *obs.Metrics,
	lockTTL time.Duration,
) *BookingService {
	return &BookingService{
		trips:         trips,
		hotelBookings: hotelBookings,
		flights:       flights,
		users:         users,
		afs:           afs,
		cache:         cache,
		notifier:      notifier,
		metrics:       metrics,
		lockTTL:       lockTTL,
	}
}

type CreateBookingInput struct {
	UserID string

	// Hotel leg, optional.
	HotelID    string
	RoomTypeID string
	CheckIn    time.Time
	CheckOut   time.Time

	// Flight leg, optional: the AFS booking reference to attach.
	FlightReference string
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	validation := domain.NewValidationError()
	if input.UserID == "" {
		validation.Add("user_id", "user id is required")
	}
	hasHotel := input.RoomTypeID != ""
	if !hasHotel && input.FlightReference == "" {
		validation.Add("booking", "provide a room type or a flight reference")
	}
	if hasHotel {
		if input.HotelID == "" {
			validation.Add("hotel_id", "hotel id is required for a hotel leg")
		}
		if !input.CheckOut.After(input.CheckIn) {
			validation.Add("check_out", "check-out must be after check-in")
		}
	}
	if validation.HasErrors() {
		return nil, validation
	}

	trip := &domain.Booking{
		ID:     uuid.NewString(),
		UserID: input.UserID,
		Status: domain.BookingStatusActive,
	}

	if hasHotel {
		if s.cache != nil {
			ok, err := s.cache.AcquireRoomTypeLock(ctx, input.RoomTypeID, s.lockTTL)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, domain.NewValidationError().Add("room_type_id", "room type is being booked by another request, retry")
			}
			defer func() {
				_ = s.cache.ReleaseRoomTypeLock(ctx, input.RoomTypeID)
			}()
		}

		hotelBooking := &domain.HotelBooking{
			ID:         uuid.NewString(),
			HotelID:    input.HotelID,
			RoomTypeID: input.RoomTypeID,
			UserID:     input.UserID,
			CheckIn:    input.CheckIn,
			CheckOut:   input.CheckOut,
		}
		if err := s.hotelBookings.Create(ctx, hotelBooking); err != nil {
			return nil, err
		}
		trip.HotelBookingID = hotelBooking.ID
	}

	if input.FlightReference != "" {
		flightBooking := &domain.FlightBooking{
			ID:        uuid.NewString(),
			Reference: input.FlightReference,
			Status:    domain.BookingStatusActive,
		}
		if err := s.flights.Create(ctx, flightBooking); err != nil {
			return nil, err
		}
		trip.FlightBookingID = flightBooking.ID
	}

	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.BookingsCreatedTotal.Inc()
	}

	if err := s.notifier.Notify(ctx, input.UserID, "Your trip has been booked."); err != nil {
		log.Printf("WARNING: failed to notify user %s about booking %s: %v", input.UserID, trip.ID, err)
		if s.metrics != nil {
			s.metrics.NotifyFailuresTotal.Inc()
		}
	}
	return trip, nil
}

type CancelBookingInput struct {
	ActorID         string
	BookingID       string
	FlightBookingID string
	HotelBookingID  string
}

// ComponentOutcome reports one leg of the cancellation so the caller can
// tell "flight cancelled, hotel pending" from full success.
type ComponentOutcome struct {
	Requested    bool            `json:"requested"`
	Cancelled    bool            `json:"cancelled"`
	Confirmation json.RawMessage `json:"confirmation,omitempty"`
}

type CancelResult struct {
	BookingStatus domain.BookingStatus `json:"booking_status"`
	Flight        ComponentOutcome     `json:"flight"`
	Hotel         ComponentOutcome     `json:"hotel"`
}

// CancelBooking cancels a combined booking. The flight leg goes first:
// until AFS confirms, nothing local changes, so the local record can
// never show CANCELLED for a flight that might still be active remotely.
func (s *BookingService) CancelBooking(ctx context.Context, input CancelBookingInput) (*CancelResult, error) {
	validation := domain.NewValidationError()
	if input.BookingID == "" {
		validation.Add("booking_id", "you need to provide a booking id")
	}
	if input.FlightBookingID == "" && input.HotelBookingID == "" {
		validation.Add("booking", "you need to cancel at least one booking")
	}
	if validation.HasErrors() {
		return nil, validation
	}

	trip, err := s.trips.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if trip.UserID != input.ActorID {
		return nil, domain.ErrForbidden
	}

	if input.FlightBookingID != "" && input.FlightBookingID != trip.FlightBookingID {
		return nil, domain.NewValidationError().Add("flight_booking_id", "flight booking does not belong to this booking")
	}
	if input.HotelBookingID != "" && input.HotelBookingID != trip.HotelBookingID {
		return nil, domain.NewValidationError().Add("hotel_booking_id", "hotel booking does not belong to this booking")
	}

	requester, err := s.users.GetByID(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}

	result := &CancelResult{
		BookingStatus: trip.Status,
		Flight:        ComponentOutcome{Requested: input.FlightBookingID != ""},
		Hotel:         ComponentOutcome{Requested: input.HotelBookingID != ""},
	}

	var steps []sagaStep

	if input.FlightBookingID != "" {
		steps = append(steps,
			sagaStep{name: "cancel flight at AFS", fatal: true, run: func(ctx context.Context) error {
				flight, err := s.flights.GetByID(ctx, input.FlightBookingID)
				if err != nil {
					return err
				}

				confirmation, err := s.cancelRemote(ctx, flight.Reference, requester.LastName)
				if err != nil {
					return err
				}

				if _, err := s.flights.UpdateStatus(ctx, flight.ID, domain.BookingStatusCancelled); err != nil {
					return err
				}
				result.Flight.Cancelled = true
				result.Flight.Confirmation = confirmation
				if s.metrics != nil {
					s.metrics.BookingsCancelledTotal.WithLabelValues("flight").Inc()
				}
				return nil
			}},
			sagaStep{name: "notify flight cancellation", fatal: false, run: func(ctx context.Context) error {
				return s.notify(ctx, input.ActorID, "Your flight booking has been cancelled.")
			}},
		)
	}

	if input.HotelBookingID != "" {
		steps = append(steps,
			sagaStep{name: "cancel hotel booking", fatal: true, run: func(ctx context.Context) error {
				if _, err := s.hotelBookings.Cancel(ctx, input.HotelBookingID); err != nil {
					return err
				}
				result.Hotel.Cancelled = true
				if s.metrics != nil {
					s.metrics.BookingsCancelledTotal.WithLabelValues("hotel").Inc()
				}
				return nil
			}},
			sagaStep{name: "notify hotel cancellation", fatal: false, run: func(ctx context.Context) error {
				return s.notify(ctx, input.ActorID, "Your hotel room booking has been cancelled.")
			}},
		)
	}

	if input.FlightBookingID != "" && input.HotelBookingID != "" {
		steps = append(steps, sagaStep{name: "cancel parent booking", fatal: true, run: func(ctx context.Context) error {
			updated, err := s.trips.UpdateStatus(ctx, trip.ID, domain.BookingStatusCancelled)
			if err != nil {
				return err
			}
			result.BookingStatus = updated.Status
			if s.metrics != nil {
				s.metrics.BookingsCancelledTotal.WithLabelValues("trip").Inc()
			}
			return nil
		}})
	}

	if err := runSaga(ctx, steps); err != nil {
		return result, err
	}
	return result, nil
}

func (s *BookingService) cancelRemote(ctx context.Context, reference, lastName string) (json.RawMessage, error) {
	start := time.Now()
	confirmation, err := s.afs.CancelFlight(ctx, reference, lastName)
	if s.metrics != nil {
		s.metrics.AFSRequestDuration.Observe(time.Since(start).Seconds())
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		s.metrics.AFSRequestsTotal.WithLabelValues(outcome).Inc()
	}
	return confirmation, err
}

func (s *BookingService) notify(ctx context.Context, uid, message string) error {
	err := s.notifier.Notify(ctx, uid, message)
	if err != nil && s.metrics != nil {
		s.metrics.NotifyFailuresTotal.Inc()
	}
	return err
}

var _ BookingUseCase = (*BookingService)(nil)
