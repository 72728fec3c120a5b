package domain

import "time"

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// HotelBooking holds one room index of a room type across [CheckIn, CheckOut).
type HotelBooking struct {
	ID         string
	HotelID    string
	RoomTypeID string
	UserID     string
	RoomIndex  int
	CheckIn    time.Time
	CheckOut   time.Time
	Status     BookingStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FlightBooking is opaque beyond its AFS reference and status.
type FlightBooking struct {
	ID        string
	Reference string
	Status    BookingStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Booking is the user-facing trip record. It goes CANCELLED only once
// every component it holds has been cancelled.
type Booking struct {
	ID              string
	UserID          string
	Status          BookingStatus
	FlightBookingID string
	HotelBookingID  string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
