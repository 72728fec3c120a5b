package domain

import (
	"time"

	"github.com/Domenick1991/tripbooking/internal/calendar"
)

type RoomType struct {
	ID         string
	HotelID    string
	Name       string
	Amenities  []string
	PriceCents int64
	TotalRooms int
	Schedule   *calendar.Calendar
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
