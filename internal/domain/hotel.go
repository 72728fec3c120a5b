package domain

import "time"

type Hotel struct {
	ID         string
	OwnerID    string
	Name       string
	Address    string
	City       string
	StarRating int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HotelSummary is the search-result projection: hotel info plus the
// cheapest room type that was available for the requested dates.
type HotelSummary struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Address            string `json:"address"`
	City               string `json:"city"`
	StarRating         int    `json:"star_rating"`
	StartingPriceCents int64  `json:"starting_price_cents"`
}
