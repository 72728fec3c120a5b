package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewRepositories(t *testing.T) {
	pool := &pgxpool.Pool{}

	assert.NotNil(t, NewHotelRepository(pool))
	assert.NotNil(t, NewRoomTypeRepository(pool))
	assert.NotNil(t, NewHotelBookingRepository(pool))
	assert.NotNil(t, NewBookingRepository(pool))
	assert.NotNil(t, NewFlightBookingRepository(pool))
	assert.NotNil(t, NewUserRepository(pool))
}
