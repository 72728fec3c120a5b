package hotels

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/tripbooking/internal/calendar"
	"github.com/Domenick1991/tripbooking/internal/domain"
	"github.com/Domenick1991/tripbooking/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockHotelRepository struct {
	mock.Mock
}

func (m *MockHotelRepository) Create(ctx context.Context, hotel *domain.Hotel) error {
	args := m.Called(ctx, hotel)
	return args.Error(0)
}

func (m *MockHotelRepository) GetByID(ctx context.Context, id string) (*domain.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hotel), args.Error(1)
}

func (m *MockHotelRepository) List(ctx context.Context, filter repository.HotelFilter) ([]domain.Hotel, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Hotel), args.Error(1)
}

type MockRoomTypeRepository struct {
	mock.Mock
}

func (m *MockRoomTypeRepository) Create(ctx context.Context, room *domain.RoomType) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomTypeRepository) GetByID(ctx context.Context, id string) (*domain.RoomType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoomType), args.Error(1)
}

func (m *MockRoomTypeRepository) ListByHotel(ctx context.Context, hotelID string) ([]domain.RoomType, error) {
	args := m.Called(ctx, hotelID)
	return args.Get(0).([]domain.RoomType), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetSearchResults(ctx context.Context, key string) ([]domain.HotelSummary, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HotelSummary), args.Error(1)
}

func (m *MockCache) SetSearchResults(ctx context.Context, key string, hotels []domain.HotelSummary) error {
	args := m.Called(ctx, key, hotels)
	return args.Error(0)
}

func date(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func newCalendar(t *testing.T, rooms int) *calendar.Calendar {
	t.Helper()
	cal, err := calendar.New(rooms, 365, date(2025, time.January, 1))
	require.NoError(t, err)
	return cal
}

func baseFilters() SearchFilters {
	return SearchFilters{
		CheckIn:  date(2025, time.June, 1),
		CheckOut: date(2025, time.June, 3),
		City:     "Toronto",
	}
}

func TestSearch_OnlyHotelsWithAvailableRoomsAppear(t *testing.T) {
	hotelRepo := &MockHotelRepository{}
	roomRepo := &MockRoomTypeRepository{}

	hotelRepo.On("List", mock.Anything, repository.HotelFilter{City: "Toronto"}).Return([]domain.Hotel{
		{ID: "hotel-1", Name: "Grand", City: "Toronto", StarRating: 4},
		{ID: "hotel-2", Name: "Plaza", City: "Toronto", StarRating: 5},
	}, nil)

	// hotel-1 has a free room; hotel-2 is fully booked for the window.
	freeCal := newCalendar(t, 1)
	bookedCal := newCalendar(t, 1)
	_, err := bookedCal.Reserve(date(2025, time.June, 1), date(2025, time.June, 3))
	require.NoError(t, err)

	roomRepo.On("ListByHotel", mock.Anything, "hotel-1").Return([]domain.RoomType{
		{ID: "room-1", HotelID: "hotel-1", PriceCents: 15000, Schedule: freeCal},
	}, nil)
	roomRepo.On("ListByHotel", mock.Anything, "hotel-2").Return([]domain.RoomType{
		{ID: "room-2", HotelID: "hotel-2", PriceCents: 20000, Schedule: bookedCal},
	}, nil)

	svc := NewHotelService(hotelRepo, roomRepo, nil)
	results, err := svc.Search(context.Background(), baseFilters())

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "hotel-1", results[0].ID)
	assert.Equal(t, int64(15000), results[0].StartingPriceCents)
}

func TestSearch_PriceRangeFiltersRoomTypes(t *testing.T) {
	hotelRepo := &MockHotelRepository{}
	roomRepo := &MockRoomTypeRepository{}

	hotelRepo.On("List", mock.Anything, mock.Anything).Return([]domain.Hotel{
		{ID: "hotel-1", Name: "Grand", City: "Toronto"},
	}, nil)
	roomRepo.On("ListByHotel", mock.Anything, "hotel-1").Return([]domain.RoomType{
		{ID: "room-cheap", PriceCents: 5000, Schedule: newCalendar(t, 1)},
		{ID: "room-mid", PriceCents: 15000, Schedule: newCalendar(t, 1)},
		{ID: "room-lux", PriceCents: 50000, Schedule: newCalendar(t, 1)},
	}, nil)

	filters := baseFilters()
	filters.MinPriceCents = 10000
	filters.MaxPriceCents = 20000

	svc := NewHotelService(hotelRepo, roomRepo, nil)
	results, err := svc.Search(context.Background(), filters)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(15000), results[0].StartingPriceCents)
}

func TestSearch_WindowBeyondHorizonCountsAsUnavailable(t *testing.T) {
	hotelRepo := &MockHotelRepository{}
	roomRepo := &MockRoomTypeRepository{}

	hotelRepo.On("List", mock.Anything, mock.Anything).Return([]domain.Hotel{
		{ID: "hotel-1", Name: "Grand", City: "Toronto"},
	}, nil)
	roomRepo.On("ListByHotel", mock.Anything, "hotel-1").Return([]domain.RoomType{
		{ID: "room-1", PriceCents: 15000, Schedule: newCalendar(t, 1)},
	}, nil)

	filters := baseFilters()
	filters.CheckIn = date(2027, time.June, 1)
	filters.CheckOut = date(2027, time.June, 3)

	svc := NewHotelService(hotelRepo, roomRepo, nil)
	results, err := svc.Search(context.Background(), filters)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_Validation(t *testing.T) {
	svc := NewHotelService(&MockHotelRepository{}, &MockRoomTypeRepository{}, nil)

	_, err := svc.Search(context.Background(), SearchFilters{})
	assert.NotNil(t, domain.IsValidationError(err))

	filters := baseFilters()
	filters.CheckOut = filters.CheckIn
	_, err = svc.Search(context.Background(), filters)
	assert.NotNil(t, domain.IsValidationError(err))
}

func TestSearch_CacheHitSkipsRepositories(t *testing.T) {
	hotelRepo := &MockHotelRepository{}
	roomRepo := &MockRoomTypeRepository{}
	cache := &MockCache{}

	cached := []domain.HotelSummary{{ID: "hotel-1", Name: "Grand"}}
	cache.On("GetSearchResults", mock.Anything, mock.Anything).Return(cached, nil)

	svc := NewHotelService(hotelRepo, roomRepo, cache)
	results, err := svc.Search(context.Background(), baseFilters())

	require.NoError(t, err)
	assert.Equal(t, cached, results)
	hotelRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestSearch_CacheMissPopulatesCache(t *testing.T) {
	hotelRepo := &MockHotelRepository{}
	roomRepo := &MockRoomTypeRepository{}
	cache := &MockCache{}

	cache.On("GetSearchResults", mock.Anything, mock.Anything).Return(nil, nil)
	cache.On("SetSearchResults", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	hotelRepo.On("List", mock.Anything, mock.Anything).Return([]domain.Hotel{
		{ID: "hotel-1", Name: "Grand", City: "Toronto"},
	}, nil)
	roomRepo.On("ListByHotel", mock.Anything, "hotel-1").Return([]domain.RoomType{
		{ID: "room-1", PriceCents: 15000, Schedule: newCalendar(t, 1)},
	}, nil)

	svc := NewHotelService(hotelRepo, roomRepo, cache)
	results, err := svc.Search(context.Background(), baseFilters())

	require.NoError(t, err)
	require.Len(t, results, 1)
	cache.AssertCalled(t, "SetSearchResults", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateHotel_Validation(t *testing.T) {
	svc := NewHotelService(&MockHotelRepository{}, &MockRoomTypeRepository{}, nil)

	_, err := svc.CreateHotel(context.Background(), CreateHotelInput{OwnerID: "owner-1", StarRating: 9})
	validation := domain.IsValidationError(err)
	require.NotNil(t, validation)
	assert.Contains(t, validation.Fields(), "name")
	assert.Contains(t, validation.Fields(), "star_rating")
}

func TestCreateHotel_Success(t *testing.T) {
	hotelRepo := &MockHotelRepository{}
	hotelRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewHotelService(hotelRepo, &MockRoomTypeRepository{}, nil)
	hotel, err := svc.CreateHotel(context.Background(), CreateHotelInput{
		OwnerID:    "owner-1",
		Name:       "Grand",
		Address:    "1 Main St",
		City:       "Toronto",
		StarRating: 4,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, hotel.ID)
	assert.Equal(t, "owner-1", hotel.OwnerID)
}
