package api

import (
	"net/http"

	"github.com/Domenick1991/tripbooking/internal/auth"
	"github.com/Domenick1991/tripbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(authed *gin.RouterGroup) {
	authed.POST("/bookings", h.create)
	authed.POST("/bookings/cancel", h.cancel)
}

type createBookingRequest struct {
	HotelID         string `json:"hotel_id"`
	RoomTypeID      string `json:"room_type_id"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	FlightReference string `json:"flight_reference"`
}

func (h *BookingHandler) create(c *gin.Context) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := booking.CreateBookingInput{
		UserID:          claims.UserID,
		HotelID:         req.HotelID,
		RoomTypeID:      req.RoomTypeID,
		FlightReference: req.FlightReference,
	}
	if req.RoomTypeID != "" {
		checkIn, err := parseDate("check_in", req.CheckIn)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		checkOut, err := parseDate("check_out", req.CheckOut)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		input.CheckIn = checkIn
		input.CheckOut = checkOut
	}

	trip, err := h.service.CreateBooking(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": trip})
}

type cancelBookingRequest struct {
	BookingID       string `json:"booking_id" binding:"required"`
	FlightBookingID string `json:"flight_booking_id"`
	HotelBookingID  string `json:"hotel_booking_id"`
}

func (h *BookingHandler) cancel(c *gin.Context) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req cancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.CancelBooking(c.Request.Context(), booking.CancelBookingInput{
		ActorID:         claims.UserID,
		BookingID:       req.BookingID,
		FlightBookingID: req.FlightBookingID,
		HotelBookingID:  req.HotelBookingID,
	})
	if err != nil {
		// A partial result still tells the caller which legs went
		// through before the saga stopped.
		if result != nil {
			respondErrorWithBody(c, err, result)
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
