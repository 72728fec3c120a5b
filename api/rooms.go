package api

import (
	"net/http"

	"github.com/Domenick1991/tripbooking/internal/auth"
	"github.com/Domenick1991/tripbooking/internal/service/rooms"
	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	service rooms.RoomUseCase
}

func NewRoomHandler(service rooms.RoomUseCase) *RoomHandler {
	return &RoomHandler{service: service}
}

func (h *RoomHandler) Register(public, authed *gin.RouterGroup) {
	public.GET("/rooms/:id/availability", h.roomTypeAvailability)
	authed.POST("/hotels/:id/rooms", h.createRoomType)
	authed.GET("/hotels/:id/availability", h.hotelAvailability)
	authed.PATCH("/rooms/:id", h.resize)
}

type createRoomTypeRequest struct {
	Name       string   `json:"name" binding:"required"`
	Amenities  []string `json:"amenities"`
	PriceCents int64    `json:"price_cents" binding:"required"`
	TotalRooms int      `json:"total_rooms" binding:"required"`
}

func (h *RoomHandler) createRoomType(c *gin.Context) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.service.CreateRoomType(c.Request.Context(), rooms.CreateRoomTypeInput{
		ActorID:    claims.UserID,
		HotelID:    c.Param("id"),
		Name:       req.Name,
		Amenities:  req.Amenities,
		PriceCents: req.PriceCents,
		TotalRooms: req.TotalRooms,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"room_type": room})
}

func (h *RoomHandler) hotelAvailability(c *gin.Context) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	checkIn, err := parseDate("checkIn", c.Query("checkIn"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkOut, err := parseDate("checkOut", c.Query("checkOut"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	availability, err := h.service.HotelAvailability(c.Request.Context(), rooms.AvailabilityInput{
		ActorID:  claims.UserID,
		HotelID:  c.Param("id"),
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if availability == nil {
		availability = []rooms.RoomTypeAvailability{}
	}

	c.JSON(http.StatusOK, gin.H{"room_types": availability})
}

func (h *RoomHandler) roomTypeAvailability(c *gin.Context) {
	checkIn, err := parseDate("checkIn", c.Query("checkIn"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkOut, err := parseDate("checkOut", c.Query("checkOut"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	available, err := h.service.RoomTypeAvailability(c.Request.Context(), c.Param("id"), checkIn, checkOut)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": available})
}

type resizeRequest struct {
	TotalRooms *int   `json:"total_rooms" binding:"required"`
	CheckIn    string `json:"check_in" binding:"required"`
	CheckOut   string `json:"check_out" binding:"required"`
}

func (h *RoomHandler) resize(c *gin.Context) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req resizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
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

	result, err := h.service.Resize(c.Request.Context(), rooms.ResizeInput{
		ActorID:    claims.UserID,
		ActorRole:  claims.Role,
		RoomTypeID: c.Param("id"),
		Target:     *req.TotalRooms,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
