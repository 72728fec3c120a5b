package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/tripbooking/internal/auth"
	"github.com/Domenick1991/tripbooking/internal/domain"
	"github.com/Domenick1991/tripbooking/internal/service/hotels"
	"github.com/gin-gonic/gin"
)

type HotelHandler struct {
	service hotels.HotelUseCase
}

func NewHotelHandler(service hotels.HotelUseCase) *HotelHandler {
	return &HotelHandler{service: service}
}

func (h *HotelHandler) Register(public, authed *gin.RouterGroup) {
	public.GET("/hotels/search", h.search)
	authed.POST("/hotels", h.create)
}

type createHotelRequest struct {
	Name       string `json:"name" binding:"required"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	StarRating int    `json:"star_rating" binding:"required"`
}

func (h *HotelHandler) create(c *gin.Context) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hotel, err := h.service.CreateHotel(c.Request.Context(), hotels.CreateHotelInput{
		OwnerID:    claims.UserID,
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		StarRating: req.StarRating,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"hotel": hotel})
}

func (h *HotelHandler) search(c *gin.Context) {
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

	filters := hotels.SearchFilters{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		City:     c.Query("city"),
		Name:     c.Query("name"),
	}
	if rating := c.Query("starRating"); rating != "" {
		value, err := strconv.Atoi(rating)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "starRating must be an integer"})
			return
		}
		filters.StarRating = value
	}
	if priceRange := c.Query("priceRange"); priceRange != "" {
		minCents, maxCents, err := parsePriceRange(priceRange)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filters.MinPriceCents = minCents
		filters.MaxPriceCents = maxCents
	}

	results, err := h.service.Search(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	if results == nil {
		results = []domain.HotelSummary{}
	}

	c.JSON(http.StatusOK, gin.H{"hotels": results})
}
