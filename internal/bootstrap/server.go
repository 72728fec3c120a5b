package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/Domenick1991/tripbooking/api"
	"github.com/Domenick1991/tripbooking/config"
	"github.com/Domenick1991/tripbooking/internal/auth"
	"github.com/Domenick1991/tripbooking/internal/obs"
	"github.com/Domenick1991/tripbooking/internal/service/booking"
	"github.com/Domenick1991/tripbooking/internal/service/hotels"
	"github.com/Domenick1991/tripbooking/internal/service/rooms"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run starts the HTTP server and blocks until the context is canceled
// or the server fails.
func Run(
	ctx context.Context,
	cfg *config.Config,
	verifier auth.Verifier,
	metrics *obs.Metrics,
	hotelSvc hotels.HotelUseCase,
	roomSvc rooms.RoomUseCase,
	bookingSvc booking.BookingUseCase,
) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(verifier, metrics, hotelSvc, roomSvc, bookingSvc),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

func newRouter(
	verifier auth.Verifier,
	metrics *obs.Metrics,
	hotelSvc hotels.HotelUseCase,
	roomSvc rooms.RoomUseCase,
	bookingSvc booking.BookingUseCase,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	if metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	}

	public := router.Group("/api")
	authed := router.Group("/api")
	authed.Use(auth.Middleware(verifier))

	api.NewHotelHandler(hotelSvc).Register(public, authed)
	api.NewRoomHandler(roomSvc).Register(public, authed)
	api.NewBookingHandler(bookingSvc).Register(authed)

	return router
}
