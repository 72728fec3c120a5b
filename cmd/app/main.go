package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/tripbooking/config"
	"github.com/Domenick1991/tripbooking/internal/afs"
	"github.com/Domenick1991/tripbooking/internal/auth"
	"github.com/Domenick1991/tripbooking/internal/bootstrap"
	"github.com/Domenick1991/tripbooking/internal/cache"
	"github.com/Domenick1991/tripbooking/internal/kafka"
	"github.com/Domenick1991/tripbooking/internal/notify"
	"github.com/Domenick1991/tripbooking/internal/obs"
	"github.com/Domenick1991/tripbooking/internal/repository"
	"github.com/Domenick1991/tripbooking/internal/service/booking"
	"github.com/Domenick1991/tripbooking/internal/service/hotels"
	"github.com/Domenick1991/tripbooking/internal/service/rooms"
	"github.com/Domenick1991/tripbooking/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := migrations.Apply(ctx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.SearchCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	notifier := notify.NewKafkaNotifier(producer, cfg.Kafka.NotificationsTopic)

	metrics := obs.NewMetrics(prometheus.NewRegistry())
	flightsClient := afs.NewClient(cfg.AFS)
	verifier := auth.NewHTTPVerifier(cfg.Auth)

	hotelRepo := repository.NewHotelRepository(pool)
	roomRepo := repository.NewRoomTypeRepository(pool)
	hotelBookingRepo := repository.NewHotelBookingRepository(pool)
	tripRepo := repository.NewBookingRepository(pool)
	flightBookingRepo := repository.NewFlightBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	hotelService := hotels.NewHotelService(hotelRepo, roomRepo, redisCache)
	roomService := rooms.NewRoomService(roomRepo, hotelRepo, hotelBookingRepo, notifier, metrics, cfg.Booking.HorizonDays)
	bookingService := booking.NewBookingService(
		tripRepo,
		hotelBookingRepo,
		flightBookingRepo,
		userRepo,
		flightsClient,
		redisCache,
		notifier,
		metrics,
		time.Duration(cfg.Booking.ReservationLockTTL)*time.Second,
	)

	if err := bootstrap.Run(ctx, cfg, verifier, metrics, hotelService, roomService, bookingService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
