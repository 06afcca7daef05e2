package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/brightstay/brightstay-api/internal/cache"
	"github.com/brightstay/brightstay-api/internal/http/handlers"
	httpmw "github.com/brightstay/brightstay-api/internal/http/middleware"
	"github.com/brightstay/brightstay-api/internal/payments"
	"github.com/brightstay/brightstay-api/internal/platform/mailer"
	"github.com/brightstay/brightstay-api/internal/repo/postgres"
	"github.com/brightstay/brightstay-api/internal/service"
	"github.com/brightstay/brightstay-api/pkg/config"
	"github.com/brightstay/brightstay-api/pkg/database"
	"github.com/brightstay/brightstay-api/pkg/events"
	"github.com/brightstay/brightstay-api/pkg/logger"
	"github.com/brightstay/brightstay-api/pkg/metrics"
	mw "github.com/brightstay/brightstay-api/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()

	if err := database.Migrate(cfg.Database.URL, cfg.Database.MigrationsDir); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	idemStore, err := cache.New(cfg.Redis)
	if err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer idemStore.Close()

	if err := idemStore.Ping(ctx); err != nil {
		logger.Error("Failed to ping redis", "error", err)
		os.Exit(1)
	}

	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	metrics.Init()

	var mail mailer.Service
	if cfg.Email.DevMode || cfg.Email.MailerSendKey == "" {
		mail = mailer.NewDevMailer()
	} else {
		mail = mailer.NewMailer(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	// Repositories
	userRepo := postgres.NewUsersRepo(pool)
	roomRepo := postgres.NewRoomsRepo(pool)
	bookingRepo := postgres.NewBookingsRepo(pool)

	// Services
	userService := service.NewUserService(userRepo, eventBus)
	bookingService := service.NewBookingService(bookingRepo, roomRepo, eventBus, mail)
	statsService := service.NewStatsService(userRepo, roomRepo, bookingRepo)
	paymentService := payments.New(cfg.Stripe.SecretKey, cfg.Stripe.Currency)

	// Handlers
	ah := handlers.NewAuthHandler(cfg)
	uh := handlers.NewUsersHandler(userService)
	rh := handlers.NewRoomsHandler(roomRepo)
	bh := handlers.NewBookingsHandler(bookingService, paymentService)
	sh := handlers.NewStatsHandler(statsService)

	// Gate stages
	session := httpmw.NewSession(cfg.Auth.JWTSecret, cfg.Auth.CookieName)
	requireAdmin := httpmw.RequireAdmin(userRepo)
	requireHost := httpmw.RequireHost(userRepo)
	idem := mw.IdempotencyMiddleware(idemStore)

	tokenLimiter := httpmw.NewRateLimiter(pool, httpmw.RateLimitConfig{
		Requests: 30,
		Window:   time.Minute,
		KeyFunc:  httpmw.IPRateLimitKeyFunc,
	})

	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("api"))
	r.Use(mw.Logging)
	r.Use(mw.CORS(cfg.Server.CORSOrigins))
	r.Use(mw.Health)
	r.Use(metrics.Instrument)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Hello from BrightStay Server.."))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Session lifecycle
	r.With(tokenLimiter.Middleware()).Post("/jwt", ah.IssueToken)
	r.Get("/logout", ah.Logout)

	// Users
	r.Put("/user", uh.Upsert)
	r.Get("/user/{email}", uh.Get)
	r.With(session.RequireToken, requireAdmin).Get("/users", uh.List)
	// Ungated on purpose: the admin UI calls the role-promotion PATCH
	// before the promoted session exists.
	r.Patch("/users/update/{email}", uh.Update)

	// Rooms
	r.Get("/rooms", rh.List)
	r.With(session.RequireToken, requireHost).Post("/room", rh.Create)
	r.With(session.RequireToken, requireHost).Get("/my-listings/{email}", rh.MyListings)
	r.Get("/room/{id}", rh.Get)
	r.With(session.RequireToken, requireHost).Delete("/room/{id}", rh.Delete)
	r.Patch("/room/status/{id}", bh.UpdateRoomStatus)

	// Booking-payment workflow
	r.With(session.RequireToken, idem).Post("/create-payment-intent", bh.CreatePaymentIntent)
	r.With(session.RequireToken, idem).Post("/booking", bh.CreateBooking)
	r.With(session.RequireToken).Get("/my-bookings/{email}", bh.MyBookings)
	r.With(session.RequireToken, requireHost).Get("/manage-bookings/{email}", bh.ManageBookings)
	r.With(session.RequireToken).Delete("/booking/{id}", bh.DeleteBooking)

	// Statistics
	r.With(session.RequireToken, requireAdmin).Get("/admin-stat", sh.Admin)
	r.With(session.RequireToken, requireHost).Get("/host-stat", sh.Host)
	r.With(session.RequireToken).Get("/guest-stat", sh.Guest)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down API server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("API server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting API server", "port", cfg.Server.Port, "env", cfg.Env)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("API server error", "error", err)
		os.Exit(1)
	}
}
