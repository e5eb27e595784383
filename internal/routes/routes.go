package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/availability"
	"github.com/BruksfildServices01/barber-booking/internal/cart"
	"github.com/BruksfildServices01/barber-booking/internal/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// Deps are the singletons built in main and shared with background jobs.
type Deps struct {
	Config   *config.Config
	Logger   *slog.Logger
	DB       *gorm.DB
	Provider domain.Provider
	Store    domain.KeyValueStore
	Snapshot *catalog.Snapshot
	Tracker  *availability.Tracker
	Carts    *cart.Manager
	Audit    audit.Recorder
	Signer   *middleware.SessionSigner
	Location *time.Location
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	fetcher := availability.NewFetcher(d.Provider, availability.FetcherConfig{
		Location:    d.Location,
		LocationID:  cfg.Square.LocationID,
		WindowDays:  cfg.AvailabilityWindowDays,
		Concurrency: cfg.AvailabilityConcurrency,
	}, d.Logger)

	customerOpts := validators.CustomerOptions{
		CheckEmailDomain: cfg.ValidateEmailDomain,
	}

	// ======================================================
	// 🧠 USE CASES — AVAILABILITY
	// ======================================================
	searchAvailabilityUC := ucBooking.NewSearchAvailability(
		fetcher,
		d.Tracker,
		d.Carts,
		cfg.AvailabilityHorizonDays,
	)
	listDatesUC := ucBooking.NewListAvailableDates(d.Tracker, d.Location)
	timesForDateUC := ucBooking.NewTimesForDate(d.Tracker, d.Location)

	// ======================================================
	// 🧠 USE CASES — BOOKING
	// ======================================================
	createCustomerUC := ucBooking.NewCreateCustomer(d.Provider, d.Audit, customerOpts)

	createBookingUC := ucBooking.NewCreateBooking(
		d.Provider,
		d.Audit,
		cfg.Square.LocationID,
	)

	checkoutUC := ucBooking.NewCheckout(
		d.Carts,
		d.Tracker,
		createCustomerUC,
		createBookingUC,
		d.Store,
		d.Audit,
		d.Location,
		d.Logger,
	)

	confirmationUC := ucBooking.NewGetConfirmation(d.Store)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	catalogHandler := handlers.NewCatalogHandler(d.Snapshot)
	cartHandler := handlers.NewCartHandler(d.Carts, d.Snapshot)

	availabilityHandler := handlers.NewAvailabilityHandler(
		searchAvailabilityUC,
		listDatesUC,
		timesForDateUC,
		d.Location,
	)

	bookingHandler := handlers.NewBookingHandler(
		createCustomerUC,
		createBookingUC,
		checkoutUC,
		confirmationUC,
		cfg.BusinessName,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 📚 CATALOG (no session)
		// ------------------------------
		api.GET("/services", catalogHandler.ListServices)
		api.GET("/team-members", catalogHandler.ListTeamMembers)
		api.GET("/barbers", catalogHandler.ListBarbers)
		api.GET("/barbers/:id", catalogHandler.GetBarber)

		// ------------------------------
		// 🍪 BOOKING SESSION
		// ------------------------------
		session := api.Group("/")
		session.Use(middleware.SessionMiddleware(d.Signer))
		{
			session.GET("/cart", cartHandler.Get)
			session.POST("/cart/items", cartHandler.Add)
			session.POST("/cart/switch-barber", cartHandler.SwitchBarber)
			session.DELETE("/cart/items/:serviceID", cartHandler.Remove)
			session.DELETE("/cart", cartHandler.Clear)

			session.POST("/availability/search", availabilityHandler.Search)
			session.GET("/availability/dates", availabilityHandler.Dates)
			session.GET("/availability/dates/:date", availabilityHandler.Times)

			session.POST("/customers", bookingHandler.CreateCustomer)
			session.POST("/bookings", bookingHandler.CreateBooking)
			session.POST("/checkout", bookingHandler.Checkout)
			session.GET("/bookings/confirmation", bookingHandler.Confirmation)

			if d.DB != nil {
				session.GET("/session/activity", handlers.NewActivityHandler(d.DB).List)
			}
		}
	}
}
