package cmd

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"time"

	"event-hub/config"
	"event-hub/internal/handlers"
	"event-hub/internal/services"
	_ "event-hub/migrations"
	"event-hub/monitoring"
	"event-hub/security"
	"event-hub/utils"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
)

func Start() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	app := pocketbase.New()

	cfg := config.LoadConfig()

	redisClient := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()

	// Initialize services
	registrantCache := services.NewRegistrantCache(redisClient, cfg.RegistrantsCacheTTL)
	accessService := services.NewAccessService(app)
	eventService := services.NewEventService(app)
	wishlistService := services.NewWishlistService(app)
	pastEventService := services.NewPastEventService(app)
	participantService := services.NewParticipantService(app, registrantCache)

	// Initialize handlers
	accessHandler := handlers.NewAccessHandler(app, accessService)
	eventHandler := handlers.NewEventHandler(app, eventService, pastEventService)
	participantHandler := handlers.NewParticipantHandler(app, participantService, pastEventService)
	wishlistHandler := handlers.NewWishlistHandler(app, wishlistService)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: cfg.Environment == "development",
	})

	if cfg.EnableMetrics {
		go monitoring.Serve(cfg.MetricsPort)
	}

	rateLimiter := security.NewRateLimiter(redisClient, cfg.RateLimitWindow, cfg.RateLimitMax)

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		if cfg.RateLimitEnabled {
			se.Router.BindFunc(rateLimiter.Middleware())
		}
		se.Router.BindFunc(requestMetrics)

		// Access-request endpoints
		se.Router.POST("/api/access-requests", accessHandler.Submit)
		se.Router.GET("/api/access-requests", accessHandler.List)
		se.Router.GET("/api/access-requests/check-access", accessHandler.CheckAccess)
		se.Router.GET("/api/access-requests/my-latest", accessHandler.MyLatest)
		se.Router.GET("/api/access-requests/{id}", accessHandler.Get)
		se.Router.PATCH("/api/access-requests/{id}", accessHandler.Decide)

		// Event endpoints
		se.Router.GET("/api/events", eventHandler.List)
		se.Router.POST("/api/events", eventHandler.Create)
		se.Router.GET("/api/events/stats", eventHandler.Stats)
		se.Router.GET("/api/events/update-past-events", eventHandler.MigrationStatus)
		se.Router.POST("/api/events/update-past-events", eventHandler.MigratePastEvents)
		se.Router.GET("/api/events/registration-info", eventHandler.RegistrationInfo)
		se.Router.GET("/api/events/past-event-details", eventHandler.PastEventDetails)
		se.Router.POST("/api/events/past-event-details", eventHandler.SavePastEventDetails)
		se.Router.POST("/api/events/add-feedback", eventHandler.AddFeedback)

		// Participant endpoints
		se.Router.GET("/api/participants/profile", participantHandler.GetProfile)
		se.Router.POST("/api/participants/profile", participantHandler.UpsertProfile)
		se.Router.GET("/api/participants/check-registration", participantHandler.CheckRegistration)
		se.Router.POST("/api/participants/register", participantHandler.Register)
		se.Router.GET("/api/participants/registered-events", participantHandler.RegisteredEvents)
		se.Router.GET("/api/participants/wishlisted-events", participantHandler.WishlistedEvents)
		se.Router.GET("/api/participants/won-events", participantHandler.WonEvents)
		se.Router.GET("/api/participants/registered-users", participantHandler.RegisteredUsers)

		// Wishlist endpoints
		se.Router.POST("/api/wishlist/add", wishlistHandler.Add)
		se.Router.POST("/api/wishlist/check", wishlistHandler.Check)
		se.Router.DELETE("/api/wishlist/remove", wishlistHandler.Remove)

		// Health check
		se.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			if _, err := app.DB().NewQuery("SELECT 1").Execute(); err != nil {
				return e.JSON(http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  "store unreachable",
				})
			}
			return e.JSON(http.StatusOK, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		setupCacheHooks(app, registrantCache)

		return se.Next()
	})

	return app.Start()
}

// requestMetrics records method, route and outcome for every request.
func requestMetrics(e *core.RequestEvent) error {
	started := time.Now()
	err := e.Next()

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	monitoring.TrackRequest(e.Request.Method, e.Request.URL.Path, outcome, time.Since(started))

	return err
}

// setupCacheHooks drops the cached registrant listing of an event whenever a
// membership row changes, including edits made through the admin UI.
func setupCacheHooks(app *pocketbase.PocketBase, cache *services.RegistrantCache) {
	invalidate := func(e *core.RecordEvent) error {
		registrationID := e.Record.GetString("registration")

		registration, err := e.App.FindRecordById("registrations", registrationID)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				slog.Warn("registrant cache hook lookup failed",
					"registration_id", registrationID,
					"error", err,
				)
			}
			return e.Next()
		}

		cache.Invalidate(context.Background(), registration.GetString("event"))
		return e.Next()
	}

	app.OnRecordAfterCreateSuccess("registration_members").BindFunc(invalidate)
	app.OnRecordAfterUpdateSuccess("registration_members").BindFunc(invalidate)
	app.OnRecordAfterDeleteSuccess("registration_members").BindFunc(invalidate)
}
