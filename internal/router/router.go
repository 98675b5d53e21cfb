package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rewardof/FieldBookingApp/internal/handlers"
	"github.com/rewardof/FieldBookingApp/internal/middleware"
)

type Deps struct {
	Auth      interface {
		handlers.AuthSvc
		middleware.Authenticator
	}
	Fields    handlers.FieldSvc
	Bookings  handlers.BookingSvc
	Files     handlers.FileSvc
	Locations handlers.LocationSvc
	Health    map[string]handlers.Pinger
	UploadDir string
	Log       *zap.Logger
}

func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.Recovery(d.Log),
	)

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID}
	config.ExposeHeaders = []string{middleware.HeaderRequestID}
	r.Use(cors.New(config))

	if d.UploadDir != "" {
		r.Static("/uploads", d.UploadDir)
	}

	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.Health(d.Health))

		auth := api.Group("/auth")
		{
			auth.POST("/send-otp", handlers.SendOTP(d.Auth))
			auth.POST("/verify-otp", handlers.VerifyOTP(d.Auth))
			auth.POST("/login", handlers.Login(d.Auth))
		}

		locations := api.Group("/locations")
		{
			locations.GET("/countries", handlers.ListCountries(d.Locations))
			locations.GET("/regions", handlers.ListRegions(d.Locations))
			locations.GET("/districts", handlers.ListDistricts(d.Locations))
		}

		authenticate := middleware.AuthMiddleware(d.Auth)
		staff := middleware.RequireStaff()

		users := api.Group("/users", authenticate)
		{
			users.GET("/me", handlers.GetProfile(d.Auth))
			users.PATCH("/me", handlers.UpdateProfile(d.Auth))
		}

		fields := api.Group("/fields")
		{
			// Public
			fields.GET("", handlers.SearchFields(d.Fields))
			fields.GET("/:id", handlers.GetField(d.Fields))

			fields.GET("/my-fields", authenticate, handlers.MyFields(d.Fields))
			fields.POST("", authenticate, staff, handlers.CreateField(d.Fields))
			fields.PUT("/:id", authenticate, staff, handlers.UpdateField(d.Fields))
			fields.DELETE("/:id", authenticate, staff, handlers.DeleteField(d.Fields))

			fields.GET("/:id/bookings", authenticate, staff, handlers.ListFieldBookings(d.Bookings))
			fields.POST("/:id/bookings", authenticate, handlers.CreateBooking(d.Bookings))
			fields.GET("/:id/bookings/:bookingId", authenticate, handlers.GetBooking(d.Bookings))
			fields.POST("/:id/bookings/:bookingId/change-status", authenticate, handlers.ChangeBookingStatus(d.Bookings))
		}

		api.POST("/files", authenticate, handlers.UploadFile(d.Files))
	}

	return r
}
