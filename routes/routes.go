package routes

import (
	"net/http"
	"time"

	"medibook/handlers"
	"medibook/middleware"
	"medibook/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and password endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)
		api.POST("/forgot-password", hb.ForgotPasswordHandler)
		api.PATCH("/reset-password/:token", hb.ResetPasswordHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.PATCH("/update-password", hb.UpdatePasswordHandler)
		api.POST("/create-password", hb.CreateFirstPasswordHandler)
	}
}

// RegisterBookingRoutes registers the consulting booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", hb.CreateBookingHandler)
		api.GET("/my", hb.ListMyBookingsHandler)
		api.GET("/calendar", hb.CalendarHandler)
		api.GET("/:id", hb.GetBookingHandler)

		// Admin-only listing.
		api.GET("", middleware.RequireRole(models.RoleAdmin), hb.ListAllBookingsHandler)
	}
}

// RegisterLabTestRoutes registers the lab test order endpoints.
func RegisterLabTestRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/tests")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", hb.OrderTestHandler)
		api.GET("/my", hb.ListMyTestsHandler)
		api.GET("/:id", hb.GetTestHandler)

		admin := api.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		admin.GET("", hb.ListAllTestsHandler)
		admin.PATCH("/:id/document", hb.AttachDocumentHandler)
	}
}

// RegisterUserRoutes registers profile and admin user-management endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/me", hb.GetMeHandler)
		api.PATCH("/me", hb.UpdateProfileHandler)

		admin := api.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		admin.GET("", hb.ListUsersHandler)
		admin.GET("/:id", hb.GetUserByIDHandler)
		admin.DELETE("/:id", hb.DeleteUserHandler)
		admin.PATCH("/:id/status", hb.UpdateStatusHandler)
	}
}

// RegisterAdminRoutes registers the admin dashboard endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleAdmin))
		api.GET("/dashboard", hb.DashboardStatsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterLabTestRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
