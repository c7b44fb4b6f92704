package handlers

import (
	userRepoPkg "medibook/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	// Auth endpoints
	RegisterHandler            gin.HandlerFunc
	LoginHandler               gin.HandlerFunc
	ForgotPasswordHandler      gin.HandlerFunc
	ResetPasswordHandler       gin.HandlerFunc
	UpdatePasswordHandler      gin.HandlerFunc
	CreateFirstPasswordHandler gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler   gin.HandlerFunc
	GetBookingHandler      gin.HandlerFunc
	ListMyBookingsHandler  gin.HandlerFunc
	ListAllBookingsHandler gin.HandlerFunc
	CalendarHandler        gin.HandlerFunc

	// Lab test endpoints
	OrderTestHandler      gin.HandlerFunc
	GetTestHandler        gin.HandlerFunc
	ListMyTestsHandler    gin.HandlerFunc
	ListAllTestsHandler   gin.HandlerFunc
	AttachDocumentHandler gin.HandlerFunc

	// User and admin endpoints
	GetMeHandler          gin.HandlerFunc
	UpdateProfileHandler  gin.HandlerFunc
	GetUserByIDHandler    gin.HandlerFunc
	ListUsersHandler      gin.HandlerFunc
	DeleteUserHandler     gin.HandlerFunc
	UpdateStatusHandler   gin.HandlerFunc
	DashboardStatsHandler gin.HandlerFunc
}
