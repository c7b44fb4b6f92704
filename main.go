package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook/config"
	"medibook/database"
	bookingRepoPkg "medibook/database/repository/booking"
	labtestRepoPkg "medibook/database/repository/labtest"
	userRepoPkg "medibook/database/repository/user"
	"medibook/handlers"
	"medibook/routes"
	"medibook/services/booking"
	"medibook/services/labtest"
	"medibook/services/meeting"
	"medibook/services/notification"
	"medibook/services/payment"
	"medibook/services/user"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.InitLockClient()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	labtestRepo := labtestRepoPkg.NewMongoLabTestRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// upstream adapters.
	gateway := payment.NewStripeGateway(logger)
	provisioner := meeting.NewZoomProvisioner(meeting.ZoomCredentials{
		AccountID:    config.AppConfig.ZoomAccountID,
		ClientID:     config.AppConfig.ZoomClientID,
		ClientSecret: config.AppConfig.ZoomClientSecret,
	}, logger)
	mailer := notification.NewSMTPSender(notification.SMTPConfig{
		Host:     config.AppConfig.SMTPHost,
		Port:     config.AppConfig.SMTPPort,
		Username: config.AppConfig.SMTPUser,
		Password: config.AppConfig.SMTPPassword,
		From:     config.AppConfig.EmailFrom,
	}, logger)

	// services.
	bookingService := &booking.DefaultBookingService{
		Repo:       bookingRepo,
		Conflicts:  &booking.RepoConflictChecker{Repo: bookingRepo},
		Locks:      booking.NewRedisSlotLocker(utils.GetLockClient()),
		Gateway:    gateway,
		Meetings:   provisioner,
		Mailer:     mailer,
		AdminEmail: config.AppConfig.AdminEmail,
		Logger:     logger,
	}
	labtestService := &labtest.DefaultLabTestService{
		Repo:    labtestRepo,
		Gateway: gateway,
		Logger:  logger,
	}
	userService := &user.DefaultUserService{
		Repo:        userRepo,
		Bookings:    bookingService,
		Mailer:      mailer,
		BookingRepo: bookingRepo,
		TestRepo:    labtestRepo,
		Logger:      logger,
	}

	authHandler := handlers.NewAuthHandler(userService)
	bookingHandler := handlers.NewBookingHandler(bookingService, userService)
	labtestHandler := handlers.NewLabTestHandler(labtestService, userService)
	userHandler := handlers.NewUserHandler(userService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		// Auth endpoints.
		RegisterHandler:            authHandler.RegisterHandler,
		LoginHandler:               authHandler.LoginHandler,
		ForgotPasswordHandler:      authHandler.ForgotPasswordHandler,
		ResetPasswordHandler:       authHandler.ResetPasswordHandler,
		UpdatePasswordHandler:      authHandler.UpdatePasswordHandler,
		CreateFirstPasswordHandler: authHandler.CreateFirstPasswordHandler,

		// Booking endpoints.
		CreateBookingHandler:   bookingHandler.CreateBookingHandler,
		GetBookingHandler:      bookingHandler.GetBookingHandler,
		ListMyBookingsHandler:  bookingHandler.ListMyBookingsHandler,
		ListAllBookingsHandler: bookingHandler.ListAllBookingsHandler,
		CalendarHandler:        bookingHandler.CalendarHandler,

		// Lab test endpoints.
		OrderTestHandler:      labtestHandler.OrderTestHandler,
		GetTestHandler:        labtestHandler.GetTestHandler,
		ListMyTestsHandler:    labtestHandler.ListMyTestsHandler,
		ListAllTestsHandler:   labtestHandler.ListAllTestsHandler,
		AttachDocumentHandler: labtestHandler.AttachDocumentHandler,

		// User and admin endpoints.
		GetMeHandler:          userHandler.GetMeHandler,
		UpdateProfileHandler:  userHandler.UpdateProfileHandler,
		GetUserByIDHandler:    userHandler.GetUserByIDHandler,
		ListUsersHandler:      userHandler.ListUsersHandler,
		DeleteUserHandler:     userHandler.DeleteUserHandler,
		UpdateStatusHandler:   userHandler.UpdateStatusHandler,
		DashboardStatsHandler: userHandler.DashboardStatsHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
