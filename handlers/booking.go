package handlers

import (
	"net/http"
	"strconv"
	"time"

	"medibook/services/booking"
	"medibook/services/user"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the consulting booking endpoints.
type BookingHandler struct {
	Bookings booking.BookingService
	Users    user.UserService
}

func NewBookingHandler(bookings booking.BookingService, users user.UserService) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Users: users}
}

// pageParams reads the page and limit query parameters, zero when absent.
// The services apply their own defaults.
func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page"))
	limit, _ = strconv.Atoi(c.Query("limit"))
	return page, limit
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		AppointmentTime time.Time `json:"appointmentDateandTime" binding:"required"`
		Reason          string    `json:"reason"`
		BookingFee      float64   `json:"bookingfee" binding:"required,gt=0"`
		PaymentMethodID string    `json:"paymentMethodid" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	patient, err := h.Users.GetUser(c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.Bookings.CreateBooking(c.Request.Context(), booking.CreateBookingRequest{
		Patient:         patient,
		AppointmentTime: req.AppointmentTime,
		Reason:          req.Reason,
		BookingFee:      req.BookingFee,
		PaymentMethodID: req.PaymentMethodID,
	})
	if err != nil {
		logger.Warn("booking failed", zap.String("patient_id", patient.ID), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetBookingHandler handles GET /api/bookings/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	bk, err := h.Bookings.GetBooking(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bk})
}

// ListMyBookingsHandler handles GET /api/bookings/my.
func (h *BookingHandler) ListMyBookingsHandler(c *gin.Context) {
	page, limit := pageParams(c)
	bookings, pageInfo, err := h.Bookings.ListPatientBookings(c.GetString("userID"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bookings, "pageInfo": pageInfo})
}

// ListAllBookingsHandler handles GET /api/bookings (admin).
func (h *BookingHandler) ListAllBookingsHandler(c *gin.Context) {
	page, limit := pageParams(c)
	bookings, pageInfo, err := h.Bookings.ListAllBookings(page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bookings, "pageInfo": pageInfo})
}

// CalendarHandler handles GET /api/bookings/calendar?month=2026-09. It
// returns the appointment instants of the requested month, defaulting to the
// current one.
func (h *BookingHandler) CalendarHandler(c *gin.Context) {
	monthOf := time.Now()
	if m := c.Query("month"); m != "" {
		parsed, err := time.Parse("2006-01", m)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid month, expected YYYY-MM", err.Error())
			return
		}
		monthOf = parsed
	}

	instants, err := h.Bookings.CalendarBookings(monthOf)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": instants})
}
