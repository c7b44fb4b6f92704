package handlers

import (
	"errors"
	"net/http"

	"medibook/services/booking"
	"medibook/services/labtest"
	"medibook/services/meeting"
	"medibook/services/payment"
	"medibook/services/user"
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// respondError translates a service error into an HTTP response. Each domain
// error kind keeps its own status so clients can tell a declined card from a
// taken slot from a missing record.
func respondError(c *gin.Context, err error) {
	var (
		bookingValidation *booking.ValidationError
		labtestValidation *labtest.ValidationError
		userValidation    *user.ValidationError
		conflict          *booking.ConflictError
		authFailed        *payment.AuthorizationFailedError
		captureFailed     *payment.CaptureFailedError
		provisionFailed   *meeting.ProvisioningFailedError
		credentials       *user.CredentialsError
		accountState      *user.AccountStateError
		bookingNotFound   *booking.NotFoundError
		labtestNotFound   *labtest.NotFoundError
		userNotFound      *user.NotFoundError
	)

	switch {
	case errors.As(err, &bookingValidation):
		utils.JSONFieldError(c, http.StatusBadRequest, "Invalid request", bookingValidation.Fields)
	case errors.As(err, &labtestValidation):
		utils.JSONFieldError(c, http.StatusBadRequest, "Invalid request", labtestValidation.Fields)
	case errors.As(err, &userValidation):
		utils.JSONFieldError(c, http.StatusBadRequest, "Invalid request", userValidation.Fields)
	case errors.As(err, &conflict):
		utils.JSONError(c, http.StatusBadRequest, conflict.Error(), "")
	case errors.As(err, &authFailed):
		utils.JSONError(c, http.StatusPaymentRequired, "Payment authorization failed", authFailed.Error())
	case errors.As(err, &captureFailed):
		utils.JSONError(c, http.StatusPaymentRequired, "Payment capture failed", captureFailed.Error())
	case errors.As(err, &provisionFailed):
		utils.JSONError(c, http.StatusBadGateway, "Could not create the meeting", provisionFailed.Error())
	case errors.As(err, &credentials):
		utils.JSONError(c, http.StatusUnauthorized, credentials.Error(), "")
	case errors.As(err, &accountState):
		utils.JSONError(c, http.StatusUnauthorized, accountState.Message, "")
	case errors.As(err, &bookingNotFound), errors.As(err, &labtestNotFound), errors.As(err, &userNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error(), "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}
