package handlers

import (
	"medibook/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Custom binding validators shared by the request payloads.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("testtype", func(fl validator.FieldLevel) bool {
			return models.ValidTestType(fl.Field().String())
		})
		v.RegisterValidation("accountstatus", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case models.StatusActive, models.StatusInactive, models.StatusSuspend,
				models.StatusDelete, models.StatusPending, models.StatusRejected:
				return true
			}
			return false
		})
	}
}
