package handlers

import (
	"net/http"

	"medibook/services/labtest"
	"medibook/services/user"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LabTestHandler serves the lab test order endpoints.
type LabTestHandler struct {
	Tests labtest.LabTestService
	Users user.UserService
}

func NewLabTestHandler(tests labtest.LabTestService, users user.UserService) *LabTestHandler {
	return &LabTestHandler{Tests: tests, Users: users}
}

// OrderTestHandler handles POST /api/tests.
func (h *LabTestHandler) OrderTestHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		TestType        string  `json:"testType" binding:"required,testtype"`
		TestFee         float64 `json:"testfee" binding:"required,gt=0"`
		PaymentMethodID string  `json:"paymentMethodid" binding:"required"`
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

	resp, err := h.Tests.OrderTest(c.Request.Context(), labtest.OrderTestRequest{
		Patient:         patient,
		TestType:        req.TestType,
		TestFee:         req.TestFee,
		PaymentMethodID: req.PaymentMethodID,
	})
	if err != nil {
		logger.Warn("test order failed", zap.String("patient_id", patient.ID), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetTestHandler handles GET /api/tests/:id.
func (h *LabTestHandler) GetTestHandler(c *gin.Context) {
	test, err := h.Tests.GetTest(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": test})
}

// ListMyTestsHandler handles GET /api/tests/my?testType=blood.
func (h *LabTestHandler) ListMyTestsHandler(c *gin.Context) {
	page, limit := pageParams(c)
	tests, pageInfo, err := h.Tests.ListPatientTests(c.GetString("userID"), c.Query("testType"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tests, "pageInfo": pageInfo})
}

// ListAllTestsHandler handles GET /api/tests (admin).
func (h *LabTestHandler) ListAllTestsHandler(c *gin.Context) {
	page, limit := pageParams(c)
	tests, pageInfo, err := h.Tests.ListAllTests(c.Query("testType"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tests, "pageInfo": pageInfo})
}

// AttachDocumentHandler handles PATCH /api/tests/:id/document, recording an
// uploaded result document on an existing order.
func (h *LabTestHandler) AttachDocumentHandler(c *gin.Context) {
	var req struct {
		DocFile    string `json:"docfile" binding:"required"`
		DocFileKey string `json:"docfilekey" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	test, err := h.Tests.AttachDocument(labtest.AttachDocumentRequest{
		TestID:     c.Param("id"),
		DocFile:    req.DocFile,
		DocFileKey: req.DocFileKey,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": test})
}
