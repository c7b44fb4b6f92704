package labtest

import (
	"context"
	"fmt"
	"time"

	labtestRepo "medibook/database/repository/labtest"
	"medibook/models"
	"medibook/services/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Currency is the single currency this system charges in.
const Currency = "usd"

// OrderTestRequest is the validated input of one test-order transaction.
type OrderTestRequest struct {
	Patient         *models.User
	TestType        string
	TestFee         float64
	PaymentMethodID string
}

// AttachDocumentRequest attaches an uploaded result document to a test.
type AttachDocumentRequest struct {
	TestID     string
	DocFile    string
	DocFileKey string
}

// LabTestService creates and queries lab test orders.
type LabTestService interface {
	OrderTest(ctx context.Context, req OrderTestRequest) (*models.LabTestResponse, error)
	GetTest(id string) (*models.LabTestWithPatient, error)
	ListPatientTests(patientID, testType string, page, limit int) ([]models.LabTest, models.PageInfo, error)
	ListAllTests(testType string, page, limit int) ([]models.LabTestWithPatient, models.PageInfo, error)
	AttachDocument(req AttachDocumentRequest) (*models.LabTest, error)
}

// DefaultLabTestService is the production implementation.
type DefaultLabTestService struct {
	Repo    labtestRepo.LabTestRepository
	Gateway payment.Gateway
	Logger  *zap.Logger
}

func validateOrderTest(req OrderTestRequest) error {
	fields := map[string]string{}
	if req.Patient == nil || req.Patient.ID == "" {
		fields["patient"] = "requesting user is required"
	}
	if !models.ValidTestType(req.TestType) {
		fields["testType"] = "test type must be one of blood, tasso, prick"
	}
	if req.TestFee <= 0 {
		fields["testfee"] = "test fee must be greater than zero"
	}
	if req.PaymentMethodID == "" {
		fields["paymentMethodid"] = "payment method is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// OrderTest runs the test-order transaction: authorize, capture, persist.
// There is no slot or meeting step; the compensation rule is the same as for
// bookings — every failure after authorization cancels the hold.
func (s *DefaultLabTestService) OrderTest(ctx context.Context, req OrderTestRequest) (*models.LabTestResponse, error) {
	if err := validateOrderTest(req); err != nil {
		return nil, err
	}

	amount := payment.MinorUnits(req.TestFee)
	intent, err := s.Gateway.Authorize(ctx, amount, Currency, req.PaymentMethodID)
	if err != nil {
		s.Logger.Warn("test order authorization failed", zap.Error(err))
		return nil, &payment.AuthorizationFailedError{}
	}
	if intent.Status != models.IntentStatusRequiresCapture {
		return nil, &payment.AuthorizationFailedError{Status: intent.Status}
	}

	var test *models.LabTest
	err = payment.WithCompensation(ctx, s.Gateway, s.Logger, intent.ID, func() error {
		captured, err := s.Gateway.Capture(ctx, intent.ID)
		if err != nil {
			return &payment.CaptureFailedError{Err: err}
		}
		if captured.Status != models.IntentStatusSucceeded {
			return &payment.CaptureFailedError{Status: captured.Status}
		}

		test = &models.LabTest{
			ID:            uuid.New().String(),
			PatientID:     req.Patient.ID,
			TestType:      req.TestType,
			PaymentStatus: models.PaymentStatusPaid,
			TestFee:       req.TestFee,
			CreatedAt:     time.Now(),
		}
		if err := s.Repo.Create(test); err != nil {
			return fmt.Errorf("failed to persist lab test: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &models.LabTestResponse{
		Test:         test,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// GetTest retrieves a lab test joined with its patient.
func (s *DefaultLabTestService) GetTest(id string) (*models.LabTestWithPatient, error) {
	test, err := s.Repo.GetByIDWithPatient(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lab test: %w", err)
	}
	if test == nil {
		return nil, &NotFoundError{ID: id}
	}
	return test, nil
}

// ListPatientTests returns a page of one patient's tests, optionally
// filtered by type.
func (s *DefaultLabTestService) ListPatientTests(patientID, testType string, page, limit int) ([]models.LabTest, models.PageInfo, error) {
	page, limit = normalizePage(page, limit)
	if testType != "" && !models.ValidTestType(testType) {
		return nil, models.PageInfo{}, &ValidationError{Fields: map[string]string{
			"testType": "test type must be one of blood, tasso, prick",
		}}
	}
	tests, total, err := s.Repo.ListByPatient(patientID, testType, page, limit)
	if err != nil {
		return nil, models.PageInfo{}, err
	}
	return tests, models.NewPageInfo(len(tests), total, page, limit), nil
}

// ListAllTests returns a page of all tests with their patients joined.
func (s *DefaultLabTestService) ListAllTests(testType string, page, limit int) ([]models.LabTestWithPatient, models.PageInfo, error) {
	page, limit = normalizePage(page, limit)
	tests, total, err := s.Repo.ListAllWithPatients(testType, page, limit)
	if err != nil {
		return nil, models.PageInfo{}, err
	}
	return tests, models.NewPageInfo(len(tests), total, page, limit), nil
}

// AttachDocument records the uploaded result document on an existing test.
func (s *DefaultLabTestService) AttachDocument(req AttachDocumentRequest) (*models.LabTest, error) {
	if req.DocFile == "" || req.DocFileKey == "" {
		return nil, &ValidationError{Fields: map[string]string{
			"docfile": "document file and key are required",
		}}
	}
	test, err := s.Repo.AttachDocument(req.TestID, req.DocFile, req.DocFileKey)
	if err != nil {
		return nil, fmt.Errorf("failed to attach document: %w", err)
	}
	if test == nil {
		return nil, &NotFoundError{ID: req.TestID}
	}
	return test, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}
