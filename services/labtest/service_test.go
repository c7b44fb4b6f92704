package labtest

import (
	"context"
	"errors"
	"testing"
	"time"

	"medibook/models"
	"medibook/services/payment"

	"go.uber.org/zap"
)

type fakeTestRepo struct {
	created []*models.LabTest
	stored  map[string]*models.LabTest

	createErr error
}

func (r *fakeTestRepo) Create(test *models.LabTest) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, test)
	return nil
}

func (r *fakeTestRepo) GetByID(id string) (*models.LabTest, error) { return r.stored[id], nil }

func (r *fakeTestRepo) GetByIDWithPatient(id string) (*models.LabTestWithPatient, error) {
	t := r.stored[id]
	if t == nil {
		return nil, nil
	}
	return &models.LabTestWithPatient{LabTest: *t}, nil
}

func (r *fakeTestRepo) ListByPatient(patientID, testType string, page, limit int) ([]models.LabTest, int64, error) {
	return nil, 0, nil
}

func (r *fakeTestRepo) ListAllWithPatients(testType string, page, limit int) ([]models.LabTestWithPatient, int64, error) {
	return nil, 0, nil
}

func (r *fakeTestRepo) AttachDocument(id, docFile, docFileKey string) (*models.LabTest, error) {
	t := r.stored[id]
	if t == nil {
		return nil, nil
	}
	t.DocFile = docFile
	t.DocFileKey = docFileKey
	t.UpdatedAt = time.Now()
	return t, nil
}

func (r *fakeTestRepo) CountByType() (int64, map[string]int64, error) { return 0, nil, nil }

type fakeGateway struct {
	authorizes int
	captures   int
	cancels    int

	authorizeErr  error
	captureStatus string
}

func (g *fakeGateway) Authorize(ctx context.Context, amount int64, currency, methodID string) (*models.PaymentIntent, error) {
	g.authorizes++
	if g.authorizeErr != nil {
		return nil, g.authorizeErr
	}
	return &models.PaymentIntent{ID: "pi_test", Status: models.IntentStatusRequiresCapture, ClientSecret: "secret_test"}, nil
}

func (g *fakeGateway) Capture(ctx context.Context, id string) (*models.CaptureResult, error) {
	g.captures++
	status := g.captureStatus
	if status == "" {
		status = models.IntentStatusSucceeded
	}
	return &models.CaptureResult{Status: status}, nil
}

func (g *fakeGateway) Cancel(ctx context.Context, id string) error {
	g.cancels++
	return nil
}

func newTestService(repo *fakeTestRepo, gw *fakeGateway) *DefaultLabTestService {
	return &DefaultLabTestService{Repo: repo, Gateway: gw, Logger: zap.NewNop()}
}

func validOrder() OrderTestRequest {
	return OrderTestRequest{
		Patient:         &models.User{ID: "user-1", Email: "patient@example.test"},
		TestType:        models.TestTypeBlood,
		TestFee:         25.00,
		PaymentMethodID: "tok_valid",
	}
}

func TestOrderTestSuccess(t *testing.T) {
	repo := &fakeTestRepo{}
	gw := &fakeGateway{}
	svc := newTestService(repo, gw)

	resp, err := svc.OrderTest(context.Background(), validOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ClientSecret != "secret_test" {
		t.Errorf("ClientSecret = %q, want secret_test", resp.ClientSecret)
	}
	if len(repo.created) != 1 {
		t.Fatalf("created = %d tests, want 1", len(repo.created))
	}
	if repo.created[0].PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("PaymentStatus = %q, want paid", repo.created[0].PaymentStatus)
	}
	if gw.cancels != 0 {
		t.Errorf("cancels = %d, want 0", gw.cancels)
	}
}

func TestOrderTestAuthorizeErrorIsTerminal(t *testing.T) {
	repo := &fakeTestRepo{}
	gw := &fakeGateway{authorizeErr: errors.New("card declined")}
	svc := newTestService(repo, gw)

	_, err := svc.OrderTest(context.Background(), validOrder())
	var authErr *payment.AuthorizationFailedError
	if !errors.As(err, &authErr) {
		t.Fatalf("err = %v, want AuthorizationFailedError", err)
	}
	if gw.captures != 0 || gw.cancels != 0 {
		t.Errorf("captures/cancels = %d/%d, want 0/0", gw.captures, gw.cancels)
	}
	if len(repo.created) != 0 {
		t.Errorf("created = %d tests, want 0", len(repo.created))
	}
}

func TestOrderTestCaptureFailureCancelsOnce(t *testing.T) {
	repo := &fakeTestRepo{}
	gw := &fakeGateway{captureStatus: "failed"}
	svc := newTestService(repo, gw)

	_, err := svc.OrderTest(context.Background(), validOrder())
	var captureErr *payment.CaptureFailedError
	if !errors.As(err, &captureErr) {
		t.Fatalf("err = %v, want CaptureFailedError", err)
	}
	if gw.cancels != 1 {
		t.Errorf("cancels = %d, want 1", gw.cancels)
	}
	if len(repo.created) != 0 {
		t.Errorf("created = %d tests, want 0", len(repo.created))
	}
}

func TestOrderTestPersistFailureCancelsOnce(t *testing.T) {
	repo := &fakeTestRepo{createErr: errors.New("write failed")}
	gw := &fakeGateway{}
	svc := newTestService(repo, gw)

	_, err := svc.OrderTest(context.Background(), validOrder())
	if err == nil {
		t.Fatal("expected an error")
	}
	if gw.cancels != 1 {
		t.Errorf("cancels = %d, want 1", gw.cancels)
	}
}

func TestOrderTestValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*OrderTestRequest)
		field  string
	}{
		{"missing patient", func(r *OrderTestRequest) { r.Patient = nil }, "patient"},
		{"unknown type", func(r *OrderTestRequest) { r.TestType = "saliva" }, "testType"},
		{"zero fee", func(r *OrderTestRequest) { r.TestFee = 0 }, "testfee"},
		{"missing payment method", func(r *OrderTestRequest) { r.PaymentMethodID = "" }, "paymentMethodid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{}
			svc := newTestService(&fakeTestRepo{}, gw)
			req := validOrder()
			tt.mutate(&req)

			_, err := svc.OrderTest(context.Background(), req)
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if _, ok := valErr.Fields[tt.field]; !ok {
				t.Errorf("Fields = %v, want entry for %q", valErr.Fields, tt.field)
			}
			if gw.authorizes != 0 {
				t.Errorf("authorizes = %d, want 0", gw.authorizes)
			}
		})
	}
}

func TestAttachDocumentRequiresBothFields(t *testing.T) {
	svc := newTestService(&fakeTestRepo{}, &fakeGateway{})

	_, err := svc.AttachDocument(AttachDocumentRequest{TestID: "t1", DocFile: "report.pdf"})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestAttachDocumentUpdatesStoredTest(t *testing.T) {
	repo := &fakeTestRepo{stored: map[string]*models.LabTest{
		"t1": {ID: "t1", TestType: models.TestTypeTasso},
	}}
	svc := newTestService(repo, &fakeGateway{})

	updated, err := svc.AttachDocument(AttachDocumentRequest{
		TestID:     "t1",
		DocFile:    "report.pdf",
		DocFileKey: "uploads/report.pdf",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.DocFile != "report.pdf" || updated.DocFileKey != "uploads/report.pdf" {
		t.Errorf("document = %q/%q, want the attached values", updated.DocFile, updated.DocFileKey)
	}
}

func TestAttachDocumentMissingTest(t *testing.T) {
	svc := newTestService(&fakeTestRepo{stored: map[string]*models.LabTest{}}, &fakeGateway{})

	_, err := svc.AttachDocument(AttachDocumentRequest{
		TestID:     "missing",
		DocFile:    "report.pdf",
		DocFileKey: "uploads/report.pdf",
	})
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}
