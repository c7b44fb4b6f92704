package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"medibook/models"
	"medibook/services/meeting"
	"medibook/services/payment"

	"go.uber.org/zap"
)

type fakeRepo struct {
	created  []*models.Booking
	existing bool

	createErr error
	existsErr error

	lastWindowAt time.Time
	lastWindow   time.Duration

	rangeFn func(from, to time.Time)
}

func (r *fakeRepo) Create(b *models.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, b)
	return nil
}

func (r *fakeRepo) GetByID(id string) (*models.Booking, error) { return nil, nil }

func (r *fakeRepo) GetByIDWithPatient(id string) (*models.BookingWithPatient, error) {
	return nil, nil
}

func (r *fakeRepo) ExistsInWindow(at time.Time, window time.Duration) (bool, error) {
	r.lastWindowAt = at
	r.lastWindow = window
	return r.existing, r.existsErr
}

func (r *fakeRepo) ListByPatient(patientID string, page, limit int) ([]models.Booking, int64, error) {
	return nil, 0, nil
}

func (r *fakeRepo) ListAllWithPatients(page, limit int) ([]models.BookingWithPatient, int64, error) {
	return nil, 0, nil
}

func (r *fakeRepo) AppointmentsInRange(from, to time.Time) ([]time.Time, error) {
	if r.rangeFn != nil {
		r.rangeFn(from, to)
	}
	return nil, nil
}

func (r *fakeRepo) Stats() (int64, float64, error) { return 0, 0, nil }

type fakeGateway struct {
	authorizes int
	captures   int
	cancels    int

	authorizeErr  error
	captureErr    error
	intentStatus  string
	captureStatus string
}

func (g *fakeGateway) Authorize(ctx context.Context, amount int64, currency, methodID string) (*models.PaymentIntent, error) {
	g.authorizes++
	if g.authorizeErr != nil {
		return nil, g.authorizeErr
	}
	status := g.intentStatus
	if status == "" {
		status = models.IntentStatusRequiresCapture
	}
	return &models.PaymentIntent{ID: "pi_test", Status: status, ClientSecret: "secret_test"}, nil
}

func (g *fakeGateway) Capture(ctx context.Context, id string) (*models.CaptureResult, error) {
	g.captures++
	if g.captureErr != nil {
		return nil, g.captureErr
	}
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

type fakeLocks struct {
	denied   bool
	acquires int
	releases int
}

func (l *fakeLocks) Acquire(ctx context.Context, at time.Time) (func(), bool, error) {
	l.acquires++
	if l.denied {
		return nil, false, nil
	}
	return func() { l.releases++ }, true, nil
}

type fakeProvisioner struct {
	err      error
	meetings int
}

func (p *fakeProvisioner) CreateMeeting(ctx context.Context, start time.Time) (*models.Meeting, error) {
	p.meetings++
	if p.err != nil {
		return nil, p.err
	}
	return &models.Meeting{ID: 42, JoinURL: "https://zoom.us/j/42", Topic: "Consulting meeting"}, nil
}

type fakeMailer struct {
	recipients []string
	err        error
}

func (m *fakeMailer) SendHTML(recipient, subject, htmlBody string) error {
	m.recipients = append(m.recipients, recipient)
	return m.err
}

func (m *fakeMailer) SendTemplate(recipient, templateName string, data map[string]any) error {
	m.recipients = append(m.recipients, recipient)
	return m.err
}

func (m *fakeMailer) SendText(recipient, subject, text string) error {
	m.recipients = append(m.recipients, recipient)
	return m.err
}

type testDeps struct {
	repo        *fakeRepo
	gateway     *fakeGateway
	locks       *fakeLocks
	provisioner *fakeProvisioner
	mailer      *fakeMailer
}

func newTestService(deps *testDeps) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:       deps.repo,
		Conflicts:  &RepoConflictChecker{Repo: deps.repo},
		Locks:      deps.locks,
		Gateway:    deps.gateway,
		Meetings:   deps.provisioner,
		Mailer:     deps.mailer,
		AdminEmail: "admin@clinic.test",
		Logger:     zap.NewNop(),
	}
}

func newDeps() *testDeps {
	return &testDeps{
		repo:        &fakeRepo{},
		gateway:     &fakeGateway{},
		locks:       &fakeLocks{},
		provisioner: &fakeProvisioner{},
		mailer:      &fakeMailer{},
	}
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		Patient: &models.User{
			ID:    "user-1",
			Name:  "Test Patient",
			Email: "patient@example.test",
		},
		AppointmentTime: time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		Reason:          "consultation",
		BookingFee:      50.00,
		PaymentMethodID: "tok_valid",
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	deps := newDeps()
	svc := newTestService(deps)

	resp, err := svc.CreateBooking(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ClientSecret != "secret_test" {
		t.Errorf("ClientSecret = %q, want secret_test", resp.ClientSecret)
	}

	if len(deps.repo.created) != 1 {
		t.Fatalf("created = %d bookings, want 1", len(deps.repo.created))
	}
	b := deps.repo.created[0]
	if b.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("PaymentStatus = %q, want paid", b.PaymentStatus)
	}
	if b.MeetingLink == "" {
		t.Error("persisted booking has no meeting link")
	}
	if deps.gateway.cancels != 0 {
		t.Errorf("cancels = %d, want 0", deps.gateway.cancels)
	}
	if deps.locks.releases != 1 {
		t.Errorf("lock releases = %d, want 1", deps.locks.releases)
	}

	// Patient plus configured admin copy.
	if len(deps.mailer.recipients) != 2 {
		t.Fatalf("mail recipients = %v, want patient and admin", deps.mailer.recipients)
	}
	if deps.mailer.recipients[0] != "patient@example.test" {
		t.Errorf("first recipient = %q, want the patient", deps.mailer.recipients[0])
	}
}

func TestCreateBookingConflictMakesNoGatewayCalls(t *testing.T) {
	deps := newDeps()
	deps.repo.existing = true
	svc := newTestService(deps)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
	if deps.gateway.authorizes != 0 || deps.gateway.captures != 0 || deps.gateway.cancels != 0 {
		t.Errorf("gateway calls = %d/%d/%d, want none",
			deps.gateway.authorizes, deps.gateway.captures, deps.gateway.cancels)
	}
	if len(deps.repo.created) != 0 {
		t.Errorf("created = %d bookings, want 0", len(deps.repo.created))
	}
}

func TestCreateBookingLockDeniedIsConflict(t *testing.T) {
	deps := newDeps()
	deps.locks.denied = true
	svc := newTestService(deps)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
	if deps.gateway.authorizes != 0 {
		t.Errorf("authorizes = %d, want 0", deps.gateway.authorizes)
	}
}

func TestCreateBookingAuthorizeErrorIsTerminal(t *testing.T) {
	deps := newDeps()
	deps.gateway.authorizeErr = errors.New("card declined")
	svc := newTestService(deps)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	var authErr *payment.AuthorizationFailedError
	if !errors.As(err, &authErr) {
		t.Fatalf("err = %v, want AuthorizationFailedError", err)
	}
	if deps.gateway.captures != 0 || deps.gateway.cancels != 0 {
		t.Errorf("captures/cancels = %d/%d, want 0/0", deps.gateway.captures, deps.gateway.cancels)
	}
	if len(deps.repo.created) != 0 {
		t.Errorf("created = %d bookings, want 0", len(deps.repo.created))
	}
}

func TestCreateBookingUnexpectedIntentStatusIsTerminal(t *testing.T) {
	deps := newDeps()
	deps.gateway.intentStatus = "requires_action"
	svc := newTestService(deps)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	var authErr *payment.AuthorizationFailedError
	if !errors.As(err, &authErr) {
		t.Fatalf("err = %v, want AuthorizationFailedError", err)
	}
	if authErr.Status != "requires_action" {
		t.Errorf("Status = %q, want requires_action", authErr.Status)
	}
	if deps.gateway.captures != 0 {
		t.Errorf("captures = %d, want 0", deps.gateway.captures)
	}
	if len(deps.repo.created) != 0 {
		t.Errorf("created = %d bookings, want 0", len(deps.repo.created))
	}
}

func TestCreateBookingCaptureErrorCancelsOnce(t *testing.T) {
	deps := newDeps()
	deps.gateway.captureErr = errors.New("capture rejected")
	svc := newTestService(deps)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	var captureErr *payment.CaptureFailedError
	if !errors.As(err, &captureErr) {
		t.Fatalf("err = %v, want CaptureFailedError", err)
	}
	if deps.gateway.cancels != 1 {
		t.Errorf("cancels = %d, want 1", deps.gateway.cancels)
	}
	if len(deps.repo.created) != 0 {
		t.Errorf("created = %d bookings, want 0", len(deps.repo.created))
	}
}

func TestCreateBookingCaptureBadStatusCancelsOnce(t *testing.T) {
	deps := newDeps()
	deps.gateway.captureStatus = "failed"
	svc := newTestService(deps)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	var captureErr *payment.CaptureFailedError
	if !errors.As(err, &captureErr) {
		t.Fatalf("err = %v, want CaptureFailedError", err)
	}
	if captureErr.Status != "failed" {
		t.Errorf("Status = %q, want failed", captureErr.Status)
	}
	if deps.gateway.cancels != 1 {
		t.Errorf("cancels = %d, want 1", deps.gateway.cancels)
	}
	if len(deps.repo.created) != 0 {
		t.Errorf("created = %d bookings, want 0", len(deps.repo.created))
	}
}

func TestCreateBookingProvisioningErrorCancelsOnce(t *testing.T) {
	deps := newDeps()
	deps.provisioner.err = errors.New("zoom unavailable")
	svc := newTestService(deps)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	var provErr *meeting.ProvisioningFailedError
	if !errors.As(err, &provErr) {
		t.Fatalf("err = %v, want ProvisioningFailedError", err)
	}
	if deps.gateway.cancels != 1 {
		t.Errorf("cancels = %d, want 1", deps.gateway.cancels)
	}
	if len(deps.repo.created) != 0 {
		t.Errorf("created = %d bookings, want 0", len(deps.repo.created))
	}
}

func TestCreateBookingPersistErrorCancelsOnce(t *testing.T) {
	deps := newDeps()
	deps.repo.createErr = errors.New("write failed")
	svc := newTestService(deps)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	if err == nil {
		t.Fatal("expected an error")
	}
	if deps.gateway.cancels != 1 {
		t.Errorf("cancels = %d, want 1", deps.gateway.cancels)
	}
}

func TestCreateBookingMailFailureDoesNotFailBooking(t *testing.T) {
	deps := newDeps()
	deps.mailer.err = errors.New("smtp down")
	svc := newTestService(deps)

	resp, err := svc.CreateBooking(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Booking == nil || resp.Booking.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("booking = %+v, want a paid booking", resp.Booking)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateBookingRequest)
		field  string
	}{
		{"missing patient", func(r *CreateBookingRequest) { r.Patient = nil }, "patient"},
		{"zero appointment", func(r *CreateBookingRequest) { r.AppointmentTime = time.Time{} }, "appointmentDateandTime"},
		{"zero fee", func(r *CreateBookingRequest) { r.BookingFee = 0 }, "bookingfee"},
		{"negative fee", func(r *CreateBookingRequest) { r.BookingFee = -5 }, "bookingfee"},
		{"missing payment method", func(r *CreateBookingRequest) { r.PaymentMethodID = "" }, "paymentMethodid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newDeps()
			svc := newTestService(deps)
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.CreateBooking(context.Background(), req)
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if _, ok := valErr.Fields[tt.field]; !ok {
				t.Errorf("Fields = %v, want entry for %q", valErr.Fields, tt.field)
			}
			if deps.gateway.authorizes != 0 {
				t.Errorf("authorizes = %d, want 0", deps.gateway.authorizes)
			}
		})
	}
}
