package payment

import (
	"context"
	"fmt"
	"math"

	"medibook/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// Gateway wraps authorize/capture/cancel calls to the payment processor.
type Gateway interface {
	// Authorize places an authorization-only hold on funds. The returned
	// intent carries status requires_capture on success; any other status is
	// an authorization failure the caller must treat as terminal.
	Authorize(ctx context.Context, amountMinorUnits int64, currency, paymentMethodID string) (*models.PaymentIntent, error)

	// Capture finalizes the hold into an actual charge.
	Capture(ctx context.Context, paymentIntentID string) (*models.CaptureResult, error)

	// Cancel releases a held-but-not-captured authorization.
	Cancel(ctx context.Context, paymentIntentID string) error
}

// MinorUnits converts a floating fee in major units (dollars) to integer
// minor units (cents), rounding half up. The intermediate round to tenths of
// a cent absorbs binary float drift so that e.g. 19.995 charges 2000, not 1999.
func MinorUnits(amount float64) int64 {
	tenths := math.Round(amount * 1000)
	return int64(math.Round(tenths / 10))
}

// StripeGateway implements Gateway against Stripe PaymentIntents.
// The API key is process-wide configuration set at startup.
type StripeGateway struct {
	logger *zap.Logger
}

// NewStripeGateway creates a Stripe-backed payment gateway.
func NewStripeGateway(logger *zap.Logger) *StripeGateway {
	return &StripeGateway{logger: logger}
}

func (g *StripeGateway) Authorize(ctx context.Context, amountMinorUnits int64, currency, paymentMethodID string) (*models.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Params:        stripe.Params{Context: ctx},
		Amount:        stripe.Int64(amountMinorUnits),
		Currency:      stripe.String(currency),
		PaymentMethod: stripe.String(paymentMethodID),
		CaptureMethod: stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	g.logger.Info("payment intent created",
		zap.String("intent_id", pi.ID),
		zap.String("status", string(pi.Status)))

	return &models.PaymentIntent{
		ID:           pi.ID,
		Status:       string(pi.Status),
		ClientSecret: pi.ClientSecret,
	}, nil
}

func (g *StripeGateway) Capture(ctx context.Context, paymentIntentID string) (*models.CaptureResult, error) {
	params := &stripe.PaymentIntentCaptureParams{
		Params: stripe.Params{Context: ctx},
	}
	pi, err := paymentintent.Capture(paymentIntentID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to capture payment intent %s: %w", paymentIntentID, err)
	}

	g.logger.Info("payment intent captured",
		zap.String("intent_id", pi.ID),
		zap.String("status", string(pi.Status)))

	return &models.CaptureResult{Status: string(pi.Status)}, nil
}

func (g *StripeGateway) Cancel(ctx context.Context, paymentIntentID string) error {
	params := &stripe.PaymentIntentCancelParams{
		Params: stripe.Params{Context: ctx},
	}
	if _, err := paymentintent.Cancel(paymentIntentID, params); err != nil {
		return fmt.Errorf("failed to cancel payment intent %s: %w", paymentIntentID, err)
	}

	g.logger.Info("payment intent cancelled", zap.String("intent_id", paymentIntentID))
	return nil
}

// WithCompensation runs fn inside the post-authorization window of a payment
// transaction. On any error it cancels the authorization hold exactly once;
// cancellation failures are logged and swallowed since the original failure
// already dominates the response.
func WithCompensation(ctx context.Context, gw Gateway, logger *zap.Logger, paymentIntentID string, fn func() error) error {
	err := fn()
	if err == nil {
		return nil
	}
	if cancelErr := gw.Cancel(ctx, paymentIntentID); cancelErr != nil {
		logger.Error("compensation failed: could not cancel payment intent",
			zap.String("intent_id", paymentIntentID),
			zap.Error(cancelErr))
	}
	return err
}
