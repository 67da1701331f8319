// File: services/booking/payment.go
package booking

import (
	"context"
	"fmt"

	"fairway/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// PaymentHandler creates the payment intent the external checkout form
// confirms, and verifies its settlement when the user returns from
// checkout. Settlement itself is out of this service's hands.
type PaymentHandler interface {
	CreateIntent(ctx context.Context, hold *models.Booking, details models.BookingDetails) (string, error)
	IntentSucceeded(ctx context.Context, paymentIntentID, bookingID string) (bool, error)
}

// StripePaymentHandler implements PaymentHandler against Stripe.
type StripePaymentHandler struct {
	logger *zap.Logger
}

// NewStripePaymentHandler constructs a StripePaymentHandler. stripe.Key
// must already be set from config.
func NewStripePaymentHandler(logger *zap.Logger) *StripePaymentHandler {
	return &StripePaymentHandler{logger: logger}
}

// CreateIntent creates a PaymentIntent for the reservation amount and
// returns its client secret.
func (h *StripePaymentHandler) CreateIntent(ctx context.Context, hold *models.Booking, details models.BookingDetails) (string, error) {
	if hold.TotalCents <= 0 {
		return "", fmt.Errorf("invalid payment amount %d", hold.TotalCents)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(hold.TotalCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("booking_id", hold.ID)
	params.AddMetadata("bay_id", hold.BayID)
	params.AddMetadata("date", hold.Date)
	params.AddMetadata("duration", details.Duration)

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}

	h.logger.Info("payment intent created",
		zap.String("bookingID", hold.ID),
		zap.String("paymentIntentID", pi.ID),
		zap.Int64("amountCents", hold.TotalCents))
	return pi.ClientSecret, nil
}

// IntentSucceeded checks with Stripe that the intent settled and that it
// was created for this booking. The metadata match stops a caller from
// confirming a hold with someone else's payment.
func (h *StripePaymentHandler) IntentSucceeded(ctx context.Context, paymentIntentID, bookingID string) (bool, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(paymentIntentID, params)
	if err != nil {
		return false, err
	}
	if pi.Metadata["booking_id"] != bookingID {
		h.logger.Warn("payment intent does not belong to booking",
			zap.String("bookingID", bookingID),
			zap.String("paymentIntentID", paymentIntentID))
		return false, nil
	}
	return pi.Status == stripe.PaymentIntentStatusSucceeded, nil
}
