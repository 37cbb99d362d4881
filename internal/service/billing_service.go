package service

import (
	"context"
	"encoding/json"
	"fmt"

	"mindlift/internal/entity"
	"mindlift/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/webhook"
)

// BillingService is glue around Stripe: one payment intent per
// subscription purchase, and a signed webhook that flips is_paid.
type BillingService struct {
	users         repository.UserRepository
	notifier      Notifier
	webhookSecret string
	amountCents   int64
	currency      string
	log           *logrus.Logger
}

func NewBillingService(
	users repository.UserRepository,
	notifier Notifier,
	secretKey string,
	webhookSecret string,
	amountCents int64,
	currency string,
	log *logrus.Logger,
) *BillingService {
	stripe.Key = secretKey
	return &BillingService{
		users:         users,
		notifier:      notifier,
		webhookSecret: webhookSecret,
		amountCents:   amountCents,
		currency:      currency,
		log:           log,
	}
}

func (s *BillingService) CreateSubscriptionIntent(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(s.amountCents),
		Currency: stripe.String(s.currency),
	}
	params.AddMetadata("user_id", userID.String())
	params.SetIdempotencyKey(fmt.Sprintf("subscribe-%s", userID))

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}

// HandleWebhook verifies the Stripe signature and processes the event.
// Unknown event types are acknowledged and ignored.
func (s *BillingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		return ErrInvalidToken
	}

	if event.Type != "payment_intent.succeeded" {
		return nil
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return err
	}
	userID, err := uuid.Parse(intent.Metadata["user_id"])
	if err != nil {
		s.log.WithField("intent", intent.ID).Warn("payment intent without a valid user_id")
		return nil
	}

	if err := s.users.SetPaid(ctx, userID); err != nil {
		return err
	}

	if s.notifier != nil {
		err := s.notifier.Notify(ctx, nil, userID, entity.NotifyMilestone,
			"Subscription active",
			"Your MindLift subscription is now active. Enjoy the full library!",
			map[string]any{"payment_intent": intent.ID})
		if err != nil {
			s.log.WithError(err).Warn("failed to record subscription notification")
		}
	}
	return nil
}
