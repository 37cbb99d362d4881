package handler

import (
	"errors"
	"io"
	"net/http"

	"mindlift/api/middleware"
	"mindlift/internal/dto"
	"mindlift/internal/service"

	"github.com/labstack/echo/v4"
)

const maxWebhookBody = 64 << 10

type BillingHandler struct {
	Service *service.BillingService
}

func NewBillingHandler(svc *service.BillingService) *BillingHandler {
	return &BillingHandler{Service: svc}
}

func (h *BillingHandler) Subscribe(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}

	clientSecret, err := h.Service.CreateSubscriptionIntent(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.SubscribeResponse{ClientSecret: clientSecret})
}

// Webhook is authenticated by the Stripe signature header, not a
// session token.
func (h *BillingHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("unreadable payload"))
	}

	signature := c.Request().Header.Get("Stripe-Signature")
	if err := h.Service.HandleWebhook(c.Request().Context(), payload, signature); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusOK)
}
