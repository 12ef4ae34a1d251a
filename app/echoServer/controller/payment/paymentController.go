package payment

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	paymentsvc "stayneos/service/payment"
)

type Controller struct {
	Svc paymentsvc.Service
	Log *slog.Logger
}

// POST /v1/payments/stripe
// @Summary      Stripe webhook
// @Description  Payment-intent callbacks: succeeded confirms the booking, failed keeps it pending
// @Tags         payments
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Router       /v1/payments/stripe [post]
func (h *Controller) HandleStripe(c echo.Context) error {
	sig := c.Request().Header.Get("Stripe-Signature")
	raw, _ := io.ReadAll(c.Request().Body)

	if err := h.Svc.HandleStripe(c.Request().Context(), sig, raw); err != nil {
		h.Log.Error("stripe callback error", "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "payment rejected"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "ok"})
}
