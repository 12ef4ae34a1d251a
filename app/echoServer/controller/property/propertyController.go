package property

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"stayneos/model"
	ps "stayneos/service/property"
)

type Controller struct {
	Svc ps.Service
	V   *validator.Validate
	Log *slog.Logger
}

// CreatePropertyReq is the listing creation payload. Amounts are whole
// currency units.
// swagger:model CreatePropertyReq
type CreatePropertyReq struct {
	Name               string `json:"name" validate:"required"`
	City               string `json:"city" validate:"required"`
	NightlyPrice       int64  `json:"nightly_price" validate:"required,gt=0"`
	Currency           string `json:"currency" validate:"required,len=3"`
	CleaningFee        int64  `json:"cleaning_fee" validate:"min=0"`
	MinNights          int    `json:"min_nights" validate:"min=0"`
	MaxNights          int    `json:"max_nights" validate:"min=0"`
	MonthlyDiscountPct int    `json:"monthly_discount_pct" validate:"min=0,max=99"`
}

// POST /v1/properties
// @Summary      Create property listing
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        payload  body  CreatePropertyReq  true  "Listing payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Security     BearerAuth
// @Router       /v1/properties [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreatePropertyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	p := &model.Property{
		Name:               req.Name,
		City:               req.City,
		NightlyPrice:       req.NightlyPrice,
		Currency:           req.Currency,
		CleaningFee:        req.CleaningFee,
		MinNights:          req.MinNights,
		MaxNights:          req.MaxNights,
		MonthlyDiscountPct: req.MonthlyDiscountPct,
	}
	if err := h.Svc.Create(c.Request().Context(), p); err != nil {
		h.Log.Error("property create", "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid payload"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": p})
}

// GET /v1/properties
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("property list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/properties/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	p, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "property not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": p})
}
