package echoServer

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"stayneos/app/echoServer/controller/auth"
	"stayneos/app/echoServer/controller/booking"
	"stayneos/app/echoServer/controller/payment"
	"stayneos/app/echoServer/controller/property"
	"stayneos/app/echoServer/jwtx"
)

type C struct {
	Auth     *auth.Controller
	Property *property.Controller
	Booking  *booking.Controller
	Payment  *payment.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// listing browse + price preview need no account
	pub.GET("/properties", c.Property.List)
	pub.GET("/properties/:id", c.Property.Detail)
	pub.POST("/properties/:id/quote", c.Booking.Quote)

	// payment gateway callback
	pub.POST("/payments/stripe", c.Payment.HandleStripe)

	// Auth
	authed := e.Group("/v1")
	authed.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),
	}))
	authed.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			uid, err := jwtx.UserIDFromContext(ctx)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			ctx.Set("user_id", uid)
			return next(ctx)
		}
	})

	// Properties (host/admin)
	authed.POST("/properties", c.Property.Create)

	// Bookings
	authed.POST("/bookings", c.Booking.Create)
	authed.GET("/bookings/my", c.Booking.My)
	authed.GET("/bookings/:id", c.Booking.Detail)
	authed.POST("/bookings/:id/cancel", c.Booking.Cancel)
	authed.POST("/bookings/:id/checkin", c.Booking.CheckIn)
	authed.POST("/bookings/:id/checkout", c.Booking.CheckOut)
}
