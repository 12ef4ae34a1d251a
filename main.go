// Package main stayneos booking API.
//
// @title           stayneos API
// @version         1.0
// @description     property listings, stay quotes, bookings, Stripe payments.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"stayneos/app/echoServer"
	authctrl "stayneos/app/echoServer/controller/auth"
	bookingctrl "stayneos/app/echoServer/controller/booking"
	paymentctrl "stayneos/app/echoServer/controller/payment"
	propertyctrl "stayneos/app/echoServer/controller/property"
	"stayneos/app/echoServer/validation"
	"stayneos/config"
	authrepo "stayneos/repository/auth"
	bookingrepo "stayneos/repository/booking"
	propertyrepo "stayneos/repository/property"
	striperepo "stayneos/repository/stripe"
	authsvc "stayneos/service/auth"
	bookingsvc "stayneos/service/booking"
	paymentsvc "stayneos/service/payment"
	propertysvc "stayneos/service/property"
	"stayneos/util/database"
)

func main() {

	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB on the pgx driver, lifecycle owned here
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ar := authrepo.New(db)
	pr := propertyrepo.New(db)
	br := bookingrepo.New(db)
	sr := striperepo.New(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	// services
	as := authsvc.New(ar, cfg.JWTSecret)
	ps := propertysvc.New(pr)
	bs := bookingsvc.New(db, br, pr, sr, log)
	ws := paymentsvc.New(sr, bs, log)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	propertyC := &propertyctrl.Controller{Svc: ps, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, V: v, Log: log}
	paymentC := &paymentctrl.Controller{Svc: ws, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:     authC,
		Property: propertyC,
		Booking:  bookingC,
		Payment:  paymentC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
