package main

import (
	"net/http"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/services"

	"github.com/labstack/echo/v4"
)

func registerPaymentRoutes(g *echo.Group, ps *services.PaymentService) {
	p := g.Group("/payments")

	// midtrans server notification; no JWT, must be public.
	// Midtrans requires HTTP 200 or it will retry, so bad payloads are
	// acknowledged and ignored rather than rejected.
	p.POST("/notification", func(c echo.Context) error {
		var payload map[string]interface{}
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusOK, echo.Map{
				"status": "ignored",
				"reason": "invalid payload",
			})
		}

		if err := ps.HandleGatewayNotification(c.Request().Context(), payload); err != nil {
			return c.JSON(http.StatusOK, echo.Map{
				"status": "ignored",
				"reason": err.Error(),
			})
		}

		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
}
