package main

import (
	"net/http"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/middleware"
	"github.com/OmarAhmadIsamail/Farmer-Place/internal/model"
	"github.com/OmarAhmadIsamail/Farmer-Place/internal/services"

	"github.com/labstack/echo/v4"
)

type paymentMethodRequest struct {
	Method string             `json:"method"`
	Wallet string             `json:"wallet,omitempty"`
	Card   *model.CardDetails `json:"card,omitempty"`
}

type deliveryRequest struct {
	Option string `json:"option"`
}

type promoRequest struct {
	Code string `json:"code"`
}

type placeOrderRequest struct {
	AgreeTerms bool `json:"agreeTerms"`
}

// registerCheckoutRoutes mounts the 3-step checkout wizard. Everything here
// requires a signed-in customer.
func registerCheckoutRoutes(g *echo.Group, cks *services.CheckoutService) {
	p := g.Group("/checkout")
	p.Use(middleware.JWTMiddleware())

	// current wizard state
	p.GET("", func(c echo.Context) error {
		customerID := middleware.CustomerID(c)
		st, err := cks.GetState(c.Request().Context(), customerID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, st)
	})

	// step 1: payment method
	p.POST("/payment", func(c echo.Context) error {
		customerID := middleware.CustomerID(c)
		req := new(paymentMethodRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := cks.SubmitPaymentMethod(c.Request().Context(), customerID, req.Method, req.Wallet, req.Card); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"step": model.StepLocation})
	})

	// step 2: shipping location
	p.POST("/location", func(c echo.Context) error {
		customerID := middleware.CustomerID(c)
		req := new(model.CustomerInfo)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := cks.SubmitLocation(c.Request().Context(), customerID, *req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"step": model.StepReview})
	})

	p.POST("/back", func(c echo.Context) error {
		customerID := middleware.CustomerID(c)
		st, err := cks.Back(c.Request().Context(), customerID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"step": st.Step})
	})

	p.POST("/delivery", func(c echo.Context) error {
		customerID := middleware.CustomerID(c)
		req := new(deliveryRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := cks.SelectDelivery(c.Request().Context(), customerID, req.Option); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "delivery option saved"})
	})

	p.POST("/promo", func(c echo.Context) error {
		customerID := middleware.CustomerID(c)
		req := new(promoRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		promo, err := cks.ApplyPromo(c.Request().Context(), customerID, req.Code)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"message": "promo applied",
			"code":    promo.Code,
			"type":    promo.Type,
			"value":   promo.Value,
		})
	})

	p.DELETE("/promo", func(c echo.Context) error {
		customerID := middleware.CustomerID(c)
		if err := cks.RemovePromo(c.Request().Context(), customerID); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "promo removed"})
	})

	// step 3: place the order
	p.POST("/place-order", func(c echo.Context) error {
		customerID := middleware.CustomerID(c)
		req := new(placeOrderRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		result, err := cks.PlaceOrder(c.Request().Context(), customerID, req.AgreeTerms)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, result)
	})
}
