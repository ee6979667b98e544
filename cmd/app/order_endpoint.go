package main

import (
	"net/http"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/middleware"
	"github.com/OmarAhmadIsamail/Farmer-Place/internal/services"

	"github.com/labstack/echo/v4"
)

type updateStatusRequest struct {
	Status string `json:"status"`
}

// registerOrderRoutes mounts order history for customers and the fulfilment
// dashboard for admins.
func registerOrderRoutes(g *echo.Group, os *services.OrderService) {
	p := g.Group("/orders")
	p.Use(middleware.JWTMiddleware())

	// my order history
	p.GET("", func(c echo.Context) error {
		list, err := os.ListForCustomer(c.Request().Context(), middleware.CustomerID(c))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	p.GET("/:id", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		order, err := os.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "order not found"})
		}
		if order.CustomerID != claims.AuthID && claims.Role != "admin" {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "order not found"})
		}
		return c.JSON(http.StatusOK, order)
	})

	p.POST("/:id/cancel", func(c echo.Context) error {
		order, err := os.Cancel(c.Request().Context(), middleware.CustomerID(c), c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, order)
	})

	// admin dashboard
	admin := g.Group("/admin/orders")
	admin.Use(middleware.JWTMiddleware(), middleware.AdminOnly)

	// all orders, optionally filtered: ?status=pending
	admin.GET("", func(c echo.Context) error {
		list, err := os.List(c.Request().Context(), c.QueryParam("status"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	admin.GET("/stats", func(c echo.Context) error {
		stats, err := os.Stats(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, stats)
	})

	admin.PUT("/:id/status", func(c echo.Context) error {
		req := new(updateStatusRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		order, err := os.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, order)
	})
}
