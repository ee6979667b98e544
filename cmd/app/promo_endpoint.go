package main

import (
	"net/http"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/middleware"
	"github.com/OmarAhmadIsamail/Farmer-Place/internal/model"
	"github.com/OmarAhmadIsamail/Farmer-Place/internal/services"

	"github.com/labstack/echo/v4"
)

// registerPromoRoutes mounts the admin-side promo code management. Customers
// touch promos only through the cart summary and the checkout wizard.
func registerPromoRoutes(g *echo.Group, ps *services.PromoService) {
	admin := g.Group("/admin/promos")
	admin.Use(middleware.JWTMiddleware(), middleware.AdminOnly)

	admin.GET("", func(c echo.Context) error {
		list, err := ps.List(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	admin.POST("", func(c echo.Context) error {
		req := new(model.PromoCode)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := ps.Create(c.Request().Context(), req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, req)
	})

	admin.PUT("/:code", func(c echo.Context) error {
		req := new(model.PromoCode)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		req.Code = c.Param("code")
		if err := ps.Update(c.Request().Context(), req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "updated"})
	})

	admin.DELETE("/:code", func(c echo.Context) error {
		if err := ps.Delete(c.Request().Context(), c.Param("code")); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
	})
}
