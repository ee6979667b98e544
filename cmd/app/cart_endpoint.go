package main

import (
	"net/http"
	"strconv"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/middleware"
	"github.com/OmarAhmadIsamail/Farmer-Place/internal/services"

	"github.com/labstack/echo/v4"
)

type addCartRequest struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"quantity"`
}

type updateCartRequest struct {
	Delta int `json:"delta"`
}

func registerCartRoutes(g *echo.Group, cs *services.CartService) {
	p := g.Group("/cart")
	p.Use(middleware.JWTMiddleware())

	// GET cart
	p.GET("", func(c echo.Context) error {
		customerID := middleware.CustomerID(c)
		cart, err := cs.Get(c.Request().Context(), customerID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, cart)
	})

	// summary for the order box: ?delivery=standard&promo=FARMER15
	p.GET("/summary", func(c echo.Context) error {
		customerID := middleware.CustomerID(c)
		summary, err := cs.Summary(
			c.Request().Context(),
			customerID,
			c.QueryParam("delivery"),
			c.QueryParam("promo"),
		)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, summary)
	})

	// ADD item
	p.POST("", func(c echo.Context) error {
		customerID := middleware.CustomerID(c)
		req := new(addCartRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := cs.Add(c.Request().Context(), customerID, req.ProductID, req.Qty); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, map[string]string{"message": "added"})
	})

	// UPDATE quantity by line index
	p.PUT("/:index", func(c echo.Context) error {
		customerID := middleware.CustomerID(c)
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid index"})
		}
		req := new(updateCartRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := cs.UpdateQuantity(c.Request().Context(), customerID, index, req.Delta); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "updated"})
	})

	// REMOVE item
	p.DELETE("/:index", func(c echo.Context) error {
		customerID := middleware.CustomerID(c)
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid index"})
		}
		removed, err := cs.Remove(c.Request().Context(), customerID, index)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"message": "removed", "item": removed})
	})

	// CLEAR cart
	p.DELETE("", func(c echo.Context) error {
		customerID := middleware.CustomerID(c)
		if err := cs.Clear(c.Request().Context(), customerID); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "cleared"})
	})
}
