package main

import (
	"net/http"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/middleware"
	"github.com/OmarAhmadIsamail/Farmer-Place/internal/model"
	"github.com/OmarAhmadIsamail/Farmer-Place/internal/services"

	"github.com/labstack/echo/v4"
)

type productRequest struct {
	Name        string                `json:"name"`
	Category    string                `json:"category"`
	Price       float64               `json:"price"`
	Images      []string              `json:"images"`
	Description string                `json:"description,omitempty"`
	Status      string                `json:"status,omitempty"`
	Organic     bool                  `json:"organic"`
	Details     model.ProductDetails  `json:"details"`
	ShelfLife   string                `json:"shelfLife,omitempty"`
	Features    []string              `json:"features,omitempty"`
}

func (r *productRequest) toModel() *model.Product {
	return &model.Product{
		Name:        r.Name,
		Category:    r.Category,
		Price:       r.Price,
		Images:      r.Images,
		Description: r.Description,
		Status:      r.Status,
		Organic:     r.Organic,
		Details:     r.Details,
		ShelfLife:   r.ShelfLife,
		Features:    r.Features,
	}
}

// registerProductRoutes mounts the catalog.
// Public:
//
//	GET /products      -> active products (admins see everything)
//	GET /products/:id  -> single product
//
// Admin:
//
//	POST /products, PUT /products/:id, DELETE /products/:id
func registerProductRoutes(g *echo.Group, ps *services.ProductService) {
	// public list; an admin token widens the view to inactive products
	g.GET("/products", func(c echo.Context) error {
		claims := middleware.TryGetClaimsFromAuthHeader(c)
		onlyActive := claims == nil || claims.Role != "admin"

		list, err := ps.List(c.Request().Context(), onlyActive)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	g.GET("/products/:id", func(c echo.Context) error {
		p, err := ps.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "product not found"})
		}
		return c.JSON(http.StatusOK, p)
	})

	admin := g.Group("/products")
	admin.Use(middleware.JWTMiddleware(), middleware.AdminOnly)

	// dashboard counter
	admin.GET("/count", func(c echo.Context) error {
		n, err := ps.Count(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]int{"count": n})
	})

	admin.POST("", func(c echo.Context) error {
		req := new(productRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		id, err := ps.Create(c.Request().Context(), req.toModel())
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, map[string]interface{}{"id": id})
	})

	admin.PUT("/:id", func(c echo.Context) error {
		req := new(productRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		p := req.toModel()
		p.ID = c.Param("id")
		if err := ps.Update(c.Request().Context(), p); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "updated"})
	})

	admin.DELETE("/:id", func(c echo.Context) error {
		if err := ps.Delete(c.Request().Context(), c.Param("id")); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
	})
}
