package main

import (
	"net/http"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/middleware"
	"github.com/OmarAhmadIsamail/Farmer-Place/internal/services"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func registerHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(registerRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid request",
			})
		}

		id, err := authSvc.Register(
			c.Request().Context(),
			req.Email,
			req.Password,
			req.FirstName,
			req.LastName,
		)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		return c.JSON(http.StatusCreated, echo.Map{
			"authid":  id,
			"message": "registration successful",
		})
	}
}

func loginHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid request",
			})
		}

		user, err := authSvc.Login(
			c.Request().Context(),
			req.Email,
			req.Password,
		)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "invalid credentials",
			})
		}

		token, err := middleware.GenerateToken(
			user.AuthID,
			user.Email,
			user.Role,
			24,
		)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "could not create token",
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"token": token,
			"user": echo.Map{
				"authid":     user.AuthID,
				"email":      user.Email,
				"firstName":  user.FirstName,
				"lastName":   user.LastName,
				"role":       user.Role,
				"created_at": user.CreatedAt,
			},
		})
	}
}

// meHandler returns the authenticated user's info
func meHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		}
		user, err := authSvc.Profile(c.Request().Context(), claims.AuthID)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}
		return c.JSON(http.StatusOK, user)
	}
}

func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService) {
	auth := g.Group("/auth")

	// public
	auth.POST("/register", registerHandler(authSvc))
	auth.POST("/login", loginHandler(authSvc))

	// authenticated
	protected := auth.Group("")
	protected.Use(middleware.JWTMiddleware())
	protected.GET("/me", meHandler(authSvc))
}
