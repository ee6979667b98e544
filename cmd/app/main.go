package main

import (
	"context"
	"log"
	"os"

	"github.com/OmarAhmadIsamail/Farmer-Place/external/midtrans"
	"github.com/OmarAhmadIsamail/Farmer-Place/external/resend"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/config"
	"github.com/OmarAhmadIsamail/Farmer-Place/internal/db"
	"github.com/OmarAhmadIsamail/Farmer-Place/internal/notify"
	"github.com/OmarAhmadIsamail/Farmer-Place/internal/repository"
	"github.com/OmarAhmadIsamail/Farmer-Place/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/midtrans/midtrans-go/snap"
)

func main() {
	config.Load()

	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	ctx := context.Background()
	if err := repository.EnsureSchema(ctx, pool); err != nil {
		log.Fatal(err)
	}

	// ======================
	// EXTERNALS
	// ======================
	var mailer services.EmailSender
	if os.Getenv("RESEND_API_KEY") != "" {
		mailer, err = resend.NewResendMailer("Farmer Place <orders@resend.dev>")
		if err != nil {
			log.Fatal(err)
		}
	} else {
		log.Println("RESEND_API_KEY not set, order confirmation emails disabled")
	}

	var notifier services.Notifier
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		rn, err := notify.NewRedisNotifier(redisURL)
		if err != nil {
			log.Fatal(err)
		}
		defer rn.Close()
		notifier = rn
		// mirror broadcasts into the server log so a single-node deploy
		// still has a visible trail of cart activity
		go func() {
			err := rn.Subscribe(context.Background(), func(ev services.CartEvent) {
				log.Printf("cart updated: customer=%d items=%d subtotal=%.2f", ev.CustomerID, ev.TotalItems, ev.Subtotal)
			})
			if err != nil {
				log.Println("cart subscription ended:", err)
			}
		}()
	} else {
		log.Println("REDIS_URL not set, cart broadcasts disabled")
	}

	var snapClient *snap.Client
	if os.Getenv("USE_PAYMENT_GATEWAY") == "true" {
		snapClient = midtrans.NewSnapClient()
	}

	// ======================
	// REPOSITORIES
	// ======================
	authRepo := repository.NewAuthRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	cartRepo := repository.NewCartRepository(pool)
	promoRepo := repository.NewPromoRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	checkoutRepo := repository.NewCheckoutRepository(pool)

	// ======================
	// SERVICES
	// ======================
	authSvc := services.NewAuthService(authRepo, services.NewLocalValidator())
	productSvc := services.NewProductService(productRepo)
	promoSvc := services.NewPromoService(promoRepo)
	cartSvc := services.NewCartService(cartRepo, productRepo, promoSvc, notifier)
	orderSvc := services.NewOrderService(orderRepo)
	checkoutSvc := services.NewCheckoutService(checkoutRepo, cartSvc, orderRepo, promoSvc, snapClient, mailer)
	paymentSvc := services.NewPaymentService(orderRepo)

	// ======================
	// SEED
	// ======================
	if err := productSvc.SeedDefaults(ctx); err != nil {
		log.Fatal(err)
	}
	if err := promoSvc.SeedDefaults(ctx); err != nil {
		log.Fatal(err)
	}
	if adminEmail := os.Getenv("ADMIN_EMAIL"); adminEmail != "" {
		if err := authSvc.SeedAdmin(ctx, adminEmail, os.Getenv("ADMIN_PASSWORD")); err != nil {
			log.Fatal(err)
		}
	}

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/farm-store")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAuthRoutes(api, authSvc)
	registerProductRoutes(api, productSvc)
	registerCartRoutes(api, cartSvc)
	registerCheckoutRoutes(api, checkoutSvc)
	registerOrderRoutes(api, orderSvc)
	registerPromoRoutes(api, promoSvc)
	registerPaymentRoutes(api, paymentSvc)

	// ======================
	// SERVER
	// ======================
	e.Logger.Fatal(e.Start(":" + config.Env("PORT", "8080")))
}
