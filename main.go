package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/lyffseba/liliana-villamarin-eventos-contabilidad/app/config"
	"github.com/lyffseba/liliana-villamarin-eventos-contabilidad/app/database"
	"github.com/lyffseba/liliana-villamarin-eventos-contabilidad/app/routes/eventos"
	"github.com/lyffseba/liliana-villamarin-eventos-contabilidad/app/routes/restaurante"
)

// errorHandler answers uncaught handler errors with a generic message,
// including the detail only outside production.
func errorHandler(cfg config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)

		message := "Error interno del servidor"
		if cfg.IsDevelopment() {
			message = err.Error()
		}
		return c.Status(code).JSON(fiber.Map{
			"error":   "Algo salió mal!",
			"message": message,
		})
	}
}

func main() {
	cfg := config.Load()

	store := database.Connect(context.Background(), cfg)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(ctx); err != nil {
			log.Printf("Error closing MongoDB connection: %v", err)
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:      "Sistema de Contabilidad Liliana Villamarin Eventos",
		ErrorHandler: errorHandler(cfg),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 15 * time.Minute,
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "connected"
		if !store.Available() {
			dbStatus = "disconnected"
		}
		return c.JSON(fiber.Map{
			"status":    "OK",
			"message":   "Sistema de Contabilidad Liliana Villamarin Eventos",
			"database":  dbStatus,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Domain routes
	eventos.SetupEventosRoutes(app, store)
	restaurante.SetupRestauranteRoutes(app, store)

	// 404 for everything unmatched
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Ruta no encontrada",
			"message": "La ruta " + c.OriginalURL() + " no existe",
		})
	})

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("Servidor ejecutándose en puerto %s (ambiente: %s)", cfg.Port, cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
