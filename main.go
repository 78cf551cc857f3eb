package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"sas-admin/app/config"
	"sas-admin/app/routes/applications"
	"sas-admin/app/routes/billing"
	"sas-admin/app/routes/meta"
	"sas-admin/app/routes/profiles"
	"sas-admin/app/services"
)

// customErrorHandler renders every error as a JSON API response.
func customErrorHandler(c *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a *fiber.Error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	// Initialize configuration, document store and canonical connection
	config.InitDB()
	if db := config.GetDB(); db != nil {
		defer db.Close()
	}

	// Prime the local cache so the first request starts from synced data
	if added, err := services.SyncIncomingApplications(config.GetDB(), config.GetStore()); err != nil {
		log.Printf("Initial application sync failed: %v", err)
	} else if added > 0 {
		log.Printf("Synced %d new applications from canonical store", added)
	}

	// Start background scheduler
	services.StartScheduler(config.GetDB(), config.GetStore())

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Setup meta routes
	meta.SetupMetaRoutes(app)

	// Setup applications routes
	applications.SetupApplicationsRoutes(app)

	// Setup profiles routes
	profiles.SetupProfilesRoutes(app)

	// Setup billing routes
	billing.SetupBillingRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	// Start server
	log.Println("Server starting on :" + config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
