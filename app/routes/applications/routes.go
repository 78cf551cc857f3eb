package applications

import (
	"github.com/gofiber/fiber/v2"

	"sas-admin/app/config"
)

// SetupApplicationsRoutes sets up the admissions application routes.
func SetupApplicationsRoutes(app *fiber.App) {
	api := app.Group("/api/applications")

	api.Get("/", func(c *fiber.Ctx) error {
		return GetApplicationsAPI(c, config.GetStore(), config.GetDB())
	})

	api.Post("/:id/confirm", func(c *fiber.Ctx) error {
		return ConfirmApplicationAPI(c, config.GetStore())
	})

	api.Post("/:id/fees", func(c *fiber.Ctx) error {
		return SetApplicationFeesAPI(c, config.GetStore())
	})

	// All fee schedules across applications
	api.Get("/fees", func(c *fiber.Ctx) error {
		return GetFeesAPI(c, config.GetStore())
	})
}
