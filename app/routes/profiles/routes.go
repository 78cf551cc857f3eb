package profiles

import (
	"github.com/gofiber/fiber/v2"

	"sas-admin/app/config"
)

// SetupProfilesRoutes sets up the cached roster and parent profile routes.
func SetupProfilesRoutes(app *fiber.App) {
	api := app.Group("/api/profiles")

	api.Get("/students", func(c *fiber.Ctx) error {
		return GetStudentsAPI(c, config.GetStore())
	})

	api.Post("/students/update", func(c *fiber.Ctx) error {
		return UpdateStudentAPI(c, config.GetStore())
	})

	api.Post("/parent/signup", func(c *fiber.Ctx) error {
		return ParentSignupAPI(c, config.GetStore(), config.GetDB())
	})
}
