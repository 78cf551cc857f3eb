package meta

import (
	"github.com/gofiber/fiber/v2"

	"sas-admin/app/config"
)

// SetupMetaRoutes sets up the version-poll route. Clients poll it and only
// re-fetch data when the version changes.
func SetupMetaRoutes(app *fiber.App) {
	app.Get("/api/meta/version", func(c *fiber.Ctx) error {
		m, err := config.GetStore().Version()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to read version")
		}
		return c.JSON(m)
	})
}
