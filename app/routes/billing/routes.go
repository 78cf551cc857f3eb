package billing

import (
	"github.com/gofiber/fiber/v2"

	"sas-admin/app/config"
)

// SetupBillingRoutes sets up the ad-hoc campaign and billing routes.
func SetupBillingRoutes(app *fiber.App) {
	api := app.Group("/api/adhoc")

	api.Get("/", func(c *fiber.Ctx) error {
		return GetCampaignsAPI(c, config.GetStore())
	})

	api.Post("/", func(c *fiber.Ctx) error {
		return CreateCampaignAPI(c, config.GetStore())
	})

	api.Post("/resolve", func(c *fiber.Ctx) error {
		return ResolveTargetAPI(c, config.GetStore(), config.GetDB())
	})

	// Bill routes are registered before the :id routes so "bills" is never
	// captured as a campaign id.
	api.Get("/bills", func(c *fiber.Ctx) error {
		return GetBillsAPI(c, config.GetStore())
	})

	api.Post("/bills/pay", func(c *fiber.Ctx) error {
		return PayBillAPI(c, config.GetStore())
	})

	api.Delete("/:id", func(c *fiber.Ctx) error {
		return DeleteCampaignAPI(c, config.GetStore())
	})

	api.Post("/:id/send", func(c *fiber.Ctx) error {
		return SendCampaignAPI(c, config.GetStore(), config.GetDB())
	})
}
