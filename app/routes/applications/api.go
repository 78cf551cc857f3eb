package applications

import (
	"database/sql"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"sas-admin/app/models"
	"sas-admin/app/services"
	"sas-admin/app/store"
)

// GetApplicationsAPI lists cached applications filtered by status. Each read
// first pulls any newly submitted canonical applications into the cache;
// that sync is best-effort and never blocks the listing.
func GetApplicationsAPI(c *fiber.Ctx, st *store.Store, db *sql.DB) error {
	if _, err := services.SyncIncomingApplications(db, st); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read applications")
	}

	status := c.Query("status", models.ApplicationSubmitted)
	doc, err := st.Read()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read applications")
	}

	items := []models.Application{}
	for _, a := range doc.Applications {
		// "approved" covers everything past admissions confirmation.
		if status == "approved" {
			if a.Status == models.ApplicationConfirmed || a.Status == models.ApplicationFeesSet {
				items = append(items, a)
			}
		} else if a.Status == status {
			items = append(items, a)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return c.JSON(fiber.Map{"items": items})
}

// ConfirmApplicationAPI confirms an application and creates the cached
// student profile unless one already exists for the same (name, phone) pair.
func ConfirmApplicationAPI(c *fiber.Ctx, st *store.Store) error {
	id := c.Params("id")
	doc, err := st.Read()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read applications")
	}
	if doc.FindApplication(id) == nil {
		return c.Status(404).JSON(fiber.Map{"error": "not_found"})
	}

	err = st.Write(func(d *models.Document) {
		app := d.FindApplication(id)
		if app == nil {
			return
		}
		app.Confirm()

		if app.ApplicantName == "" || app.ParentPhone == "" {
			return
		}
		for _, s := range d.Profiles.Students {
			if s.Name == app.ApplicantName && s.FatherPhone == app.ParentPhone {
				return
			}
		}
		d.Profiles.Students = append(d.Profiles.Students, models.StudentProfile{
			Name:        app.ApplicantName,
			FatherPhone: app.ParentPhone,
			Grade:       app.Grade,
			Section:     app.Section,
			AppID:       app.ID,
		})
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to confirm application")
	}
	return c.JSON(fiber.Map{"ok": true})
}

type setFeesRequest struct {
	Items []models.LineItem `json:"items"`
}

// SetApplicationFeesAPI sets the admission fee schedule for an application
// and moves it to fees_set.
func SetApplicationFeesAPI(c *fiber.Ctx, st *store.Store) error {
	id := c.Params("id")
	var req setFeesRequest
	if err := c.BodyParser(&req); err != nil || req.Items == nil {
		return c.Status(400).JSON(fiber.Map{"error": "items_required"})
	}

	doc, err := st.Read()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read applications")
	}
	if doc.FindApplication(id) == nil {
		return c.Status(404).JSON(fiber.Map{"error": "not_found"})
	}

	err = st.Write(func(d *models.Document) {
		app := d.FindApplication(id)
		if app == nil {
			return
		}
		entry := models.Fee{
			AppID:     id,
			Items:     req.Items,
			Total:     models.SumItems(req.Items),
			UpdatedAt: time.Now(),
		}
		replaced := false
		for i := range d.Fees {
			if d.Fees[i].AppID == id {
				d.Fees[i] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			d.Fees = append(d.Fees, entry)
		}
		app.Status = models.ApplicationFeesSet
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save fees")
	}
	return c.JSON(fiber.Map{"ok": true})
}

type feeWithApplication struct {
	models.Fee
	App *models.Application `json:"app,omitempty"`
}

// GetFeesAPI lists all fee schedules joined with their applications,
// most recently updated first.
func GetFeesAPI(c *fiber.Ctx, st *store.Store) error {
	doc, err := st.Read()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read fees")
	}

	items := make([]feeWithApplication, 0, len(doc.Fees))
	for _, f := range doc.Fees {
		items = append(items, feeWithApplication{Fee: f, App: doc.FindApplication(f.AppID)})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})
	return c.JSON(fiber.Map{"items": items})
}
