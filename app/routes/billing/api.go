package billing

import (
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sas-admin/app/models"
	"sas-admin/app/roster"
	"sas-admin/app/store"
)

// GetCampaignsAPI returns all ad-hoc campaigns.
func GetCampaignsAPI(c *fiber.Ctx, st *store.Store) error {
	doc, err := st.Read()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read campaigns")
	}
	return c.JSON(fiber.Map{"items": doc.AdhocFees})
}

type createCampaignRequest struct {
	Title   string            `json:"title"`
	Purpose string            `json:"purpose"`
	Items   []models.LineItem `json:"items"`
	Target  *models.Target    `json:"target"`
}

// CreateCampaignAPI creates an ad-hoc campaign. The total is always
// recomputed from the line items; a caller-supplied total is ignored.
func CreateCampaignAPI(c *fiber.Ctx, st *store.Store) error {
	var req createCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid_body"})
	}
	if req.Title == "" {
		return c.Status(400).JSON(fiber.Map{"error": "missing_title"})
	}
	if len(req.Items) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "missing_items"})
	}
	if req.Target != nil {
		if err := req.Target.Validate(); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid_target", "details": err.Error()})
		}
	}

	campaign := models.AdhocCampaign{
		ID:        "adhoc_" + uuid.NewString(),
		Title:     req.Title,
		Purpose:   req.Purpose,
		Items:     req.Items,
		Total:     models.SumItems(req.Items),
		Target:    req.Target,
		CreatedAt: time.Now(),
	}
	err := st.Write(func(d *models.Document) {
		d.AdhocFees = append(d.AdhocFees, campaign)
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save campaign")
	}
	return c.JSON(fiber.Map{"ok": true, "id": campaign.ID})
}

// DeleteCampaignAPI removes a campaign. Bills already issued for it are
// snapshots and stay untouched.
func DeleteCampaignAPI(c *fiber.Ctx, st *store.Store) error {
	id := c.Params("id")
	doc, err := st.Read()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read campaigns")
	}
	if doc.FindCampaign(id) == nil {
		return c.Status(404).JSON(fiber.Map{"error": "not_found"})
	}

	err = st.Write(func(d *models.Document) {
		kept := d.AdhocFees[:0]
		for _, campaign := range d.AdhocFees {
			if campaign.ID != id {
				kept = append(kept, campaign)
			}
		}
		d.AdhocFees = kept
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete campaign")
	}
	return c.JSON(fiber.Map{"ok": true})
}

type resolveRequest struct {
	Target *models.Target `json:"target"`
}

// ResolveTargetAPI previews the recipients a target would reach. Students
// without a phone on file are included here; the send path filters them out.
func ResolveTargetAPI(c *fiber.Ctx, st *store.Store, db *sql.DB) error {
	var req resolveRequest
	if err := c.BodyParser(&req); err != nil || req.Target == nil || req.Target.Type == "" {
		return c.JSON(fiber.Map{"items": []roster.Entry{}, "count": 0})
	}
	if err := req.Target.Validate(); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid_target", "details": err.Error()})
	}

	doc, err := st.Read()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read roster")
	}
	items, err := roster.Resolve(req.Target, buildRoster(doc, db))
	if err != nil {
		var ambiguous *roster.AmbiguousError
		if errors.As(err, &ambiguous) {
			return c.Status(409).JSON(fiber.Map{
				"error":   "ambiguous_student",
				"count":   len(ambiguous.Candidates),
				"matches": ambiguous.Candidates,
			})
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to resolve target")
	}
	return c.JSON(fiber.Map{"items": items, "count": len(items)})
}

// SendCampaignAPI issues one bill per resolved recipient, skipping anyone
// already billed for this campaign. Either the whole fan-out is reported or
// it aborts with no partial issuance.
func SendCampaignAPI(c *fiber.Ctx, st *store.Store, db *sql.DB) error {
	result, err := issueCampaign(st, db, c.Params("id"))
	if err != nil {
		var ambiguous *roster.AmbiguousError
		switch {
		case errors.As(err, &ambiguous):
			return c.Status(409).JSON(fiber.Map{
				"error":   "ambiguous_student",
				"count":   len(ambiguous.Candidates),
				"matches": ambiguous.Candidates,
			})
		case errors.Is(err, errCampaignNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "not_found"})
		case errors.Is(err, errNoTarget):
			return c.Status(400).JSON(fiber.Map{"error": "no_target"})
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to send campaign")
	}
	return c.JSON(fiber.Map{
		"ok":           true,
		"delivered":    result.Delivered,
		"skipped":      result.Skipped,
		"matched":      result.Matched,
		"missingPhone": result.MissingPhone,
	})
}

// GetBillsAPI lists a parent's bills, newest first. Phones are compared in
// normalized form so any formatting of the same number finds the same bills.
func GetBillsAPI(c *fiber.Ctx, st *store.Store) error {
	phone := roster.NormalizePhone(c.Query("phone"))
	if phone == "" {
		return c.Status(400).JSON(fiber.Map{"error": "missing_phone"})
	}
	doc, err := st.Read()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read bills")
	}

	bills := []models.AdhocBill{}
	for _, b := range doc.AdhocBills {
		if roster.NormalizePhone(b.ParentPhone) == phone {
			bills = append(bills, b)
		}
	}
	sort.Slice(bills, func(i, j int) bool {
		return bills[i].CreatedAt.After(bills[j].CreatedAt)
	})
	return c.JSON(fiber.Map{"items": bills})
}

type payBillRequest struct {
	BillID string `json:"billId"`
}

// PayBillAPI confirms payment of a bill. The unpaid -> paid transition is
// one-way; paying an already-paid bill changes nothing.
func PayBillAPI(c *fiber.Ctx, st *store.Store) error {
	var req payBillRequest
	if err := c.BodyParser(&req); err != nil || req.BillID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "missing_bill"})
	}

	doc, err := st.Read()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read bills")
	}
	exists := false
	for _, b := range doc.AdhocBills {
		if b.ID == req.BillID {
			exists = true
			break
		}
	}
	if !exists {
		return c.Status(404).JSON(fiber.Map{"error": "not_found"})
	}

	err = st.Write(func(d *models.Document) {
		for i := range d.AdhocBills {
			if d.AdhocBills[i].ID == req.BillID {
				if d.AdhocBills[i].Status != models.BillPaid {
					d.AdhocBills[i].MarkPaid()
				}
				return
			}
		}
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update bill")
	}
	return c.JSON(fiber.Map{"ok": true})
}
