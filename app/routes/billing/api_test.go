package billing

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sas-admin/app/config"
	"sas-admin/app/models"
	"sas-admin/app/store"
)

func setupTestApp(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "local-db.json"))
	err := st.Write(func(d *models.Document) {
		d.Profiles.Students = []models.StudentProfile{
			{Name: "Asha Rao", FatherPhone: "9000000181", Grade: "CLASS 7", Section: "A", Roll: "7A01"},
			{Name: "Vikram Iyer", FatherPhone: "9000000182", Grade: "CLASS 7", Section: "A", Roll: "7A02"},
			{Name: "Rohan Das", FatherPhone: "", Grade: "CLASS 7", Section: "A", Roll: "7A03"},
		}
	})
	require.NoError(t, err)

	config.AppConfig = &config.Config{Store: st}
	app := fiber.New()
	SetupBillingRoutes(app)
	return app, st
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestCreateCampaignValidation(t *testing.T) {
	app, _ := setupTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/adhoc", fiber.Map{
		"items": []fiber.Map{{"label": "Books", "amount": 100}},
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "missing_title", body["error"])

	status, body = doJSON(t, app, http.MethodPost, "/api/adhoc", fiber.Map{"title": "Books"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "missing_items", body["error"])

	status, body = doJSON(t, app, http.MethodPost, "/api/adhoc", fiber.Map{
		"title":  "Books",
		"items":  []fiber.Map{{"label": "Books", "amount": 100}},
		"target": fiber.Map{"type": "section", "grade": "CLASS 7"},
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_target", body["error"])
}

func TestCreateCampaignRecomputesTotal(t *testing.T) {
	app, st := setupTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/adhoc", fiber.Map{
		"title": "Lab Fee",
		"total": 99999, // must be ignored
		"items": []fiber.Map{{"label": "Equipment", "amount": 300}, {"label": "Consumables", "amount": 150}},
	})
	require.Equal(t, 200, status)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)

	doc, err := st.Read()
	require.NoError(t, err)
	campaign := doc.FindCampaign(id)
	require.NotNil(t, campaign)
	assert.Equal(t, 450.0, campaign.Total)
}

func TestCampaignSendFlow(t *testing.T) {
	app, _ := setupTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/adhoc", fiber.Map{
		"title":  "Annual Day",
		"items":  []fiber.Map{{"label": "Costume", "amount": 400}},
		"target": fiber.Map{"type": "section", "grade": "CLASS 7", "section": "A"},
	})
	require.Equal(t, 200, status)
	id := body["id"].(string)

	// Preview keeps the student with no phone on file
	status, body = doJSON(t, app, http.MethodPost, "/api/adhoc/resolve", fiber.Map{
		"target": fiber.Map{"type": "section", "grade": "CLASS 7", "section": "A"},
	})
	require.Equal(t, 200, status)
	assert.Equal(t, 3.0, body["count"])

	status, body = doJSON(t, app, http.MethodPost, "/api/adhoc/"+id+"/send", nil)
	require.Equal(t, 200, status)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, 2.0, body["delivered"])
	assert.Equal(t, 0.0, body["skipped"])
	assert.Equal(t, 3.0, body["matched"])
	assert.Equal(t, 1.0, body["missingPhone"])

	// Re-send: everyone reachable is already billed
	status, body = doJSON(t, app, http.MethodPost, "/api/adhoc/"+id+"/send", nil)
	require.Equal(t, 200, status)
	assert.Equal(t, 0.0, body["delivered"])
	assert.Equal(t, 2.0, body["skipped"])

	// The parent sees exactly one bill, then pays it
	status, body = doJSON(t, app, http.MethodGet, "/api/adhoc/bills?phone=%2B91+90000+00181", nil)
	require.Equal(t, 200, status)
	items := body["items"].([]interface{})
	require.Len(t, items, 1)
	bill := items[0].(map[string]interface{})
	assert.Equal(t, "unpaid", bill["status"])

	status, body = doJSON(t, app, http.MethodPost, "/api/adhoc/bills/pay", fiber.Map{"billId": bill["id"]})
	require.Equal(t, 200, status)
	assert.Equal(t, true, body["ok"])

	status, body = doJSON(t, app, http.MethodGet, "/api/adhoc/bills?phone=9000000181", nil)
	require.Equal(t, 200, status)
	paid := body["items"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "paid", paid["status"])
	assert.NotEmpty(t, paid["paidAt"])
}

func TestResolveAmbiguousStudentReturns409(t *testing.T) {
	app, st := setupTestApp(t)
	require.NoError(t, st.Write(func(d *models.Document) {
		d.Profiles.Students = append(d.Profiles.Students, models.StudentProfile{
			Name: "Asha Rao", FatherPhone: "9000000301", Grade: "CLASS 9", Section: "B", Roll: "9B01",
		})
	}))

	status, body := doJSON(t, app, http.MethodPost, "/api/adhoc/resolve", fiber.Map{
		"target": fiber.Map{"type": "student", "studentName": "Asha Rao"},
	})
	assert.Equal(t, 409, status)
	assert.Equal(t, "ambiguous_student", body["error"])
	assert.Equal(t, 2.0, body["count"])
	assert.Len(t, body["matches"].([]interface{}), 2)
}

func TestSendErrors(t *testing.T) {
	app, st := setupTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/adhoc/nope/send", nil)
	assert.Equal(t, 404, status)
	assert.Equal(t, "not_found", body["error"])

	require.NoError(t, st.Write(func(d *models.Document) {
		d.AdhocFees = append(d.AdhocFees, models.AdhocCampaign{ID: "adhoc_untargeted", Title: "Untargeted"})
	}))
	status, body = doJSON(t, app, http.MethodPost, "/api/adhoc/adhoc_untargeted/send", nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "no_target", body["error"])

	status, body = doJSON(t, app, http.MethodPost, "/api/adhoc/bills/pay", fiber.Map{"billId": "missing"})
	assert.Equal(t, 404, status)
	assert.Equal(t, "not_found", body["error"])
}

func TestDeleteCampaign(t *testing.T) {
	app, st := setupTestApp(t)
	require.NoError(t, st.Write(func(d *models.Document) {
		d.AdhocFees = append(d.AdhocFees, models.AdhocCampaign{ID: "adhoc_gone", Title: "Old"})
	}))

	status, body := doJSON(t, app, http.MethodDelete, "/api/adhoc/adhoc_gone", nil)
	require.Equal(t, 200, status)
	assert.Equal(t, true, body["ok"])

	status, _ = doJSON(t, app, http.MethodDelete, "/api/adhoc/adhoc_gone", nil)
	assert.Equal(t, 404, status)

	doc, err := st.Read()
	require.NoError(t, err)
	assert.Nil(t, doc.FindCampaign("adhoc_gone"))
}
