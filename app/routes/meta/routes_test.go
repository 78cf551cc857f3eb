package meta

import (
	"encoding/json"
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

func TestVersionPollTracksWrites(t *testing.T) {
	st := store.New(filepath.Join(t.TempDir(), "local-db.json"))
	config.AppConfig = &config.Config{Store: st}

	app := fiber.New()
	SetupMetaRoutes(app)

	poll := func() map[string]interface{} {
		req := httptest.NewRequest(http.MethodGet, "/api/meta/version", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, 200, resp.StatusCode)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return body
	}

	assert.Equal(t, 0.0, poll()["version"])

	require.NoError(t, st.Write(func(d *models.Document) {}))
	require.NoError(t, st.Write(func(d *models.Document) {}))

	body := poll()
	assert.Equal(t, 2.0, body["version"])
	assert.NotEmpty(t, body["updatedAt"])
}
