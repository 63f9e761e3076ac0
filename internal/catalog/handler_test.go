package catalog_test

import (
	"fmt"
	"testing"

	"github.com/rizkyab/partkatalog/internal/database"
	"github.com/rizkyab/partkatalog/internal/models"
	"github.com/rizkyab/partkatalog/internal/testutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func adminSession(t *testing.T, app *fiber.App) string {
	t.Helper()
	testutils.CreateTestUser(t, database.DB, "editor", "editor123", models.RoleAdmin)
	return testutils.Login(t, app, "editor", "editor123")
}

func createSheet(t *testing.T, app *fiber.App, session, name string) uint {
	t.Helper()
	resp, err := testutils.MakeRequest(app, "POST", "/api/illustrations", map[string]interface{}{
		"id":          "Truck Heavy-duty",
		"name":        name,
		"model":       "FM260JD",
		"posisi":      "Engine",
		"nama_posisi": "Engine Group",
		"no_posisi":   "01",
		"image":       "/uploads/sheet.png",
		"width":       1200.0,
		"height":      800.0,
	}, session)
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	var body map[string]interface{}
	testutils.ParseJSON(t, resp, &body)
	return uint(body["iid"].(float64))
}

func TestCreateIllustrationHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	session := adminSession(t, app)

	t.Run("Success - jenis rides in the id field", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/illustrations", map[string]interface{}{
			"id":     "Truck Heavy-duty",
			"name":   "Cylinder Head",
			"posisi": "Engine",
			"image":  "/uploads/head.png",
			"width":  1000.0,
			"height": 700.0,
		}, session)
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)

		var body map[string]interface{}
		testutils.ParseJSON(t, resp, &body)
		assert.Equal(t, "Truck Heavy-duty", body["id"])
		assert.NotZero(t, body["iid"])
		size := body["size"].(map[string]interface{})
		assert.Equal(t, 1000.0, size["width"])
	})

	t.Run("Error - unknown jenis", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/illustrations", map[string]interface{}{
			"id":     "Bus",
			"name":   "Cylinder Head",
			"posisi": "Engine",
			"image":  "/uploads/head.png",
			"width":  1000.0,
			"height": 700.0,
		}, session)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		testutils.AssertErrorCode(t, resp, "invalid_jenis")
	})

	t.Run("Error - unknown posisi", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/illustrations", map[string]interface{}{
			"id":     "Truck Heavy-duty",
			"name":   "Cylinder Head",
			"posisi": "Wheels",
			"image":  "/uploads/head.png",
			"width":  1000.0,
			"height": 700.0,
		}, session)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		testutils.AssertErrorCode(t, resp, "invalid_posisi")
	})

	t.Run("Error - missing dimensions", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/illustrations", map[string]interface{}{
			"id":     "Truck Heavy-duty",
			"name":   "Cylinder Head",
			"posisi": "Engine",
			"image":  "/uploads/head.png",
		}, session)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		testutils.AssertErrorCode(t, resp, "bad_request")
	})

	t.Run("Error - no session", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/illustrations", map[string]interface{}{
			"id":     "Truck Heavy-duty",
			"name":   "Cylinder Head",
			"posisi": "Engine",
			"image":  "/uploads/head.png",
			"width":  1000.0,
			"height": 700.0,
		}, "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
		testutils.AssertErrorCode(t, resp, "unauthorized")
	})
}

func TestGetIllustrationHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	session := adminSession(t, app)
	iid := createSheet(t, app, session, "Fuel System")

	t.Run("Success - reads are public", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", fmt.Sprintf("/api/illustrations/iid/%d", iid), nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var detail map[string]interface{}
		testutils.ParseJSON(t, resp, &detail)
		assert.Equal(t, "Fuel System", detail["name"])
		assert.Empty(t, detail["parts"])
		assert.Empty(t, detail["hotspots"])
	})

	t.Run("Error - unknown iid", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/illustrations/iid/99999", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
		testutils.AssertErrorCode(t, resp, "not_found")
	})
}

func TestReplaceStructureHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	session := adminSession(t, app)
	iid := createSheet(t, app, session, "Transmission")

	structure := map[string]interface{}{
		"parts": []map[string]interface{}{
			{"id": "P-100", "code": "ME015254", "name": "Gear, 3rd"},
			{"id": "P-200", "code": "ME015255", "name": "Gear, 4th"},
		},
		"hotspots": []map[string]interface{}{
			{"partId": "P-100", "x": 0.25, "y": 0.4, "r": 0.02},
			{"partIds": []string{"P-100", "P-200"}, "x": 0.6, "y": 0.7, "r": 0.03},
		},
	}

	t.Run("Success - full graph replacement", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "PUT",
			fmt.Sprintf("/api/illustrations/iid/%d/structure", iid), structure, session)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		resp, err = testutils.MakeRequest(app, "GET", fmt.Sprintf("/api/illustrations/iid/%d", iid), nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var detail struct {
			Parts []struct {
				ID   string `json:"id"`
				Code string `json:"code"`
			} `json:"parts"`
			Hotspots []struct {
				PartID  string   `json:"partId"`
				PartIDs []string `json:"partIds"`
			} `json:"hotspots"`
		}
		testutils.ParseJSON(t, resp, &detail)

		assert.Len(t, detail.Parts, 2)
		assert.Equal(t, "ME015254", detail.Parts[0].Code, "parts ordered by code")
		assert.Len(t, detail.Hotspots, 2)

		var singles, multis int
		for _, h := range detail.Hotspots {
			if h.PartID != "" {
				singles++
			}
			if len(h.PartIDs) > 1 {
				multis++
			}
		}
		assert.Equal(t, 1, singles, "one-part hotspot serializes as partId")
		assert.Equal(t, 1, multis, "multi-part hotspot serializes as partIds")
	})

	t.Run("Replacement preserves an existing price", func(t *testing.T) {
		err := database.DB.Model(&models.Part{}).Where("id = ?", "P-100").
			Update("price", 125000.0).Error
		assert.NoError(t, err)

		resp, err := testutils.MakeRequest(app, "PUT",
			fmt.Sprintf("/api/illustrations/iid/%d/structure", iid), structure, session)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var p models.Part
		assert.NoError(t, database.DB.First(&p, "id = ?", "P-100").Error)
		assert.Equal(t, 125000.0, p.Price)
	})

	t.Run("Success - empty batch clears the graph", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "PUT",
			fmt.Sprintf("/api/illustrations/iid/%d/structure", iid), map[string]interface{}{
				"parts":    []map[string]interface{}{},
				"hotspots": []map[string]interface{}{},
			}, session)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var links int64
		database.DB.Model(&models.IllustrationPart{}).Where("illustration_iid = ?", iid).Count(&links)
		assert.Equal(t, int64(0), links)
		var hotspots int64
		database.DB.Model(&models.Hotspot{}).Where("illustration_iid = ?", iid).Count(&hotspots)
		assert.Equal(t, int64(0), hotspots)
	})

	t.Run("Error - missing keys", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "PUT",
			fmt.Sprintf("/api/illustrations/iid/%d/structure", iid), map[string]interface{}{
				"parts": []map[string]interface{}{},
			}, session)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		testutils.AssertErrorCode(t, resp, "bad_request")
	})

	t.Run("Error - unknown sheet leaves nothing behind", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "PUT",
			"/api/illustrations/iid/99999/structure", structure, session)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
		testutils.AssertErrorCode(t, resp, "not_found")
	})
}

func TestAddAndRemovePartHandlers(t *testing.T) {
	app := testutils.SetupTestApp(t)
	session := adminSession(t, app)
	iid := createSheet(t, app, session, "Clutch")

	t.Run("Success - add links and upserts the part", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST",
			fmt.Sprintf("/api/illustrations/iid/%d/parts", iid), map[string]interface{}{
				"partId": "P-300",
				"code":   "ME500123",
				"name":   "Clutch Disc",
				"price":  450000.0,
			}, session)
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)

		var links int64
		database.DB.Model(&models.IllustrationPart{}).
			Where("illustration_iid = ? AND part_id = ?", iid, "P-300").Count(&links)
		assert.Equal(t, int64(1), links)
	})

	t.Run("Success - re-adding the same part is idempotent", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST",
			fmt.Sprintf("/api/illustrations/iid/%d/parts", iid), map[string]interface{}{
				"partId": "P-300",
				"code":   "ME500123",
				"name":   "Clutch Disc",
				"price":  450000.0,
			}, session)
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)

		var links int64
		database.DB.Model(&models.IllustrationPart{}).
			Where("illustration_iid = ? AND part_id = ?", iid, "P-300").Count(&links)
		assert.Equal(t, int64(1), links)
	})

	t.Run("Remove deletes orphaned hotspots", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "PUT",
			fmt.Sprintf("/api/illustrations/iid/%d/structure", iid), map[string]interface{}{
				"parts": []map[string]interface{}{
					{"id": "P-300", "code": "ME500123", "name": "Clutch Disc"},
					{"id": "P-400", "code": "ME500124", "name": "Pressure Plate"},
				},
				"hotspots": []map[string]interface{}{
					{"partId": "P-300", "x": 0.1, "y": 0.1, "r": 0.02},
					{"partIds": []string{"P-300", "P-400"}, "x": 0.5, "y": 0.5, "r": 0.02},
				},
			}, session)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		resp, err = testutils.MakeRequest(app, "DELETE",
			fmt.Sprintf("/api/illustrations/iid/%d/parts/P-300", iid), nil, session)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		// The single-part hotspot is gone; the shared one survives with P-400.
		var hotspots int64
		database.DB.Model(&models.Hotspot{}).Where("illustration_iid = ?", iid).Count(&hotspots)
		assert.Equal(t, int64(1), hotspots)

		var p models.Part
		assert.NoError(t, database.DB.First(&p, "id = ?", "P-300").Error,
			"unlinking must not delete the part row")
	})

	t.Run("Error - removing an unlinked part", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "DELETE",
			fmt.Sprintf("/api/illustrations/iid/%d/parts/P-999", iid), nil, session)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
		testutils.AssertErrorCode(t, resp, "not_found")
	})
}

func TestDeleteIllustrationHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	session := adminSession(t, app)
	iid := createSheet(t, app, session, "Radiator")

	resp, err := testutils.MakeRequest(app, "PUT",
		fmt.Sprintf("/api/illustrations/iid/%d/structure", iid), map[string]interface{}{
			"parts": []map[string]interface{}{
				{"id": "P-500", "code": "ME600001", "name": "Radiator Core"},
			},
			"hotspots": []map[string]interface{}{
				{"partId": "P-500", "x": 0.3, "y": 0.3, "r": 0.02},
			},
		}, session)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	t.Run("Success - cascades links and hotspots", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "DELETE",
			fmt.Sprintf("/api/illustrations/iid/%d", iid), nil, session)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var count int64
		database.DB.Model(&models.Illustration{}).Where("iid = ?", iid).Count(&count)
		assert.Equal(t, int64(0), count)
		database.DB.Model(&models.IllustrationPart{}).Where("illustration_iid = ?", iid).Count(&count)
		assert.Equal(t, int64(0), count)
		database.DB.Model(&models.Hotspot{}).Where("illustration_iid = ?", iid).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Error - already gone", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "DELETE",
			fmt.Sprintf("/api/illustrations/iid/%d", iid), nil, session)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
		testutils.AssertErrorCode(t, resp, "not_found")
	})
}

func TestCatalogHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	session := adminSession(t, app)
	createSheet(t, app, session, "Axle Front")
	createSheet(t, app, session, "Axle Rear")

	resp, err := testutils.MakeRequest(app, "GET", "/api/catalog", nil, "")
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Illustrations []map[string]interface{} `json:"illustrations"`
	}
	testutils.ParseJSON(t, resp, &body)
	assert.Len(t, body.Illustrations, 2)
	for _, ill := range body.Illustrations {
		assert.Contains(t, ill, "parts")
		assert.Contains(t, ill, "hotspots")
	}
}
