package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rizkyab/partkatalog/internal/auth"
	"github.com/rizkyab/partkatalog/internal/config"
	"github.com/rizkyab/partkatalog/internal/database"
	"github.com/rizkyab/partkatalog/internal/models"
	"github.com/rizkyab/partkatalog/internal/server"
	"github.com/rizkyab/partkatalog/internal/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConfig() *config.Config {
	return &config.Config{
		ServerAddr: ":0",
		AppEnv:     "test",
		JWTSecret:  "test_secret_key_minimum_32_characters_long",
		AllowedOrigins: []string{
			"http://localhost:5173",
		},
		JenisAllowed: []string{
			"Truck Heavy-duty", "Truck Medium-duty", "Truck Light-duty",
		},
		PosisiAllowed: []string{
			"Engine", "Powertrain", "Chassis/Tool", "Electrical", "Cabin/Rear Body",
		},
	}
}

func TestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err, "Failed to create test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Illustration{},
		&models.Part{},
		&models.IllustrationPart{},
		&models.Hotspot{},
		&models.HotspotPart{},
		&models.Estimate{},
	)
	assert.NoError(t, err, "Failed to migrate test database")

	return db
}

func SetupTestApp(t *testing.T) *fiber.App {
	db := TestDB(t)
	database.DB = db

	err := utils.InitLocalStorage()
	assert.NoError(t, err, "Failed to initialize storage")
	utils.SetStorageMode(true)

	return server.New(TestConfig())
}

func CreateTestUser(t *testing.T, db *gorm.DB, username, password, role string) *models.User {
	hash, err := utils.HashPassword(password)
	assert.NoError(t, err, "Failed to hash test password")

	u := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	err = db.Create(u).Error
	assert.NoError(t, err, "Failed to create test user")

	return u
}

// MakeRequest sends a JSON request; session, when non-empty, rides in the
// session cookie.
func MakeRequest(app *fiber.App, method, url string, body interface{}, session string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, url, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: session})
	}

	return app.Test(req, -1)
}

func MakeMultipartRequestWithFile(app *fiber.App, method, url string, files map[string][]byte, session string) (*http.Response, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for fieldName, fileContent := range files {
		part, err := writer.CreateFormFile(fieldName, fieldName+".jpg")
		if err != nil {
			return nil, err
		}
		part.Write(fileContent)
	}

	contentType := writer.FormDataContentType()
	writer.Close()

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", contentType)
	if session != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: session})
	}

	return app.Test(req, -1)
}

// SessionCookie extracts the session cookie value set by a response, or "".
func SessionCookie(resp *http.Response) string {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == auth.SessionCookieName {
			return cookie.Value
		}
	}
	return ""
}

// Login performs a full login and returns the issued session cookie.
func Login(t *testing.T, app *fiber.App, username, password string) string {
	resp, err := MakeRequest(app, "POST", "/api/login", map[string]interface{}{
		"username": username,
		"password": password,
	}, "")
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode, "login should succeed")

	session := SessionCookie(resp)
	assert.NotEmpty(t, session, "login should set the session cookie")
	return session
}

func ParseJSON(t *testing.T, resp *http.Response, v interface{}) {
	defer resp.Body.Close()
	err := json.NewDecoder(resp.Body).Decode(v)
	if err != nil && err != io.EOF {
		assert.NoError(t, err, "Failed to parse response")
	}
}

// AssertErrorCode checks the flat {"error": code} body the API emits.
func AssertErrorCode(t *testing.T, resp *http.Response, expected string) {
	var body struct {
		Error string `json:"error"`
	}
	ParseJSON(t, resp, &body)
	assert.Equal(t, expected, body.Error, "error code mismatch")
}
