package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/localnerve/studynotes/internal/config"
	"github.com/localnerve/studynotes/internal/handlers"
	"github.com/localnerve/studynotes/internal/middleware"
	"github.com/localnerve/studynotes/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Note{},
		&models.Topic{},
		&models.TopicSection{},
		&models.RevisionSheet{},
		&models.Location{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// newTestApp wires the real routes against a test database
func newTestApp(t *testing.T, db *gorm.DB, cfg *config.Config) *fiber.App {
	app := fiber.New()

	sessions := session.New()
	authHandler := &handlers.AuthHandler{DB: db, Sessions: sessions}
	notesHandler := &handlers.NotesHandler{DB: db}
	topicsHandler := &handlers.TopicsHandler{DB: db}
	locationsHandler := &handlers.LocationsHandler{DB: db, Cfg: cfg}

	app.Get("/", authHandler.Index)
	app.Get("/login", authHandler.LoginPage)
	app.Post("/login", authHandler.Login)
	app.Get("/register", authHandler.RegisterPage)
	app.Post("/register", authHandler.Register)
	app.Get("/logout", authHandler.Logout)
	app.Get("/topics", topicsHandler.List)
	app.Get("/topic/:id", topicsHandler.Detail)
	app.Get("/locations", locationsHandler.List)

	requireUser := middleware.RequireUser(sessions)
	app.Get("/dashboard", requireUser, authHandler.Dashboard)
	app.Get("/notes", requireUser, notesHandler.List)
	app.Post("/notes", requireUser, notesHandler.Create)
	app.Post("/delete_note/:id", requireUser, notesHandler.Delete)

	app.Get("/api/locations_full", locationsHandler.Full)

	return app
}

// formRequest builds a form-encoded POST
func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest("POST", target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// register creates an account through the real route and returns the
// session cookies
func register(t *testing.T, app *fiber.App, username, email, password string) []*http.Cookie {
	t.Helper()

	resp, err := app.Test(formRequest("/register", url.Values{
		"username": {username},
		"email":    {email},
		"password": {password},
	}))
	if err != nil {
		t.Fatalf("Register request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("Expected 302 after register, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/dashboard" {
		t.Fatalf("Expected redirect to /dashboard, got %q", loc)
	}

	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("Expected a session cookie after register")
	}
	return cookies
}

func withCookies(req *http.Request, cookies []*http.Cookie) *http.Request {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// TestRegisterAutoLogin tests that registration establishes a session
// usable on the dashboard
func TestRegisterAutoLogin(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db, &config.Config{})

	cookies := register(t, app, "alice", "alice@example.com", "secret")

	req := withCookies(httptest.NewRequest("GET", "/dashboard", nil), cookies)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Dashboard request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected 200 on dashboard, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["username"] != "alice" || body["email"] != "alice@example.com" {
		t.Errorf("Unexpected dashboard payload: %v", body)
	}
}

// TestRegisterDuplicateEmail tests the inline validation error and
// that no second row is created
func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db, &config.Config{})

	register(t, app, "alice", "alice@example.com", "secret")

	resp, err := app.Test(formRequest("/register", url.Values{
		"username": {"alice2"},
		"email":    {"alice@example.com"},
		"password": {"other"},
	}))
	if err != nil {
		t.Fatalf("Second register request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Errorf("Expected 409, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["message"] != "Email already registered" {
		t.Errorf("Expected duplicate-email message, got %v", body["message"])
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 user row, got %d", count)
	}
}

// TestLoginWrongPassword tests the generic invalid-credentials message
func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db, &config.Config{})

	register(t, app, "alice", "alice@example.com", "secret")

	resp, err := app.Test(formRequest("/login", url.Values{
		"username": {"alice"},
		"email":    {"alice@example.com"},
		"password": {"wrong"},
	}))
	if err != nil {
		t.Fatalf("Login request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["message"] != "Invalid credentials" {
		t.Errorf("Expected generic message, got %v", body["message"])
	}
}

// TestUnauthenticatedRedirect tests that session-required routes
// redirect to the login page
func TestUnauthenticatedRedirect(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db, &config.Config{})

	for _, target := range []string{"/notes", "/dashboard"} {
		resp, err := app.Test(httptest.NewRequest("GET", target, nil))
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusFound {
			t.Errorf("Expected 302 for %s, got %d", target, resp.StatusCode)
		}
		if loc := resp.Header.Get("Location"); loc != "/login" {
			t.Errorf("Expected redirect to /login for %s, got %q", target, loc)
		}
	}
}

// TestCreateEmptyNote tests the PRG no-op: no row inserted, response
// still redirects to the notes list
func TestCreateEmptyNote(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db, &config.Config{})

	cookies := register(t, app, "alice", "alice@example.com", "secret")

	resp, err := app.Test(withCookies(formRequest("/notes", url.Values{
		"content": {"   "},
	}), cookies))
	if err != nil {
		t.Fatalf("Create request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Errorf("Expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/notes" {
		t.Errorf("Expected redirect to /notes, got %q", loc)
	}

	var count int64
	db.Model(&models.Note{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected 0 note rows, got %d", count)
	}
}

// TestCreateAndListNotes tests the PRG insert and newest-first listing
func TestCreateAndListNotes(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db, &config.Config{})

	cookies := register(t, app, "alice", "alice@example.com", "secret")

	for _, content := range []string{"first", "second"} {
		resp, err := app.Test(withCookies(formRequest("/notes", url.Values{
			"content": {content},
		}), cookies))
		if err != nil {
			t.Fatalf("Create request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusFound {
			t.Fatalf("Expected 302, got %d", resp.StatusCode)
		}
	}

	resp, err := app.Test(withCookies(httptest.NewRequest("GET", "/notes", nil), cookies))
	if err != nil {
		t.Fatalf("List request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var notes []models.Note
	if err := json.NewDecoder(resp.Body).Decode(&notes); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(notes) != 2 || notes[0].Content != "second" {
		t.Errorf("Expected newest-first notes, got %+v", notes)
	}
}

// TestDeleteForeignNote tests that the target row survives and the
// requester sees no error
func TestDeleteForeignNote(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db, &config.Config{})

	cookies := register(t, app, "alice", "alice@example.com", "secret")

	// A note owned by someone else
	other := models.Note{UserID: 9999, Content: "not yours"}
	db.Create(&other)

	resp, err := app.Test(withCookies(formRequest("/delete_note/1", nil), cookies))
	if err != nil {
		t.Fatalf("Delete request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Errorf("Expected 302, got %d", resp.StatusCode)
	}

	var count int64
	db.Model(&models.Note{}).Where("id = ?", other.ID).Count(&count)
	if count != 1 {
		t.Error("Expected foreign note row to survive")
	}
}

// TestTopicNotFound tests the bare 404 for an unknown topic id
func TestTopicNotFound(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db, &config.Config{})

	resp, err := app.Test(httptest.NewRequest("GET", "/topic/9999", nil))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp.StatusCode)
	}
}

// TestLocationsFormats tests the page payload and the bare coerced
// array under ?format=json
func TestLocationsFormats(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db, &config.Config{})

	lat := -33.87
	db.Create(&models.Location{Name: "Central Library", Address: "1 Main St", Lat: &lat})

	resp, err := app.Test(httptest.NewRequest("GET", "/locations", nil))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	var page map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if _, ok := page["locations"]; !ok {
		t.Error("Expected locations in page payload")
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/locations?format=json", nil))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	var rows []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if rows[0]["lat"] != -33.87 {
		t.Errorf("Expected numeric lat, got %v", rows[0]["lat"])
	}
	if rows[0]["lon"] != nil {
		t.Errorf("Expected null lon, got %v", rows[0]["lon"])
	}
}

// TestLogout tests that the session is cleared
func TestLogout(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db, &config.Config{})

	cookies := register(t, app, "alice", "alice@example.com", "secret")

	resp, err := app.Test(withCookies(httptest.NewRequest("GET", "/logout", nil), cookies))
	if err != nil {
		t.Fatalf("Logout request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound || resp.Header.Get("Location") != "/" {
		t.Errorf("Expected redirect to /, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	// Old cookie no longer grants access
	resp, err = app.Test(withCookies(httptest.NewRequest("GET", "/notes", nil), cookies))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Errorf("Expected redirect to /login after logout, got %d", resp.StatusCode)
	}
}
