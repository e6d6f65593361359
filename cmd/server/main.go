package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	swagger "github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/localnerve/studynotes/internal/config"
	"github.com/localnerve/studynotes/internal/database"
	"github.com/localnerve/studynotes/internal/handlers"
	"github.com/localnerve/studynotes/internal/importer"
	"github.com/localnerve/studynotes/internal/middleware"
	"github.com/localnerve/studynotes/internal/types"
	"github.com/localnerve/studynotes/internal/utils"
	"gorm.io/gorm"

	_ "github.com/localnerve/studynotes/docs/api" // Swagger docs
)

// @title StudyNotes API
// @version 1.0.0
// @description Study notes, topic browsing and library locations service

// @contact.name API Support
// @contact.url https://github.com/localnerve/studynotes
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /
// @schemes http https

func main() {
	// Optional .env for local development
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Apply schema, seed content, dedup topics. Degraded steps are
	// logged but never fatal.
	report := database.Init(db)
	if report.Degraded() {
		logSchemaReport(report)
	}

	// Seed library locations from the local JSON file
	seedLibraries(db, cfg)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("studynotes")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Persistent sessions: once logged in, a session stays valid for 30
	// days independent of browser restarts, until explicit logout.
	sessions := session.New(session.Config{
		Expiration:     30 * 24 * time.Hour,
		KeyGenerator:   uuid.NewString,
		CookieHTTPOnly: true,
	})

	// Create handlers
	authHandler := &handlers.AuthHandler{DB: db, Sessions: sessions}
	notesHandler := &handlers.NotesHandler{DB: db}
	topicsHandler := &handlers.TopicsHandler{DB: db}
	locationsHandler := &handlers.LocationsHandler{DB: db, Cfg: cfg}

	// Public routes
	app.Get("/", authHandler.Index)
	app.Get("/login", authHandler.LoginPage)
	app.Post("/login", authHandler.Login)
	app.Get("/register", authHandler.RegisterPage)
	app.Post("/register", authHandler.Register)
	app.Get("/logout", authHandler.Logout)
	app.Get("/topics", topicsHandler.List)
	app.Get("/topic/:id", topicsHandler.Detail)
	app.Get("/locations", locationsHandler.List)

	// Session-required routes
	requireUser := middleware.RequireUser(sessions)
	app.Get("/dashboard", requireUser, authHandler.Dashboard)
	app.Get("/notes", requireUser, notesHandler.List)
	app.Post("/notes", requireUser, notesHandler.Create)
	app.Post("/delete_note/:id", requireUser, notesHandler.Delete)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())
	api.Get("/locations_full", locationsHandler.Full)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// logSchemaReport spells out which initializer steps degraded
func logSchemaReport(report database.Report) {
	if report.MigrateErr != nil {
		log.Printf("Schema migration failed (continuing): %v", report.MigrateErr)
	}
	for _, err := range report.SeedErrs {
		log.Printf("Seed statement failed (continuing): %v", err)
	}
	if report.DedupMode != database.DedupNoCase {
		log.Printf("Topic dedup degraded to %q: %v", report.DedupMode, report.DedupErr)
	}
	if report.IndexErr != nil {
		log.Printf("Topic title index not created (duplicates may reappear): %v", report.IndexErr)
	}
}

// seedLibraries imports the library location file; a missing or
// malformed file only logs, the service starts regardless
func seedLibraries(db *gorm.DB, cfg *config.Config) {
	path, err := importer.Resolve(cfg)
	if err != nil {
		log.Printf("Library import skipped: %v", err)
		return
	}

	records, err := importer.Fetch(path)
	if err != nil {
		log.Printf("Library import skipped: %v", err)
		return
	}

	inserted, err := importer.Seed(db, records)
	if err != nil {
		log.Printf("Library import incomplete: %v", err)
	}
	if inserted > 0 {
		log.Printf("Imported %d library locations from %s", inserted, path)
	}
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var customErr *types.CustomError
	if errors.As(err, &customErr) {
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
