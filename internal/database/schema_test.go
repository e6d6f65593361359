package database_test

import (
	"testing"

	"github.com/localnerve/studynotes/internal/database"
	"github.com/localnerve/studynotes/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	return db
}

// TestInitIdempotent tests that running the initializer twice yields
// the same content with no degraded steps on sqlite
func TestInitIdempotent(t *testing.T) {
	db := openTestDB(t)

	report := database.Init(db)
	if report.Degraded() {
		t.Fatalf("Expected clean init on sqlite, got %+v", report)
	}

	var topics, sections, sheets int64
	db.Model(&models.Topic{}).Count(&topics)
	db.Model(&models.TopicSection{}).Count(&sections)
	db.Model(&models.RevisionSheet{}).Count(&sheets)
	if topics != 4 || sections == 0 || sheets == 0 {
		t.Fatalf("Unexpected seed counts: topics=%d sections=%d sheets=%d", topics, sections, sheets)
	}

	report = database.Init(db)
	if report.Degraded() {
		t.Fatalf("Expected clean re-init, got %+v", report)
	}

	var topics2, sections2 int64
	db.Model(&models.Topic{}).Count(&topics2)
	db.Model(&models.TopicSection{}).Count(&sections2)
	if topics2 != topics || sections2 != sections {
		t.Errorf("Re-init changed content: topics %d->%d sections %d->%d", topics, topics2, sections, sections2)
	}
}

// TestInitDedupsTopics tests that duplicate titles are removed keeping
// the lowest id per case-insensitive group
func TestInitDedupsTopics(t *testing.T) {
	db := openTestDB(t)

	// Tables without the unique index yet
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	db.Create(&models.Topic{Title: "Maths"})
	db.Create(&models.Topic{Title: "MATHS"})
	db.Create(&models.Topic{Title: "Science"})

	report := database.Init(db)
	if report.DedupMode != database.DedupNoCase {
		t.Fatalf("Expected nocase dedup on sqlite, got %q (%v)", report.DedupMode, report.DedupErr)
	}

	var kept []models.Topic
	db.Where("LOWER(title) = ?", "maths").Order("id").Find(&kept)
	if len(kept) != 1 {
		t.Fatalf("Expected a single Maths row, got %d", len(kept))
	}
	if kept[0].ID != 1 {
		t.Errorf("Expected lowest id kept, got %d", kept[0].ID)
	}
}

// TestInitIndexBlocksDuplicates tests the NOCASE unique index created
// by the initializer
func TestInitIndexBlocksDuplicates(t *testing.T) {
	db := openTestDB(t)

	report := database.Init(db)
	if report.IndexErr != nil {
		t.Fatalf("Expected index creation on sqlite: %v", report.IndexErr)
	}

	err := db.Create(&models.Topic{Title: "mathematics"}).Error
	if err == nil {
		t.Error("Expected case-insensitive unique index to reject duplicate title")
	}
}
