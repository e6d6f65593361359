package services_test

import (
	"testing"

	"github.com/localnerve/studynotes/internal/models"
	"github.com/localnerve/studynotes/internal/services"
)

// TestCreateNoteEmptyContent tests that empty or whitespace-only
// content inserts nothing
func TestCreateNoteEmptyContent(t *testing.T) {
	db := setupTestDB(t)

	for _, content := range []string{"", "   ", "\n\t"} {
		created, err := services.CreateNote(db, 1, content)
		if err != nil {
			t.Fatalf("CreateNote failed: %v", err)
		}
		if created {
			t.Errorf("Expected no insert for content %q", content)
		}
	}

	var count int64
	db.Model(&models.Note{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected 0 note rows, got %d", count)
	}
}

// TestListNotesOrder tests newest-first ordering scoped to the owner
func TestListNotesOrder(t *testing.T) {
	db := setupTestDB(t)

	services.CreateNote(db, 1, "first")
	services.CreateNote(db, 1, "second")
	services.CreateNote(db, 2, "other user")

	notes, err := services.ListNotes(db, 1)
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("Expected 2 notes, got %d", len(notes))
	}
	if notes[0].Content != "second" || notes[1].Content != "first" {
		t.Errorf("Expected newest first, got %q then %q", notes[0].Content, notes[1].Content)
	}
}

// TestDeleteNoteForeignOwner tests that deleting another user's note
// is a silent no-op
func TestDeleteNoteForeignOwner(t *testing.T) {
	db := setupTestDB(t)

	note := models.Note{UserID: 2, Content: "not yours"}
	db.Create(&note)

	if err := services.DeleteNote(db, 1, note.ID); err != nil {
		t.Fatalf("Expected silent no-op, got %v", err)
	}

	var count int64
	db.Model(&models.Note{}).Where("id = ?", note.ID).Count(&count)
	if count != 1 {
		t.Error("Expected foreign note row to survive")
	}

	// The owner can delete it
	if err := services.DeleteNote(db, 2, note.ID); err != nil {
		t.Fatalf("Owner delete failed: %v", err)
	}
	db.Model(&models.Note{}).Where("id = ?", note.ID).Count(&count)
	if count != 0 {
		t.Error("Expected owner delete to remove the row")
	}
}
