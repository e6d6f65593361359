package services

import (
	"errors"
	"strings"

	"github.com/localnerve/studynotes/internal/models"
	"gorm.io/gorm"
)

// ListNotes returns all notes owned by userID, newest (highest id) first.
func ListNotes(db *gorm.DB, userID uint64) ([]models.Note, error) {
	notes := make([]models.Note, 0)
	err := db.Where("user_id = ?", userID).Order("id DESC").Find(&notes).Error
	return notes, err
}

// CreateNote inserts a note for userID. Empty or whitespace-only
// content is silently ignored; the returned bool reports whether a row
// was actually inserted.
func CreateNote(db *gorm.DB, userID uint64, content string) (bool, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return false, nil
	}
	err := db.Create(&models.Note{UserID: userID, Content: content}).Error
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteNote removes noteID if it belongs to userID. A foreign or
// unknown id is a silent no-op; the ownership check runs before the
// delete statement.
func DeleteNote(db *gorm.DB, userID, noteID uint64) error {
	var note models.Note
	err := db.Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return db.Delete(&models.Note{}, note.ID).Error
}
