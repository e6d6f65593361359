package models

// Note is a text note owned by a single user. Notes are created and
// deleted, never updated; display order is by id.
type Note struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  uint64 `gorm:"not null;index:idx_notes_user" json:"user_id"`
	Content string `gorm:"type:text;not null" json:"content"`
}

// TableName overrides the table name for Note
func (Note) TableName() string {
	return "notes"
}
