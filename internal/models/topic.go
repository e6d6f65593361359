package models

// Topic is a study subject seeded by the schema script. Titles are
// unique ignoring case; the initializer enforces that where the store
// supports it.
type Topic struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
}

// TopicSection is a prewritten content section of a topic, read-only,
// ordered by id within its topic.
type TopicSection struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	TopicID uint64 `gorm:"not null;index:idx_topic_sections_topic" json:"topic_id"`
	Title   string `gorm:"size:255;not null" json:"title"`
	Content string `gorm:"type:text" json:"content"`
}

// RevisionSheet is a prewritten revision entry of a topic, read-only,
// ordered by id within its topic.
type RevisionSheet struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	TopicID uint64 `gorm:"not null;index:idx_revision_sheets_topic" json:"topic_id"`
	Title   string `gorm:"size:255;not null" json:"title"`
	Content string `gorm:"type:text" json:"content"`
}

// TableName overrides the table name for Topic
func (Topic) TableName() string {
	return "topics"
}

// TableName overrides the table name for TopicSection
func (TopicSection) TableName() string {
	return "topic_sections"
}

// TableName overrides the table name for RevisionSheet
func (RevisionSheet) TableName() string {
	return "revision_sheets"
}
