package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/localnerve/studynotes/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// canonicalTitles maps common synonym keys (lower-cased) to the display
// title. This runs on top of the storage-layer NOCASE dedup and is not
// equivalent to it: it also title-cases unknown titles.
var canonicalTitles = map[string]string{
	"maths": "Mathematics", "math": "Mathematics", "mathematics": "Mathematics",
	"science": "Science", "sci": "Science",
	"literature": "Literature", "lit": "Literature", "english": "Literature",
	"history": "History", "hist": "History",
}

// defaultDescriptions fills in topics whose stored row has none.
var defaultDescriptions = map[string]string{
	"Mathematics": "Core mathematics topics: algebra, calculus, statistics.",
	"Science":     "Fundamental science topics: physics, chemistry, biology.",
	"Literature":  "Analysis and interpretation of prose and poetry.",
	"History":     "Key events and themes across history.",
}

// TopicView is a topic after presentation-layer canonicalization.
type TopicView struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TopicDetail is one topic with its ordered sections and revision sheets.
type TopicDetail struct {
	Topic    models.Topic           `json:"topic"`
	Sections []models.TopicSection  `json:"sections"`
	Revision []models.RevisionSheet `json:"revision"`
}

// ListTopics reads all topic rows in id order and canonicalizes them
// for display.
func ListTopics(db *gorm.DB) ([]TopicView, error) {
	var topics []models.Topic
	if err := db.Order("id").Find(&topics).Error; err != nil {
		return nil, err
	}
	return Canonicalize(topics), nil
}

// Canonicalize maps stored titles to canonical display titles, drops
// duplicates by canonical title (case-insensitive, first id wins), and
// substitutes a default description where the row has none.
func Canonicalize(topics []models.Topic) []TopicView {
	titleCaser := cases.Title(language.English)
	seen := make(map[string]struct{})
	views := make([]TopicView, 0, len(topics))

	for _, t := range topics {
		raw := strings.TrimSpace(t.Title)
		canonical, ok := canonicalTitles[strings.ToLower(raw)]
		if !ok {
			canonical = titleCaser.String(raw)
		}

		key := strings.ToLower(canonical)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		desc := t.Description
		if desc == "" {
			desc = defaultDescriptions[canonical]
		}

		views = append(views, TopicView{ID: t.ID, Title: canonical, Description: desc})
	}

	return views
}

// GetTopic fetches one topic with its sections and revision sheets,
// each ordered by id.
func GetTopic(db *gorm.DB, id uint64) (*TopicDetail, error) {
	var topic models.Topic
	if err := db.First(&topic, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}

	detail := &TopicDetail{
		Topic:    topic,
		Sections: make([]models.TopicSection, 0),
		Revision: make([]models.RevisionSheet, 0),
	}
	if err := db.Where("topic_id = ?", id).Order("id").Find(&detail.Sections).Error; err != nil {
		return nil, err
	}
	if err := db.Where("topic_id = ?", id).Order("id").Find(&detail.Revision).Error; err != nil {
		return nil, err
	}
	return detail, nil
}
