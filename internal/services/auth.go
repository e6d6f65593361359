package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/localnerve/studynotes/internal/models"
	"gorm.io/gorm"
)

// Validation errors surfaced to the user as inline messages. The login
// error is deliberately generic so it never leaks which field was wrong.
var (
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrMissingFields      = errors.New("All fields required")
	ErrEmailRegistered    = errors.New("Email already registered")
)

// Login looks up a user by the exact (username, email, password)
// triplet. Credentials are compared as stored.
func Login(db *gorm.DB, username, email, password string) (*models.User, error) {
	var user models.User
	err := db.Where("username = ? AND email = ? AND password = ?",
		strings.TrimSpace(username), strings.TrimSpace(email), password).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login lookup failed: %w", err)
	}
	return &user, nil
}

// Register creates an account. One account per email; all fields are
// required. On success the row is re-read by email to pick up the
// generated id.
func Register(db *gorm.DB, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	var existing models.User
	err := db.Select("id").Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailRegistered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("registration lookup failed: %w", err)
	}

	if err := db.Create(&models.User{
		Username: username,
		Email:    email,
		Password: password,
	}).Error; err != nil {
		return nil, fmt.Errorf("registration insert failed: %w", err)
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, fmt.Errorf("registration re-read failed: %w", err)
	}
	return &user, nil
}

// GetUser fetches a user by id.
func GetUser(db *gorm.DB, id uint64) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}
	return &user, nil
}
