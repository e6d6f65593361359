package models

// User represents a registered account. One account per email.
//
// Passwords are stored and compared as-is to match the behavior of the
// original service this replaces. Known defect, tracked upstream.
type User struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"size:255;not null" json:"username"`
	Email    string `gorm:"size:255;not null;uniqueIndex:idx_users_email" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
