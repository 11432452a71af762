package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is an admin or trainer account for the web application. Participants
// do not log in; they are reached through attempt links.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex"`
	Password  string
	FirstName string
	LastName  string
	Role      string `gorm:"size:20;default:trainer"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
