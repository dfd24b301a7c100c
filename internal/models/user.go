package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleDoctor  Role = "DOCTOR"
	RolePatient Role = "PATIENT"
)

// AccountStatus enum
type AccountStatus string

const (
	AccountActivated   AccountStatus = "ACTIVATED"
	AccountPending     AccountStatus = "PENDING"
	AccountDeactivated AccountStatus = "DEACTIVATED"
	AccountBlocked     AccountStatus = "BLOCKED"
)

// User represents a login account. Role-specific details live in the linked
// Patient or Doctor row.
type User struct {
	UserID    uint          `gorm:"primaryKey" json:"userId"`
	Username  string        `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string        `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string        `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Role      Role          `gorm:"size:20;not null" json:"role"`
	Status    AccountStatus `gorm:"size:20;default:'ACTIVATED'" json:"accountStatus"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
