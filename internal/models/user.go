package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleUser     Role = "user"
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// PrivilegedRoles may create tasks and schedules and see every user's data.
var PrivilegedRoles = []Role{RoleManager, RoleAdmin}

// AllRoles lists every role a user can register with.
var AllRoles = []Role{RoleUser, RoleEmployee, RoleManager, RoleAdmin}

// ParseRole returns the role for s, or false when s is not a known role.
func ParseRole(s string) (Role, bool) {
	for _, r := range AllRoles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(30);uniqueIndex;not null" json:"username"`
	Email        *string        `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role           `gorm:"type:varchar(20);not null" json:"role"`
	FirstName    string         `gorm:"type:varchar(100)" json:"firstname"`
	LastName     string         `gorm:"type:varchar(100)" json:"lastname"`
	Tel          string         `gorm:"type:varchar(30)" json:"tel"`
	Avatar       string         `gorm:"type:varchar(512)" json:"avatar"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
