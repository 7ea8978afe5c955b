package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID          string `gorm:"primaryKey"`
	Email       string `gorm:"uniqueIndex;not null"`
	Username    string `gorm:"uniqueIndex;not null"`
	Password    string `gorm:"not null"`
	Role        string `gorm:"default:user"`
	IsActive    bool   `gorm:"default:true"`
	LastLoginAt *time.Time
	LastLoginIP string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
