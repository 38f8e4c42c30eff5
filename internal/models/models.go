package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name         string `gorm:"not null"`
	Surname      string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	IsAdmin      bool   `gorm:"default:false"` // Организатор: доступ к станциям и чекинам
}

type Event struct {
	gorm.Model
	Name                 string     `gorm:"uniqueIndex;not null"` // Название события, например "PickHacks 2026"
	Year                 int        `gorm:"uniqueIndex;not null"`
	StartDate            time.Time  `gorm:"not null"`
	EndDate              time.Time  `gorm:"not null"`
	IsActive             bool       `gorm:"default:true"` // Активным считается не более одного события
	RegistrationOpensAt  *time.Time // Окно регистрации (nil — без ограничения)
	RegistrationClosesAt *time.Time
}

// HackerProfile — постоянный профиль участника, переживает смену событий.
type HackerProfile struct {
	gorm.Model
	UserID      uint   `gorm:"uniqueIndex;not null"`
	User        User   `gorm:"foreignKey:UserID"`
	FirstName   string `gorm:"not null"`
	LastName    string `gorm:"not null"`
	PhoneNumber string `gorm:"not null"`
	LinkedinURL *string
}
