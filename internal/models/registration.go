package models

import (
	"time"

	"gorm.io/gorm"
)

// Registration — заявка участника на конкретное событие.
// Пара (event, hacker) уникальна: один участник — одна заявка на событие.
type Registration struct {
	gorm.Model
	EventID         uint          `gorm:"uniqueIndex:idx_event_hacker;not null"`
	Event           Event         `gorm:"foreignKey:EventID"`
	HackerProfileID uint          `gorm:"uniqueIndex:idx_event_hacker;not null"`
	HackerProfile   HackerProfile `gorm:"foreignKey:HackerProfileID"`
	AgeAtEvent      int           `gorm:"not null"`
	QRCode          string        `gorm:"uniqueIndex;not null"` // Токен для QR-кода, выдаётся при регистрации
	IsComplete      bool          `gorm:"default:false"`
}

// DietaryRestriction — справочник диетических ограничений (сидится при старте).
type DietaryRestriction struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null"`
}

// RegistrationDietary — связка заявки с ограничением, опционально с уточнением аллергии.
type RegistrationDietary struct {
	gorm.Model
	RegistrationID       uint               `gorm:"index;not null"`
	DietaryRestrictionID uint               `gorm:"not null"`
	DietaryRestriction   DietaryRestriction `gorm:"foreignKey:DietaryRestrictionID"`
	AllergyDetails       *string
}

// ShippingInfo — адрес доставки мерча, одна запись на заявку.
type ShippingInfo struct {
	gorm.Model
	RegistrationID uint   `gorm:"uniqueIndex;not null"`
	AddressLine1   string `gorm:"not null"`
	AddressLine2   *string
	City           string `gorm:"not null"`
	State          string `gorm:"not null"`
	Country        string `gorm:"not null"`
	PostalCode     string `gorm:"not null"`
	TshirtSize     *string
}

// MLHAgreement — обязательные галочки MLH, одна запись на заявку.
type MLHAgreement struct {
	gorm.Model
	RegistrationID        uint      `gorm:"uniqueIndex;not null"`
	AgreedToCodeOfConduct bool      `gorm:"not null"`
	AgreedToMLHSharing    bool      `gorm:"not null"`
	AgreedToMLHEmails     bool      `gorm:"not null"`
	AgreedAt              time.Time `gorm:"not null"`
}
