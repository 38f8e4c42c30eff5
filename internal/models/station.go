package models

import (
	"time"

	"gorm.io/gorm"
)

// Типы станций. Используются только для отображения и группировки.
const (
	StationTypeCheckin  = "checkin"
	StationTypeFood     = "food"
	StationTypeWorkshop = "workshop"
	StationTypePrize    = "prize"
)

// Station — точка чекина на событии (стойка регистрации, раздача еды, воркшоп, призы).
type Station struct {
	gorm.Model
	EventID            uint   `gorm:"uniqueIndex:idx_event_station_name;not null"`
	Event              Event  `gorm:"foreignKey:EventID"`
	Name               string `gorm:"uniqueIndex:idx_event_station_name;not null"` // Имя уникально в рамках события
	StationType        string `gorm:"not null"`
	MaxVisitsPerHacker *int   // nil — без ограничения посещений
	IsActive           bool   `gorm:"default:true"`
}

// CheckIn — факт сканирования QR-кода на станции. Только добавляется,
// никогда не изменяется и не удаляется в штатной работе.
type CheckIn struct {
	gorm.Model
	RegistrationID uint         `gorm:"index;not null"`
	Registration   Registration `gorm:"foreignKey:RegistrationID"`
	StationID      uint         `gorm:"index;not null"`
	Station        Station      `gorm:"foreignKey:StationID"`
	CheckedInAt    time.Time    `gorm:"index;not null"`
	Notes          *string // Причина override и прочие пометки оператора
}
