package storage

import (
	"errors"

	"github.com/acmhack/pickhacks-registration/internal/models"
	"gorm.io/gorm"
)

// ErrNoActiveEvent возвращается, когда ни одно событие не помечено активным.
var ErrNoActiveEvent = errors.New("нет активного события")

// ActiveEvent находит текущее активное событие. Вызывается один раз на запрос,
// дальше событие передаётся в запросы явно — никакого глобального состояния.
func ActiveEvent(db *gorm.DB) (*models.Event, error) {
	var event models.Event
	if err := db.Where("is_active = ?", true).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveEvent
		}
		return nil, err
	}
	return &event, nil
}

// Справочник диетических ограничений, создаётся при старте, если пуст.
var defaultDietaryRestrictions = []string{
	"Vegetarian",
	"Vegan",
	"Halal",
	"Kosher",
	"Gluten-Free",
	"Dairy-Free",
	"Nut Allergy",
	"Other Allergy",
}

func SeedDietaryRestrictions(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.DietaryRestriction{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	restrictions := make([]models.DietaryRestriction, 0, len(defaultDietaryRestrictions))
	for _, name := range defaultDietaryRestrictions {
		restrictions = append(restrictions, models.DietaryRestriction{Name: name})
	}
	return db.Create(&restrictions).Error
}
