package checkin

import (
	"errors"
	"time"

	"github.com/acmhack/pickhacks-registration/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrStationNotFound      = errors.New("станция не найдена")
	ErrStationInactive      = errors.New("станция не активна")
	ErrRegistrationNotFound = errors.New("регистрация не найдена")
)

// Result — исход попытки чекина.
// Либо создана новая запись (CheckInID), либо сработала защита от повтора
// (Duplicate + последний предыдущий чекин). Ошибки станции идут отдельно.
type Result struct {
	Duplicate bool
	CheckInID uint
	Previous  *models.CheckIn
}

// Attempt применяет правила чекина для пары (регистрация, станция):
//
//  1. Станция должна существовать и быть активной — проверяется всегда,
//     даже при override.
//  2. Любой уже существующий чекин этой пары без override даёт Duplicate
//     с таймстампом последнего визита. Ничего не пишем.
//  3. Если у станции задан числовой лимит посещений и он исчерпан,
//     без override тоже Duplicate. Лимит срабатывает только через
//     повторные override — первый же повтор ловится пунктом 2,
//     это сознательное поведение, а не ошибка.
//  4. Иначе создаётся новая запись CheckIn с текущим временем и заметкой
//     оператора (при override — причина обхода).
//
// Вся проверка и вставка выполняются в одной транзакции с блокировкой
// строки регистрации (SELECT ... FOR UPDATE): два устройства, одновременно
// сканирующие один бейдж, сериализуются и не создадут двойную запись.
func Attempt(db *gorm.DB, registrationID, stationID uint, override bool, notes *string) (*Result, error) {
	result := &Result{}

	err := db.Transaction(func(tx *gorm.DB) error {
		var station models.Station
		if err := tx.First(&station, stationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStationNotFound
			}
			return err
		}
		if !station.IsActive {
			return ErrStationInactive
		}

		var registration models.Registration
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&registration, registrationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}
			return err
		}

		var previous models.CheckIn
		hasPrevious := true
		if err := tx.Where("registration_id = ? AND station_id = ?", registrationID, stationID).
			Order("checked_in_at DESC").
			First(&previous).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			hasPrevious = false
		}

		if hasPrevious && !override {
			result.Duplicate = true
			result.Previous = &previous
			return nil
		}

		if station.MaxVisitsPerHacker != nil && !override {
			var count int64
			if err := tx.Model(&models.CheckIn{}).
				Where("registration_id = ? AND station_id = ?", registrationID, stationID).
				Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(*station.MaxVisitsPerHacker) {
				result.Duplicate = true
				if hasPrevious {
					result.Previous = &previous
				}
				return nil
			}
		}

		entry := models.CheckIn{
			RegistrationID: registrationID,
			StationID:      stationID,
			CheckedInAt:    time.Now(),
			Notes:          notes,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		result.CheckInID = entry.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
