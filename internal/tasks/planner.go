package tasks

import (
	"log"
	"time"

	"github.com/acmhack/pickhacks-registration/internal/models"
	"github.com/acmhack/pickhacks-registration/internal/storage"

	"github.com/robfig/cron/v3"
)

// DeactivateFinishedEvents снимает флаг активности с событий, которые
// закончились больше суток назад, и гасит их станции. Активным событие
// делает только администратор руками — задача лишь прибирает за прошедшими.
func DeactivateFinishedEvents() {
	threshold := time.Now().Add(-24 * time.Hour)

	var events []models.Event
	if err := storage.DB.
		Where("is_active = ? AND end_date < ?", true, threshold).
		Find(&events).Error; err != nil {
		log.Println("Ошибка поиска завершившихся событий:", err)
		return
	}

	if len(events) == 0 {
		return
	}

	for _, event := range events {
		if err := storage.DB.Model(&models.Event{}).
			Where("id = ?", event.ID).
			Update("is_active", false).Error; err != nil {
			log.Println("Ошибка деактивации события", event.Name, ":", err)
			continue
		}

		if err := storage.DB.Model(&models.Station{}).
			Where("event_id = ? AND is_active = ?", event.ID, true).
			Update("is_active", false).Error; err != nil {
			log.Println("Ошибка деактивации станций события", event.Name, ":", err)
		} else {
			log.Printf("Событие '%s' завершено, станции выключены.\n", event.Name)
		}
	}
}

// LogStationActivity пишет в лог суточную сводку чекинов — удобно проверять
// по утрам, что сканеры на площадке работали.
func LogStationActivity() {
	since := time.Now().Add(-24 * time.Hour)

	var count int64
	if err := storage.DB.Model(&models.CheckIn{}).
		Where("checked_in_at > ?", since).
		Count(&count).Error; err != nil {
		log.Println("Ошибка подсчёта чекинов за сутки:", err)
		return
	}

	log.Printf("Чекинов за последние сутки: %d\n", count)
}

// InitScheduler инициализирует планировщик cron-задач.
func InitScheduler() *cron.Cron {
	c := cron.New(cron.WithSeconds())

	// Уборка завершившихся событий каждый день в 03:00.
	_, err := c.AddFunc("0 0 3 * * *", DeactivateFinishedEvents)
	if err != nil {
		log.Println("Ошибка запуска cron-задачи DeactivateFinishedEvents:", err)
	}

	// Суточная сводка чекинов в 06:00.
	_, err = c.AddFunc("0 0 6 * * *", LogStationActivity)
	if err != nil {
		log.Println("Ошибка запуска cron-задачи LogStationActivity:", err)
	}

	c.Start()
	log.Println("Cron-планировщик запущен.")
	return c
}
