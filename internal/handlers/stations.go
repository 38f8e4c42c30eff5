package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/acmhack/pickhacks-registration/internal/models"
	"github.com/acmhack/pickhacks-registration/internal/response"
	"github.com/acmhack/pickhacks-registration/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Стартовый набор станций для нового события.
var defaultStations = []models.Station{
	{Name: "Check-in", StationType: models.StationTypeCheckin, MaxVisitsPerHacker: intPtr(1)},
	{Name: "Breakfast", StationType: models.StationTypeFood, MaxVisitsPerHacker: intPtr(1)},
	{Name: "Lunch", StationType: models.StationTypeFood, MaxVisitsPerHacker: intPtr(1)},
	{Name: "Dinner", StationType: models.StationTypeFood, MaxVisitsPerHacker: intPtr(1)},
}

func intPtr(v int) *int { return &v }

type CreateStationRequest struct {
	Name               string `json:"name" binding:"required"`
	StationType        string `json:"station_type" binding:"required,oneof=checkin food workshop prize"`
	MaxVisitsPerHacker *int   `json:"max_visits_per_hacker" binding:"omitempty,min=1"`
}

type StationResponse struct {
	ID                 uint      `json:"id"`
	Name               string    `json:"name"`
	StationType        string    `json:"station_type"`
	MaxVisitsPerHacker *int      `json:"max_visits_per_hacker"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
}

func stationToResponse(s models.Station) StationResponse {
	return StationResponse{
		ID:                 s.ID,
		Name:               s.Name,
		StationType:        s.StationType,
		MaxVisitsPerHacker: s.MaxVisitsPerHacker,
		IsActive:           s.IsActive,
		CreatedAt:          s.CreatedAt,
	}
}

// activeEventOrAbort достаёт активное событие или завершает запрос ошибкой.
func activeEventOrAbort(c *gin.Context) (*models.Event, bool) {
	event, err := storage.ActiveEvent(storage.DB)
	if err != nil {
		if errors.Is(err, storage.ErrNoActiveEvent) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Code:    "NO_ACTIVE_EVENT",
				Message: "Нет активного события",
			})
		} else {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "DB_ERROR",
				Message: "Ошибка поиска активного события",
				Details: err.Error(),
			})
		}
		return nil, false
	}
	return event, true
}

// ListStationsHandler обрабатывает запрос списка станций активного события
// @Summary		Список станций
// @Description	Станции активного события, сначала недавно созданные
// @Tags			stations
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		StationResponse			"Список станций"
// @Failure		404	{object}	response.ErrorResponse	"Нет активного события (NO_ACTIVE_EVENT)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/admin/stations [get]
func ListStationsHandler(c *gin.Context) {
	event, ok := activeEventOrAbort(c)
	if !ok {
		return
	}

	var stations []models.Station
	if err := storage.DB.
		Where("event_id = ?", event.ID).
		Order("created_at DESC").
		Find(&stations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки станций",
			Details: err.Error(),
		})
		return
	}

	result := make([]StationResponse, 0, len(stations))
	for _, s := range stations {
		result = append(result, stationToResponse(s))
	}

	c.JSON(http.StatusOK, result)
}

// CreateStationHandler обрабатывает создание станции
// @Summary		Создание станции
// @Description	Создаёт станцию для активного события. Новая станция сразу активна
// @Tags			stations
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			station	body		CreateStationRequest	true	"Параметры станции"
// @Success		201		{object}	StationResponse			"Созданная станция"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR) или имя занято (DUPLICATE_NAME)"
// @Failure		404		{object}	response.ErrorResponse	"Нет активного события (NO_ACTIVE_EVENT)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/admin/stations [post]
func CreateStationHandler(c *gin.Context) {
	var req CreateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	event, ok := activeEventOrAbort(c)
	if !ok {
		return
	}

	var existing models.Station
	if err := storage.DB.Where("event_id = ? AND name = ?", event.ID, req.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "DUPLICATE_NAME",
			Message: "Станция с таким именем уже есть на событии",
		})
		return
	}

	station := models.Station{
		EventID:            event.ID,
		Name:               req.Name,
		StationType:        req.StationType,
		MaxVisitsPerHacker: req.MaxVisitsPerHacker,
		IsActive:           true,
	}

	if err := storage.DB.Create(&station).Error; err != nil {
		// Уникальный индекс (event_id, name) — последний рубеж при гонке двух создании.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "DUPLICATE_NAME",
				Message: "Станция с таким именем уже есть на событии",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка создания станции",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, stationToResponse(station))
}

// ToggleStationHandler обрабатывает переключение активности станции
// @Summary		Переключение активности станции
// @Description	Инвертирует флаг is_active. Два вызова подряд возвращают исходное состояние
// @Tags			stations
// @Produce		json
// @Security		BearerAuth
// @Param			id	path		string					true	"ID станции"
// @Success		200	{object}	StationResponse			"Станция после переключения"
// @Failure		400	{object}	response.ErrorResponse	"Неверный идентификатор (INVALID_STATION_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Станция не найдена (STATION_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/admin/stations/{id}/toggle [post]
func ToggleStationHandler(c *gin.Context) {
	stationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_STATION_ID",
			Message: "Неверный идентификатор станции",
		})
		return
	}

	var station models.Station
	if err := storage.DB.First(&station, stationID).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "STATION_NOT_FOUND",
			Message: "Станция не найдена",
		})
		return
	}

	station.IsActive = !station.IsActive
	if err := storage.DB.Save(&station).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка переключения станции",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, stationToResponse(station))
}

// DeleteStationHandler обрабатывает удаление станции
// @Summary		Удаление станции
// @Description	Удаляет станцию без истории. Станция хотя бы с одним чекином не удаляется
// @Tags			stations
// @Produce		json
// @Security		BearerAuth
// @Param			id	path		string						true	"ID станции"
// @Success		200	{object}	response.SuccessResponse	"Станция удалена"
// @Failure		400	{object}	response.ErrorResponse		"Неверный идентификатор (INVALID_STATION_ID) или есть чекины (HAS_CHECKINS)"
// @Failure		404	{object}	response.ErrorResponse		"Станция не найдена (STATION_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse		"Ошибка сервера (DB_ERROR)"
// @Router			/api/admin/stations/{id} [delete]
func DeleteStationHandler(c *gin.Context) {
	stationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_STATION_ID",
			Message: "Неверный идентификатор станции",
		})
		return
	}

	var station models.Station
	if err := storage.DB.First(&station, stationID).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "STATION_NOT_FOUND",
			Message: "Станция не найдена",
		})
		return
	}

	// Проверка и удаление в одной транзакции: чекин, вставленный между ними,
	// не должен остаться ссылкой на удалённую станцию.
	err = storage.DB.Transaction(func(tx *gorm.DB) error {
		// Проверка существования, а не подсчёт: достаточно одного чекина.
		var existingCheckIn models.CheckIn
		if err := tx.Where("station_id = ?", station.ID).First(&existingCheckIn).Error; err == nil {
			return errHasCheckIns
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Unscoped().Delete(&station).Error
	})
	if err != nil {
		if errors.Is(err, errHasCheckIns) {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "HAS_CHECKINS",
				Message: "Нельзя удалить станцию с историей чекинов",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка удаления станции",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Станция удалена"})
}

// SeedStationsHandler обрабатывает создание стартового набора станций
// @Summary		Создание стартовых станций
// @Description	Создаёт стандартный набор станций одним батчем. Отказывается, если станции уже есть
// @Tags			stations
// @Produce		json
// @Security		BearerAuth
// @Success		201	{object}	map[string]interface{}	"Количество созданных станций"
// @Failure		400	{object}	response.ErrorResponse	"Станции уже созданы (ALREADY_SEEDED)"
// @Failure		404	{object}	response.ErrorResponse	"Нет активного события (NO_ACTIVE_EVENT)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/admin/stations/seed [post]
func SeedStationsHandler(c *gin.Context) {
	event, ok := activeEventOrAbort(c)
	if !ok {
		return
	}

	// Батч целиком или ничего: проверка и вставка в одной транзакции.
	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Station
		if err := tx.Where("event_id = ?", event.ID).First(&existing).Error; err == nil {
			return errAlreadySeeded
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		stations := make([]models.Station, 0, len(defaultStations))
		for _, s := range defaultStations {
			s.EventID = event.ID
			s.IsActive = true
			stations = append(stations, s)
		}
		return tx.Create(&stations).Error
	})
	if err != nil {
		if errors.Is(err, errAlreadySeeded) {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "ALREADY_SEEDED",
				Message: "Станции для события уже созданы",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка создания стартовых станций",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Стартовые станции созданы", "stations_created": len(defaultStations)})
}

var (
	errAlreadySeeded = errors.New("станции уже созданы")
	errHasCheckIns   = errors.New("у станции есть чекины")
)

// StationStats — агрегаты по станции: всего чекинов и уникальных участников.
type StationStats struct {
	StationID          uint   `json:"station_id"`
	StationName        string `json:"station_name"`
	StationType        string `json:"station_type"`
	IsActive           bool   `json:"is_active"`
	MaxVisitsPerHacker *int   `json:"max_visits_per_hacker"`
	TotalCheckIns      int64  `json:"total_check_ins"`
	UniqueHackers      int64  `json:"unique_hackers"`
}

// StationStatsHandler обрабатывает запрос статистики по станциям
// @Summary		Статистика станций
// @Description	Для каждой станции активного события: всего чекинов и уникальных участников. Считается заново на каждый запрос
// @Tags			stations
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		StationStats			"Статистика"
// @Failure		404	{object}	response.ErrorResponse	"Нет активного события (NO_ACTIVE_EVENT)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/admin/stations/stats [get]
func StationStatsHandler(c *gin.Context) {
	event, ok := activeEventOrAbort(c)
	if !ok {
		return
	}

	var stats []StationStats
	if err := storage.DB.Model(&models.Station{}).
		Select("stations.id AS station_id, stations.name AS station_name, stations.station_type, stations.is_active, stations.max_visits_per_hacker, COUNT(check_ins.id) AS total_check_ins, COUNT(DISTINCT check_ins.registration_id) AS unique_hackers").
		Joins("LEFT JOIN check_ins ON check_ins.station_id = stations.id AND check_ins.deleted_at IS NULL").
		Where("stations.event_id = ?", event.ID).
		Group("stations.id").
		Order("stations.created_at DESC").
		Scan(&stats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка расчёта статистики",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}
