package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/acmhack/pickhacks-registration/internal/models"
	"github.com/acmhack/pickhacks-registration/internal/response"
	"github.com/acmhack/pickhacks-registration/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LookupProfile struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

type LookupDietary struct {
	Name           string  `json:"name"`
	AllergyDetails *string `json:"allergy_details"`
}

type LookupCheckIn struct {
	ID          uint      `json:"id"`
	StationID   uint      `json:"station_id"`
	StationName string    `json:"station_name"`
	StationType string    `json:"station_type"`
	CheckedInAt time.Time `json:"checked_in_at"`
}

// LookupResponse — снимок заявки для оператора: профиль, диета, история чекинов.
type LookupResponse struct {
	RegistrationID      uint            `json:"registration_id"`
	QRCode              string          `json:"qr_code"`
	IsComplete          bool            `json:"is_complete"`
	Profile             LookupProfile   `json:"profile"`
	DietaryRestrictions []LookupDietary `json:"dietary_restrictions"`
	CheckIns            []LookupCheckIn `json:"check_ins"`
}

// LookupRegistrationHandler обрабатывает поиск заявки по QR-коду
// @Summary		Поиск заявки по QR-коду
// @Description	Находит заявку активного события по отсканированному коду и возвращает профиль, диету и историю чекинов
// @Tags			checkin
// @Produce		json
// @Security		BearerAuth
// @Param			qr	query		string					true	"QR-код"
// @Success		200	{object}	LookupResponse			"Снимок заявки"
// @Failure		400	{object}	response.ErrorResponse	"Не передан код (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse	"Нет активного события (NO_ACTIVE_EVENT) или заявка не найдена (REGISTRATION_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/admin/lookup [get]
func LookupRegistrationHandler(c *gin.Context) {
	qrCode := c.Query("qr")
	if qrCode == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Не передан QR-код",
		})
		return
	}

	event, ok := activeEventOrAbort(c)
	if !ok {
		return
	}

	// Код сравнивается только на точное совпадение, никакого разбора формата.
	// Все три чтения идут в одной транзакции: параллельный чекин не должен
	// попасть в снимок наполовину.
	var registration models.Registration
	var dietary []models.RegistrationDietary
	var checkIns []models.CheckIn
	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Preload("HackerProfile").
			Where("qr_code = ? AND event_id = ?", qrCode, event.ID).
			First(&registration).Error; err != nil {
			return err
		}
		if err := tx.
			Preload("DietaryRestriction").
			Where("registration_id = ?", registration.ID).
			Find(&dietary).Error; err != nil {
			return err
		}
		return tx.
			Preload("Station").
			Where("registration_id = ?", registration.ID).
			Order("checked_in_at DESC").
			Find(&checkIns).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Code:    "REGISTRATION_NOT_FOUND",
				Message: "Заявка с таким кодом не найдена",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка сборки снимка заявки",
			Details: err.Error(),
		})
		return
	}

	result := LookupResponse{
		RegistrationID: registration.ID,
		QRCode:         registration.QRCode,
		IsComplete:     registration.IsComplete,
		Profile: LookupProfile{
			FirstName:   registration.HackerProfile.FirstName,
			LastName:    registration.HackerProfile.LastName,
			PhoneNumber: registration.HackerProfile.PhoneNumber,
		},
		DietaryRestrictions: make([]LookupDietary, 0, len(dietary)),
		CheckIns:            make([]LookupCheckIn, 0, len(checkIns)),
	}

	for _, d := range dietary {
		result.DietaryRestrictions = append(result.DietaryRestrictions, LookupDietary{
			Name:           d.DietaryRestriction.Name,
			AllergyDetails: d.AllergyDetails,
		})
	}

	for _, ci := range checkIns {
		result.CheckIns = append(result.CheckIns, LookupCheckIn{
			ID:          ci.ID,
			StationID:   ci.StationID,
			StationName: ci.Station.Name,
			StationType: ci.Station.StationType,
			CheckedInAt: ci.CheckedInAt,
		})
	}

	c.JSON(http.StatusOK, result)
}
