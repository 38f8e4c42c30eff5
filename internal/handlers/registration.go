package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/acmhack/pickhacks-registration/internal/models"
	"github.com/acmhack/pickhacks-registration/internal/response"
	"github.com/acmhack/pickhacks-registration/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Префикс QR-токена, чтобы сканер мог отличить наш код от постороннего.
const qrCodePrefix = "PICKHACKS-"

type ProfileRequest struct {
	FirstName   string  `json:"first_name" binding:"required"`
	LastName    string  `json:"last_name" binding:"required"`
	PhoneNumber string  `json:"phone_number" binding:"required,min=10"`
	LinkedinURL *string `json:"linkedin_url" binding:"omitempty,url"`
}

// UpsertProfileHandler обрабатывает создание и обновление профиля участника
// @Summary		Профиль участника
// @Description	Создаёт или обновляет постоянный профиль участника
// @Tags			registration
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse	"Профиль сохранён"
// @Failure		400	{object}	response.ErrorResponse		"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		500	{object}	response.ErrorResponse		"Ошибка сервера (DB_ERROR)"
// @Router			/api/profile [post]
func UpsertProfileHandler(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	userID := c.GetUint("userID")

	var profile models.HackerProfile
	err := storage.DB.Where("user_id = ?", userID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки профиля",
			Details: err.Error(),
		})
		return
	}

	profile.UserID = userID
	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	profile.PhoneNumber = req.PhoneNumber
	profile.LinkedinURL = req.LinkedinURL

	if err := storage.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка сохранения профиля",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Профиль сохранён"})
}

type CreateRegistrationRequest struct {
	AgeAtEvent int `json:"age_at_event" binding:"required,min=13,max=120"`
}

type RegistrationResponse struct {
	ID         uint   `json:"id"`
	EventName  string `json:"event_name"`
	QRCode     string `json:"qr_code"`
	IsComplete bool   `json:"is_complete"`
}

// profileOrAbort находит профиль текущего пользователя или завершает запрос.
func profileOrAbort(c *gin.Context) (*models.HackerProfile, bool) {
	userID := c.GetUint("userID")
	var profile models.HackerProfile
	if err := storage.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "PROFILE_REQUIRED",
			Message: "Сначала заполните профиль участника",
		})
		return nil, false
	}
	return &profile, true
}

// CreateRegistrationHandler обрабатывает регистрацию на активное событие
// @Summary		Регистрация на событие
// @Description	Регистрирует участника на активное событие и выдаёт QR-код. Повторная регистрация невозможна
// @Tags			registration
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			registration	body		CreateRegistrationRequest	true	"Данные заявки"
// @Success		201				{object}	RegistrationResponse		"Созданная заявка с QR-кодом"
// @Failure		400				{object}	response.ErrorResponse		"Ошибка валидации (VALIDATION_ERROR), нет профиля (PROFILE_REQUIRED), окно закрыто (REGISTRATION_CLOSED) или заявка уже есть (ALREADY_REGISTERED)"
// @Failure		404				{object}	response.ErrorResponse		"Нет активного события (NO_ACTIVE_EVENT)"
// @Failure		500				{object}	response.ErrorResponse		"Ошибка сервера (DB_ERROR)"
// @Router			/api/registration [post]
func CreateRegistrationHandler(c *gin.Context) {
	var req CreateRegistrationRequest
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

	now := time.Now()
	if (event.RegistrationOpensAt != nil && now.Before(*event.RegistrationOpensAt)) ||
		(event.RegistrationClosesAt != nil && now.After(*event.RegistrationClosesAt)) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "REGISTRATION_CLOSED",
			Message: "Окно регистрации закрыто",
		})
		return
	}

	profile, ok := profileOrAbort(c)
	if !ok {
		return
	}

	registration := models.Registration{
		EventID:         event.ID,
		HackerProfileID: profile.ID,
		AgeAtEvent:      req.AgeAtEvent,
		QRCode:          qrCodePrefix + uuid.NewString(),
	}

	if err := storage.DB.Create(&registration).Error; err != nil {
		// Композитный индекс (event_id, hacker_profile_id): одна заявка на событие.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "ALREADY_REGISTERED",
				Message: "Вы уже зарегистрированы на это событие",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка создания заявки",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, RegistrationResponse{
		ID:         registration.ID,
		EventName:  event.Name,
		QRCode:     registration.QRCode,
		IsComplete: registration.IsComplete,
	})
}

// GetRegistrationHandler обрабатывает запрос своей заявки
// @Summary		Своя заявка
// @Description	Возвращает заявку текущего участника на активное событие вместе с QR-кодом
// @Tags			registration
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	RegistrationResponse	"Заявка"
// @Failure		400	{object}	response.ErrorResponse	"Нет профиля (PROFILE_REQUIRED)"
// @Failure		404	{object}	response.ErrorResponse	"Нет активного события (NO_ACTIVE_EVENT) или заявки (REGISTRATION_NOT_FOUND)"
// @Router			/api/registration [get]
func GetRegistrationHandler(c *gin.Context) {
	event, ok := activeEventOrAbort(c)
	if !ok {
		return
	}

	profile, ok := profileOrAbort(c)
	if !ok {
		return
	}

	var registration models.Registration
	if err := storage.DB.
		Where("event_id = ? AND hacker_profile_id = ?", event.ID, profile.ID).
		First(&registration).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "REGISTRATION_NOT_FOUND",
			Message: "Заявка не найдена",
		})
		return
	}

	c.JSON(http.StatusOK, RegistrationResponse{
		ID:         registration.ID,
		EventName:  event.Name,
		QRCode:     registration.QRCode,
		IsComplete: registration.IsComplete,
	})
}

// registrationOrAbort — заявка текущего участника на активное событие.
func registrationOrAbort(c *gin.Context) (*models.Registration, bool) {
	event, ok := activeEventOrAbort(c)
	if !ok {
		return nil, false
	}
	profile, ok := profileOrAbort(c)
	if !ok {
		return nil, false
	}
	var registration models.Registration
	if err := storage.DB.
		Where("event_id = ? AND hacker_profile_id = ?", event.ID, profile.ID).
		First(&registration).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "REGISTRATION_NOT_FOUND",
			Message: "Заявка не найдена",
		})
		return nil, false
	}
	return &registration, true
}

type DietarySelection struct {
	DietaryRestrictionID uint    `json:"dietary_restriction_id" binding:"required"`
	AllergyDetails       *string `json:"allergy_details"`
}

type DietaryRequest struct {
	Selections []DietarySelection `json:"selections" binding:"required"`
}

// SetDietaryHandler обрабатывает выбор диетических ограничений
// @Summary		Диетические ограничения
// @Description	Полностью заменяет выбор диетических ограничений заявки
// @Tags			registration
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse	"Сохранено"
// @Failure		400	{object}	response.ErrorResponse		"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse		"Заявка не найдена (REGISTRATION_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse		"Ошибка сервера (DB_ERROR)"
// @Router			/api/registration/dietary [post]
func SetDietaryHandler(c *gin.Context) {
	var req DietaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	registration, ok := registrationOrAbort(c)
	if !ok {
		return
	}

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("registration_id = ?", registration.ID).
			Delete(&models.RegistrationDietary{}).Error; err != nil {
			return err
		}
		for _, sel := range req.Selections {
			entry := models.RegistrationDietary{
				RegistrationID:       registration.ID,
				DietaryRestrictionID: sel.DietaryRestrictionID,
				AllergyDetails:       sel.AllergyDetails,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка сохранения диетических ограничений",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Диетические ограничения сохранены"})
}

type ShippingRequest struct {
	AddressLine1 string  `json:"address_line_1" binding:"required"`
	AddressLine2 *string `json:"address_line_2"`
	City         string  `json:"city" binding:"required"`
	State        string  `json:"state" binding:"required"`
	Country      string  `json:"country" binding:"required"`
	PostalCode   string  `json:"postal_code" binding:"required"`
	TshirtSize   *string `json:"tshirt_size" binding:"omitempty,oneof=XS S M L XL 2XL 3XL"`
}

// SetShippingHandler обрабатывает сохранение адреса доставки
// @Summary		Адрес доставки
// @Description	Создаёт или обновляет адрес доставки мерча для заявки
// @Tags			registration
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse	"Сохранено"
// @Failure		400	{object}	response.ErrorResponse		"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse		"Заявка не найдена (REGISTRATION_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse		"Ошибка сервера (DB_ERROR)"
// @Router			/api/registration/shipping [post]
func SetShippingHandler(c *gin.Context) {
	var req ShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	registration, ok := registrationOrAbort(c)
	if !ok {
		return
	}

	var shipping models.ShippingInfo
	err := storage.DB.Where("registration_id = ?", registration.ID).First(&shipping).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки адреса доставки",
			Details: err.Error(),
		})
		return
	}

	shipping.RegistrationID = registration.ID
	shipping.AddressLine1 = req.AddressLine1
	shipping.AddressLine2 = req.AddressLine2
	shipping.City = req.City
	shipping.State = req.State
	shipping.Country = req.Country
	shipping.PostalCode = req.PostalCode
	shipping.TshirtSize = req.TshirtSize

	if err := storage.DB.Save(&shipping).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка сохранения адреса доставки",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Адрес доставки сохранён"})
}

type AgreementRequest struct {
	AgreedToCodeOfConduct bool `json:"agreed_to_code_of_conduct"`
	AgreedToMLHSharing    bool `json:"agreed_to_mlh_sharing"`
	AgreedToMLHEmails     bool `json:"agreed_to_mlh_emails"`
}

// SetAgreementHandler обрабатывает согласия MLH
// @Summary		Согласия MLH
// @Description	Фиксирует согласия MLH. Когда кодекс поведения и передача данных подтверждены, заявка помечается завершённой
// @Tags			registration
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse	"Сохранено"
// @Failure		400	{object}	response.ErrorResponse		"Обязательные согласия не даны (AGREEMENT_REQUIRED)"
// @Failure		404	{object}	response.ErrorResponse		"Заявка не найдена (REGISTRATION_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse		"Ошибка сервера (DB_ERROR)"
// @Router			/api/registration/agreement [post]
func SetAgreementHandler(c *gin.Context) {
	var req AgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	// Кодекс поведения и передача данных MLH обязательны, рассылка — нет.
	if !req.AgreedToCodeOfConduct || !req.AgreedToMLHSharing {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "AGREEMENT_REQUIRED",
			Message: "Обязательные согласия MLH не подтверждены",
		})
		return
	}

	registration, ok := registrationOrAbort(c)
	if !ok {
		return
	}

	var agreement models.MLHAgreement
	err := storage.DB.Where("registration_id = ?", registration.ID).First(&agreement).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки согласий",
			Details: err.Error(),
		})
		return
	}

	agreement.RegistrationID = registration.ID
	agreement.AgreedToCodeOfConduct = req.AgreedToCodeOfConduct
	agreement.AgreedToMLHSharing = req.AgreedToMLHSharing
	agreement.AgreedToMLHEmails = req.AgreedToMLHEmails
	agreement.AgreedAt = time.Now()

	if err := storage.DB.Save(&agreement).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка сохранения согласий",
			Details: err.Error(),
		})
		return
	}

	if !registration.IsComplete {
		if err := storage.DB.Model(registration).Update("is_complete", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "DB_ERROR",
				Message: "Ошибка обновления заявки",
				Details: err.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Согласия сохранены"})
}
