package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/acmhack/pickhacks-registration/internal/checkin"
	"github.com/acmhack/pickhacks-registration/internal/response"
	"github.com/acmhack/pickhacks-registration/internal/storage"
	"github.com/acmhack/pickhacks-registration/internal/ws"

	"github.com/gin-gonic/gin"
)

type CheckInRequest struct {
	RegistrationID    uint    `json:"registration_id" binding:"required"`
	StationID         uint    `json:"station_id" binding:"required"`
	OverrideDuplicate bool    `json:"override_duplicate"`
	Notes             *string `json:"notes"`
}

type PreviousCheckIn struct {
	ID          uint      `json:"id"`
	CheckedInAt time.Time `json:"checked_in_at"`
}

// CheckInResponse — исход попытки чекина. При is_duplicate=true запись не
// создана: оператор должен подтвердить повтор и повторить запрос с override.
type CheckInResponse struct {
	Success         bool             `json:"success"`
	IsDuplicate     bool             `json:"is_duplicate,omitempty"`
	CheckInID       uint             `json:"check_in_id,omitempty"`
	PreviousCheckIn *PreviousCheckIn `json:"previous_check_in,omitempty"`
}

// RecordCheckInHandler обрабатывает попытку чекина
// @Summary		Чекин участника на станции
// @Description	Записывает чекин с защитой от повторов. Повтор без override возвращает is_duplicate и время прошлого визита, ничего не записывая
// @Tags			checkin
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			checkin	body		CheckInRequest			true	"Параметры чекина"
// @Success		200		{object}	CheckInResponse			"Успех или дубликат"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR) или станция не активна (STATION_INACTIVE)"
// @Failure		404		{object}	response.ErrorResponse	"Станция (STATION_NOT_FOUND) или заявка (REGISTRATION_NOT_FOUND) не найдена"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/admin/checkin [post]
func RecordCheckInHandler(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	result, err := checkin.Attempt(storage.DB, req.RegistrationID, req.StationID, req.OverrideDuplicate, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, checkin.ErrStationNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Code:    "STATION_NOT_FOUND",
				Message: "Станция не найдена",
			})
		case errors.Is(err, checkin.ErrRegistrationNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Code:    "REGISTRATION_NOT_FOUND",
				Message: "Заявка не найдена",
			})
		case errors.Is(err, checkin.ErrStationInactive):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "STATION_INACTIVE",
				Message: "Станция не активна",
			})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "DB_ERROR",
				Message: "Ошибка записи чекина",
				Details: err.Error(),
			})
		}
		return
	}

	if result.Duplicate {
		resp := CheckInResponse{Success: false, IsDuplicate: true}
		if result.Previous != nil {
			resp.PreviousCheckIn = &PreviousCheckIn{
				ID:          result.Previous.ID,
				CheckedInAt: result.Previous.CheckedInAt,
			}
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
		EventType: "check_in_recorded",
		StationID: strconv.Itoa(int(req.StationID)),
		Data: map[string]interface{}{
			"check_in_id":     result.CheckInID,
			"registration_id": req.RegistrationID,
		},
	})

	c.JSON(http.StatusOK, CheckInResponse{Success: true, CheckInID: result.CheckInID})
}
