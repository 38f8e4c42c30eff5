package handlers

import (
	"fmt"
	"net/http"

	"github.com/acmhack/pickhacks-registration/internal/response"
	"github.com/acmhack/pickhacks-registration/internal/storage"

	"github.com/gin-gonic/gin"
)

type StationPreference struct {
	StationID uint `json:"station_id" binding:"required"`
}

// GetStationPreferenceHandler обрабатывает запрос последней выбранной станции
// @Summary		Последняя выбранная станция
// @Description	Возвращает станцию, выбранную оператором в прошлый раз. Подсказка для интерфейса, не источник правды
// @Tags			preferences
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	StationPreference		"Сохранённый выбор"
// @Failure		404	{object}	response.ErrorResponse	"Выбор не сохранён (NO_PREFERENCE)"
// @Router			/api/admin/preferences/station [get]
func GetStationPreferenceHandler(c *gin.Context) {
	userID := c.GetUint("userID")
	key := fmt.Sprintf("operator:%d:station", userID)

	var stationID uint
	if storage.RedisClient != nil {
		if err := storage.RedisClient.Get(ctx, key).Scan(&stationID); err == nil && stationID != 0 {
			c.JSON(http.StatusOK, StationPreference{StationID: stationID})
			return
		}
	}

	c.JSON(http.StatusNotFound, response.ErrorResponse{
		Code:    "NO_PREFERENCE",
		Message: "Станция ещё не выбиралась",
	})
}

// SetStationPreferenceHandler обрабатывает сохранение выбранной станции
// @Summary		Сохранение выбранной станции
// @Description	Запоминает станцию оператора между сессиями. Никак не влияет на права и данные
// @Tags			preferences
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			preference	body		StationPreference			true	"Выбранная станция"
// @Success		200			{object}	response.SuccessResponse	"Сохранено"
// @Failure		400			{object}	response.ErrorResponse		"Ошибка валидации (VALIDATION_ERROR)"
// @Router			/api/admin/preferences/station [put]
func SetStationPreferenceHandler(c *gin.Context) {
	var req StationPreference
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	userID := c.GetUint("userID")
	key := fmt.Sprintf("operator:%d:station", userID)

	if storage.RedisClient != nil {
		storage.RedisClient.Set(ctx, key, req.StationID, 0)
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Выбор станции сохранён"})
}
