package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/acmhack/pickhacks-registration/internal/models"
	"github.com/acmhack/pickhacks-registration/internal/response"
	"github.com/acmhack/pickhacks-registration/internal/storage"

	"github.com/gin-gonic/gin"
)

var ctx = context.Background()

type DietaryOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// GetDietaryOptionsHandler обрабатывает запрос справочника диетических ограничений
// @Summary		Справочник диетических ограничений
// @Description	Возвращает справочник для формы регистрации, кэширует результат в Redis
// @Tags			options
// @Produce		json
// @Success		200	{array}		DietaryOption			"Справочник"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/options/dietary [get]
func GetDietaryOptionsHandler(c *gin.Context) {
	cacheKey := "dietary_options"
	redisClient := storage.RedisClient

	// Проверка кэша
	if redisClient != nil {
		cached, err := redisClient.Get(ctx, cacheKey).Result()
		if err == nil && cached != "" {
			var options []DietaryOption
			if err := json.Unmarshal([]byte(cached), &options); err == nil {
				c.JSON(http.StatusOK, options)
				return
			}
		}
	}

	var restrictions []models.DietaryRestriction
	if err := storage.DB.Order("name ASC").Find(&restrictions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки справочника",
			Details: err.Error(),
		})
		return
	}

	options := make([]DietaryOption, 0, len(restrictions))
	for _, r := range restrictions {
		options = append(options, DietaryOption{ID: r.ID, Name: r.Name})
	}

	// Справочник меняется редко, кэшируем надолго.
	if redisClient != nil {
		if payload, err := json.Marshal(options); err == nil {
			redisClient.Set(ctx, cacheKey, string(payload), time.Hour*6)
		}
	}

	c.JSON(http.StatusOK, options)
}
