package test

import (
	"fmt"
	"log"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/acmhack/pickhacks-registration/internal/auth"
	"github.com/acmhack/pickhacks-registration/internal/handlers"
	"github.com/acmhack/pickhacks-registration/internal/models"
	"github.com/acmhack/pickhacks-registration/internal/storage"
	"github.com/acmhack/pickhacks-registration/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

// AuthMiddlewareTest подставляет userID из заголовка X-Test-UserID вместо разбора JWT.
func AuthMiddlewareTest() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr := c.Request.Header.Get("X-Test-UserID")
		if userIDStr == "" {
			// Значение по умолчанию
			c.Set("userID", uint(1))
		} else {
			id, err := strconv.Atoi(userIDStr)
			if err != nil {
				c.Set("userID", uint(1))
			} else {
				c.Set("userID", uint(id))
			}
		}
		c.Next()
	}
}

func setupTestServer() *httptest.Server {
	key := os.Getenv("ENV_CHEK")
	if key == "" {
		fmt.Println("Подключение к .env")
		err := godotenv.Load("../.env")
		if err != nil {
			log.Fatal("Ошибка получения .env")
		}
	}

	storage.ConnectTestingDatabase()
	storage.DB.Exec("TRUNCATE TABLE users, events, hacker_profiles, registrations, dietary_restrictions, registration_dietaries, shipping_infos, mlh_agreements, stations, check_ins RESTART IDENTITY CASCADE;")

	if err := storage.DB.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.HackerProfile{},
		&models.Registration{},
		&models.DietaryRestriction{},
		&models.RegistrationDietary{},
		&models.ShippingInfo{},
		&models.MLHAgreement{},
		&models.Station{},
		&models.CheckIn{},
	); err != nil {
		log.Fatal("Ошибка при миграции... ", err.Error())
	}

	go ws.HubInstance.Run()

	gin.SetMode(gin.TestMode)
	r := gin.Default()

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", handlers.Login)
		authGroup.POST("/register", handlers.Register)
		authGroup.POST("/refresh", handlers.RefreshToken)
	}

	r.GET("/api/options/dietary", handlers.GetDietaryOptionsHandler)

	apiGroup := r.Group("/api", AuthMiddlewareTest())
	{
		apiGroup.POST("/profile", handlers.UpsertProfileHandler)
		apiGroup.POST("/registration", handlers.CreateRegistrationHandler)
		apiGroup.GET("/registration", handlers.GetRegistrationHandler)
		apiGroup.POST("/registration/dietary", handlers.SetDietaryHandler)
		apiGroup.POST("/registration/shipping", handlers.SetShippingHandler)
		apiGroup.POST("/registration/agreement", handlers.SetAgreementHandler)
	}

	// Гейт организатора настоящий: is_admin перечитывается из базы.
	adminGroup := r.Group("/api/admin", AuthMiddlewareTest(), auth.AdminMiddleware())
	{
		adminGroup.GET("/stations", handlers.ListStationsHandler)
		adminGroup.POST("/stations", handlers.CreateStationHandler)
		adminGroup.POST("/stations/seed", handlers.SeedStationsHandler)
		adminGroup.GET("/stations/stats", handlers.StationStatsHandler)
		adminGroup.POST("/stations/:id/toggle", handlers.ToggleStationHandler)
		adminGroup.DELETE("/stations/:id", handlers.DeleteStationHandler)
		adminGroup.GET("/stations/:id/ws", ws.StationWebSocketHandler)
		adminGroup.GET("/lookup", handlers.LookupRegistrationHandler)
		adminGroup.POST("/checkin", handlers.RecordCheckInHandler)
	}

	return httptest.NewServer(r)
}

// createTestEvent создаёт активное событие с открытым окном регистрации.
func createTestEvent(t *testing.T) models.Event {
	now := time.Now()
	opens := now.Add(-time.Hour)
	closes := now.Add(24 * time.Hour)
	event := models.Event{
		Name:                 fmt.Sprintf("PickHacks Test %d", now.UnixNano()),
		Year:                 2000 + int(now.UnixNano()%1000000),
		StartDate:            now.Add(24 * time.Hour),
		EndDate:              now.Add(48 * time.Hour),
		IsActive:             true,
		RegistrationOpensAt:  &opens,
		RegistrationClosesAt: &closes,
	}
	err := storage.DB.Create(&event).Error
	assert.NoError(t, err, "Ошибка создания тестового события")
	return event
}

// createAdminUser создаёт пользователя-организатора.
func createAdminUser(t *testing.T) models.User {
	admin := models.User{
		Name:         "Анна",
		Surname:      "Организатор",
		Email:        fmt.Sprintf("admin_%d@example.com", time.Now().UnixNano()),
		PasswordHash: "hashed",
		IsAdmin:      true,
	}
	err := storage.DB.Create(&admin).Error
	assert.NoError(t, err, "Ошибка создания организатора")
	return admin
}

// createHackerRegistration создаёт участника с профилем и заявкой на событие.
func createHackerRegistration(t *testing.T, event models.Event) models.Registration {
	nano := time.Now().UnixNano()
	user := models.User{
		Name:         "Иван",
		Surname:      "Иванов",
		Email:        fmt.Sprintf("hacker_%d@example.com", nano),
		PasswordHash: "hashed",
	}
	err := storage.DB.Create(&user).Error
	assert.NoError(t, err, "Ошибка создания участника")

	profile := models.HackerProfile{
		UserID:      user.ID,
		FirstName:   "Иван",
		LastName:    "Иванов",
		PhoneNumber: "+79990000000",
	}
	err = storage.DB.Create(&profile).Error
	assert.NoError(t, err, "Ошибка создания профиля")

	registration := models.Registration{
		EventID:         event.ID,
		HackerProfileID: profile.ID,
		AgeAtEvent:      20,
		QRCode:          fmt.Sprintf("PICKHACKS-test-%d", nano),
	}
	err = storage.DB.Create(&registration).Error
	assert.NoError(t, err, "Ошибка создания заявки")
	return registration
}

func intPtr(v int) *int { return &v }

// createStation создаёт станцию на событии с заданным лимитом посещений.
func createStation(t *testing.T, event models.Event, name string, maxVisits *int) models.Station {
	station := models.Station{
		EventID:            event.ID,
		Name:               name,
		StationType:        models.StationTypeFood,
		MaxVisitsPerHacker: maxVisits,
		IsActive:           true,
	}
	err := storage.DB.Create(&station).Error
	assert.NoError(t, err, "Ошибка создания станции")
	return station
}
