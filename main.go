package main

import (
	"fmt"
	"log"
	"os"

	_ "github.com/acmhack/pickhacks-registration/docs"
	"github.com/acmhack/pickhacks-registration/internal/auth"
	"github.com/acmhack/pickhacks-registration/internal/handlers"
	"github.com/acmhack/pickhacks-registration/internal/models"
	"github.com/acmhack/pickhacks-registration/internal/storage"
	"github.com/acmhack/pickhacks-registration/internal/tasks"
	"github.com/acmhack/pickhacks-registration/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @Title						Регистрация и чекин участников хакатона
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	key := os.Getenv("ENV_CHEK")
	if key == "" {
		fmt.Println("Подключение к .env")
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Ошибка получения .env")
		}
	}

	storage.ConnectDatabase()

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

	if err := storage.SeedDietaryRestrictions(storage.DB); err != nil {
		log.Fatal("Ошибка заполнения справочников... ", err.Error())
	}

	storage.InitRedis()

	tasks.InitScheduler()

	go ws.HubInstance.Run()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", handlers.Login)
		authGroup.POST("/register", handlers.Register)
		authGroup.POST("/refresh", handlers.RefreshToken)
	}

	r.GET("/api/options/dietary", handlers.GetDietaryOptionsHandler)

	apiGroup := r.Group("/api", auth.AuthMiddleware())
	{
		apiGroup.POST("/profile", handlers.UpsertProfileHandler)
		apiGroup.POST("/registration", handlers.CreateRegistrationHandler)
		apiGroup.GET("/registration", handlers.GetRegistrationHandler)
		apiGroup.POST("/registration/dietary", handlers.SetDietaryHandler)
		apiGroup.POST("/registration/shipping", handlers.SetShippingHandler)
		apiGroup.POST("/registration/agreement", handlers.SetAgreementHandler)
	}

	adminGroup := r.Group("/api/admin", auth.AuthMiddleware(), auth.AdminMiddleware())
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
		adminGroup.GET("/preferences/station", handlers.GetStationPreferenceHandler)
		adminGroup.PUT("/preferences/station", handlers.SetStationPreferenceHandler)
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Ошибка запуска сервера...", err.Error())
	}
}
