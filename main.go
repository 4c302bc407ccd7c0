package main

import (
	"fmt"
	"log"
	"os"

	_ "hair_queue/docs"
	"hair_queue/internal/auth"
	"hair_queue/internal/handlers"
	"hair_queue/internal/models"
	"hair_queue/internal/storage"
	"hair_queue/internal/tasks"
	"hair_queue/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @Title						Живая очередь барбершопов
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

	if err := storage.DB.AutoMigrate(&models.User{}, &models.Shop{}, &models.ShopService{}, &models.QueueEntry{}); err != nil {
		log.Fatal("Ошибка при миграции... ", err.Error())
	}

	storage.InitRedis()

	tasks.InitScheduler()

	go ws.HubInstance.Run()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	shops := r.Group("/shops")
	{
		shops.GET("", handlers.GetShopsHandler)
		shops.GET("/my", auth.AuthMiddleware(), handlers.GetMyShopsHandler)
		shops.GET("/:shopId", handlers.GetShopHandler)
		shops.POST("", auth.AuthMiddleware(), handlers.CreateShopHandler)
		shops.PUT("/:shopId", auth.AuthMiddleware(), handlers.UpdateShopHandler)
		shops.PATCH("/:shopId/toggle", auth.AuthMiddleware(), handlers.ToggleShopStatusHandler)
		shops.POST("/:shopId/services", auth.AuthMiddleware(), handlers.AddShopServiceHandler)
		shops.PUT("/:shopId/services/:serviceId", auth.AuthMiddleware(), handlers.UpdateShopServiceHandler)
		shops.DELETE("/:shopId/services/:serviceId", auth.AuthMiddleware(), handlers.DeleteShopServiceHandler)
	}

	queue := r.Group("/queue")
	{
		// Очередь магазина видна всем, живые обновления — тоже.
		queue.GET("/shop/:shopId", handlers.GetShopQueueHandler)
		queue.GET("/shop/:shopId/ws", ws.ShopQueueWebSocketHandler)

		// Общее имя параметра: gin не разрешает разные имена wildcard на одной позиции.
		queue.POST("/:id/join", auth.AuthMiddleware(), handlers.JoinQueueHandler)
		queue.DELETE("/:id/leave", auth.AuthMiddleware(), handlers.LeaveQueueHandler)
		queue.POST("/:id/next", auth.AuthMiddleware(), handlers.NextCustomerHandler)
	}

	profile := r.Group("/profile", auth.AuthMiddleware())
	{
		profile.GET("/queue", handlers.GetUserQueuesHandler)
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Ошибка запуска сервера...", err.Error())
	}
}
