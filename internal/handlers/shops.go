package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"hair_queue/internal/models"
	"hair_queue/internal/response"
	"hair_queue/internal/storage"

	"github.com/gin-gonic/gin"
)

var ctx = context.Background()

const shopsCacheKey = "shops_all"

type ShopServiceInput struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
	Description string  `json:"description"`
}

type CreateShopRequest struct {
	Name            string             `json:"name" binding:"required"`
	Phone           string             `json:"phone"`
	Address         string             `json:"address"`
	Description     string             `json:"description"`
	AverageWaitTime int                `json:"average_wait_time"`
	OpensAt         string             `json:"opens_at"`
	ClosesAt        string             `json:"closes_at"`
	Services        []ShopServiceInput `json:"services"`
}

type UpdateShopRequest struct {
	Name            *string `json:"name"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	Description     *string `json:"description"`
	AverageWaitTime *int    `json:"average_wait_time"`
	OpensAt         *string `json:"opens_at"`
	ClosesAt        *string `json:"closes_at"`
}

// ShopResponse — барбершоп в ответах API.
type ShopResponse struct {
	ID              uint                  `json:"id"`
	Name            string                `json:"name"`
	OwnerID         uint                  `json:"owner_id"`
	Phone           string                `json:"phone"`
	Address         string                `json:"address"`
	Description     string                `json:"description"`
	IsActive        bool                  `json:"is_active"`
	AverageWaitTime int                   `json:"average_wait_time"`
	OpensAt         string                `json:"opens_at"`
	ClosesAt        string                `json:"closes_at"`
	Services        []ShopServiceResponse `json:"services"`
}

type ShopServiceResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
	Description string  `json:"description"`
}

func shopResponse(shop models.Shop) ShopResponse {
	services := make([]ShopServiceResponse, 0, len(shop.Services))
	for _, s := range shop.Services {
		services = append(services, ShopServiceResponse{
			ID:          s.ID,
			Name:        s.Name,
			Price:       s.Price,
			Duration:    s.Duration,
			Description: s.Description,
		})
	}
	return ShopResponse{
		ID:              shop.ID,
		Name:            shop.Name,
		OwnerID:         shop.OwnerID,
		Phone:           shop.Phone,
		Address:         shop.Address,
		Description:     shop.Description,
		IsActive:        shop.IsActive,
		AverageWaitTime: shop.AverageWaitTime,
		OpensAt:         shop.OpensAt,
		ClosesAt:        shop.ClosesAt,
		Services:        services,
	}
}

// Каталог магазинов кэшируется целиком, любая запись по магазинам сбрасывает кэш.
func invalidateShopsCache() {
	if storage.RedisClient != nil {
		storage.RedisClient.Del(ctx, shopsCacheKey)
	}
}

// loadOwnedShop загружает магазин и проверяет, что им владеет userID.
// Пишет ответ об ошибке сам; второй результат — признак успеха.
func loadOwnedShop(c *gin.Context, shopID int, userID uint) (models.Shop, bool) {
	var shop models.Shop
	if err := storage.DB.First(&shop, shopID).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "SHOP_NOT_FOUND",
			Message: "Барбершоп не найден",
		})
		return shop, false
	}
	if shop.OwnerID != userID {
		c.JSON(http.StatusForbidden, response.ErrorResponse{
			Code:    "NOT_SHOP_OWNER",
			Message: "Управлять барбершопом может только его владелец",
		})
		return shop, false
	}
	return shop, true
}

// CreateShopHandler обрабатывает создание барбершопа
// @Summary		Создание барбершопа
// @Description	Создаёт барбершоп с услугами, владельцем становится текущий пользователь
// @Tags			shops
// @Accept			json
// @Produce		json
// @Param			shop	body		CreateShopRequest	true	"Данные барбершопа"
// @Security		BearerAuth
// @Success		201	{object}	ShopResponse	"Созданный барбершоп"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		403	{object}	response.ErrorResponse	"Роль не позволяет (NOT_A_BARBER)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/shops [post]
func CreateShopHandler(c *gin.Context) {
	var req CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	userID := c.GetUint("userID")
	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil || user.Role != "barber" {
		c.JSON(http.StatusForbidden, response.ErrorResponse{
			Code:    "NOT_A_BARBER",
			Message: "Создавать барбершопы могут только пользователи с ролью barber",
		})
		return
	}

	shop := models.Shop{
		Name:        req.Name,
		OwnerID:     userID,
		Phone:       req.Phone,
		Address:     req.Address,
		Description: req.Description,
		IsActive:    true,
	}
	if req.AverageWaitTime > 0 {
		shop.AverageWaitTime = req.AverageWaitTime
	} else {
		shop.AverageWaitTime = 15
	}
	if req.OpensAt != "" {
		shop.OpensAt = req.OpensAt
	}
	if req.ClosesAt != "" {
		shop.ClosesAt = req.ClosesAt
	}
	for _, s := range req.Services {
		shop.Services = append(shop.Services, models.ShopService{
			Name:        s.Name,
			Price:       s.Price,
			Duration:    s.Duration,
			Description: s.Description,
		})
	}

	if err := storage.DB.Create(&shop).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка создания барбершопа",
			Details: err.Error(),
		})
		return
	}

	invalidateShopsCache()
	c.JSON(http.StatusCreated, shopResponse(shop))
}

// GetShopsHandler обрабатывает запрос каталога барбершопов
// @Summary		Каталог барбершопов
// @Description	Возвращает все барбершопы, кэширует результат в Redis
// @Tags			shops
// @Accept			json
// @Produce		json
// @Success		200	{array}		ShopResponse	"Список барбершопов"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/shops [get]
func GetShopsHandler(c *gin.Context) {
	// Проверка кэша
	if storage.RedisClient != nil {
		cached, err := storage.RedisClient.Get(ctx, shopsCacheKey).Result()
		if err == nil && cached != "" {
			var shops []ShopResponse
			if err := json.Unmarshal([]byte(cached), &shops); err == nil {
				c.JSON(http.StatusOK, shops)
				return
			}
		}
	}

	var shops []models.Shop
	if err := storage.DB.Preload("Services").Find(&shops).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки каталога",
			Details: err.Error(),
		})
		return
	}

	result := make([]ShopResponse, 0, len(shops))
	for _, shop := range shops {
		result = append(result, shopResponse(shop))
	}

	// Кэширование каталога на 5 минут
	if storage.RedisClient != nil {
		if payload, err := json.Marshal(result); err == nil {
			storage.RedisClient.Set(ctx, shopsCacheKey, string(payload), 5*time.Minute)
		}
	}

	c.JSON(http.StatusOK, result)
}

// GetShopHandler обрабатывает запрос одного барбершопа
// @Summary		Барбершоп по ID
// @Tags			shops
// @Accept			json
// @Produce		json
// @Param			shopId	path		string	true	"ID барбершопа"
// @Success		200	{object}	ShopResponse	"Барбершоп"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_SHOP_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Барбершоп не найден (SHOP_NOT_FOUND)"
// @Router			/shops/{shopId} [get]
func GetShopHandler(c *gin.Context) {
	shopID, err := strconv.Atoi(c.Param("shopId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SHOP_ID",
			Message: "Неверный идентификатор барбершопа",
		})
		return
	}

	var shop models.Shop
	if err := storage.DB.Preload("Services").First(&shop, shopID).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "SHOP_NOT_FOUND",
			Message: "Барбершоп не найден",
		})
		return
	}

	c.JSON(http.StatusOK, shopResponse(shop))
}

// UpdateShopHandler обрабатывает обновление барбершопа
// @Summary		Обновление барбершопа
// @Description	Частичное обновление полей барбершопа владельцем
// @Tags			shops
// @Accept			json
// @Produce		json
// @Param			shopId	path		string				true	"ID барбершопа"
// @Param			shop	body		UpdateShopRequest	true	"Изменяемые поля"
// @Security		BearerAuth
// @Success		200	{object}	ShopResponse	"Обновлённый барбершоп"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_SHOP_ID, VALIDATION_ERROR)"
// @Failure		403	{object}	response.ErrorResponse	"Не владелец (NOT_SHOP_OWNER)"
// @Failure		404	{object}	response.ErrorResponse	"Барбершоп не найден (SHOP_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/shops/{shopId} [put]
func UpdateShopHandler(c *gin.Context) {
	shopID, err := strconv.Atoi(c.Param("shopId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SHOP_ID",
			Message: "Неверный идентификатор барбершопа",
		})
		return
	}

	var req UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	userID := c.GetUint("userID")
	shop, ok := loadOwnedShop(c, shopID, userID)
	if !ok {
		return
	}

	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.Description != nil {
		shop.Description = *req.Description
	}
	if req.AverageWaitTime != nil && *req.AverageWaitTime > 0 {
		shop.AverageWaitTime = *req.AverageWaitTime
	}
	if req.OpensAt != nil {
		shop.OpensAt = *req.OpensAt
	}
	if req.ClosesAt != nil {
		shop.ClosesAt = *req.ClosesAt
	}

	if err := storage.DB.Save(&shop).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка обновления барбершопа",
			Details: err.Error(),
		})
		return
	}

	invalidateShopsCache()

	storage.DB.Preload("Services").First(&shop, shop.ID)
	c.JSON(http.StatusOK, shopResponse(shop))
}

// ToggleShopStatusHandler переключает активность барбершопа
// @Summary		Переключение активности
// @Description	Открывает или закрывает запись клиентов в барбершоп
// @Tags			shops
// @Accept			json
// @Produce		json
// @Param			shopId	path		string	true	"ID барбершопа"
// @Security		BearerAuth
// @Success		200	{object}	ShopResponse	"Барбершоп с новым статусом"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_SHOP_ID)"
// @Failure		403	{object}	response.ErrorResponse	"Не владелец (NOT_SHOP_OWNER)"
// @Failure		404	{object}	response.ErrorResponse	"Барбершоп не найден (SHOP_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/shops/{shopId}/toggle [patch]
func ToggleShopStatusHandler(c *gin.Context) {
	shopID, err := strconv.Atoi(c.Param("shopId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SHOP_ID",
			Message: "Неверный идентификатор барбершопа",
		})
		return
	}

	userID := c.GetUint("userID")
	shop, ok := loadOwnedShop(c, shopID, userID)
	if !ok {
		return
	}

	if err := storage.DB.Model(&shop).Update("is_active", !shop.IsActive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка переключения статуса",
			Details: err.Error(),
		})
		return
	}

	invalidateShopsCache()

	storage.DB.Preload("Services").First(&shop, shop.ID)
	c.JSON(http.StatusOK, shopResponse(shop))
}

// GetMyShopsHandler возвращает барбершопы текущего пользователя
// @Summary		Мои барбершопы
// @Tags			shops
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		ShopResponse	"Барбершопы владельца"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/shops/my [get]
func GetMyShopsHandler(c *gin.Context) {
	userID := c.GetUint("userID")

	var shops []models.Shop
	if err := storage.DB.Preload("Services").
		Where("owner_id = ?", userID).
		Find(&shops).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки барбершопов",
			Details: err.Error(),
		})
		return
	}

	result := make([]ShopResponse, 0, len(shops))
	for _, shop := range shops {
		result = append(result, shopResponse(shop))
	}
	c.JSON(http.StatusOK, result)
}

// AddShopServiceHandler добавляет услугу в барбершоп
// @Summary		Добавление услуги
// @Tags			shops
// @Accept			json
// @Produce		json
// @Param			shopId	path		string				true	"ID барбершопа"
// @Param			service	body		ShopServiceInput	true	"Услуга"
// @Security		BearerAuth
// @Success		201	{object}	ShopServiceResponse	"Созданная услуга"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_SHOP_ID, VALIDATION_ERROR)"
// @Failure		403	{object}	response.ErrorResponse	"Не владелец (NOT_SHOP_OWNER)"
// @Failure		404	{object}	response.ErrorResponse	"Барбершоп не найден (SHOP_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/shops/{shopId}/services [post]
func AddShopServiceHandler(c *gin.Context) {
	shopID, err := strconv.Atoi(c.Param("shopId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SHOP_ID",
			Message: "Неверный идентификатор барбершопа",
		})
		return
	}

	var req ShopServiceInput
	if err := c.ShouldBindJSON(&req); err != nil || req.Price < 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Услуге нужны название и неотрицательная цена",
		})
		return
	}

	userID := c.GetUint("userID")
	shop, ok := loadOwnedShop(c, shopID, userID)
	if !ok {
		return
	}

	service := models.ShopService{
		ShopID:      shop.ID,
		Name:        req.Name,
		Price:       req.Price,
		Duration:    req.Duration,
		Description: req.Description,
	}
	if err := storage.DB.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка добавления услуги",
			Details: err.Error(),
		})
		return
	}

	invalidateShopsCache()
	c.JSON(http.StatusCreated, ShopServiceResponse{
		ID:          service.ID,
		Name:        service.Name,
		Price:       service.Price,
		Duration:    service.Duration,
		Description: service.Description,
	})
}

// UpdateShopServiceHandler обновляет услугу барбершопа
// @Summary		Обновление услуги
// @Tags			shops
// @Accept			json
// @Produce		json
// @Param			shopId		path		string				true	"ID барбершопа"
// @Param			serviceId	path		string				true	"ID услуги"
// @Param			service		body		ShopServiceInput	true	"Услуга"
// @Security		BearerAuth
// @Success		200	{object}	ShopServiceResponse	"Обновлённая услуга"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации"
// @Failure		403	{object}	response.ErrorResponse	"Не владелец (NOT_SHOP_OWNER)"
// @Failure		404	{object}	response.ErrorResponse	"Барбершоп или услуга не найдены"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/shops/{shopId}/services/{serviceId} [put]
func UpdateShopServiceHandler(c *gin.Context) {
	shopID, err := strconv.Atoi(c.Param("shopId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SHOP_ID",
			Message: "Неверный идентификатор барбершопа",
		})
		return
	}
	serviceID, err := strconv.Atoi(c.Param("serviceId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SERVICE_ID",
			Message: "Неверный идентификатор услуги",
		})
		return
	}

	var req ShopServiceInput
	if err := c.ShouldBindJSON(&req); err != nil || req.Price < 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Услуге нужны название и неотрицательная цена",
		})
		return
	}

	userID := c.GetUint("userID")
	shop, ok := loadOwnedShop(c, shopID, userID)
	if !ok {
		return
	}

	var service models.ShopService
	if err := storage.DB.
		Where("id = ? AND shop_id = ?", serviceID, shop.ID).
		First(&service).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "SERVICE_NOT_FOUND",
			Message: "Услуга не найдена",
		})
		return
	}

	service.Name = req.Name
	service.Price = req.Price
	service.Duration = req.Duration
	service.Description = req.Description
	if err := storage.DB.Save(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка обновления услуги",
			Details: err.Error(),
		})
		return
	}

	invalidateShopsCache()
	c.JSON(http.StatusOK, ShopServiceResponse{
		ID:          service.ID,
		Name:        service.Name,
		Price:       service.Price,
		Duration:    service.Duration,
		Description: service.Description,
	})
}

// DeleteShopServiceHandler удаляет услугу барбершопа
// @Summary		Удаление услуги
// @Tags			shops
// @Accept			json
// @Produce		json
// @Param			shopId		path		string	true	"ID барбершопа"
// @Param			serviceId	path		string	true	"ID услуги"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse	"Услуга удалена"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации"
// @Failure		403	{object}	response.ErrorResponse	"Не владелец (NOT_SHOP_OWNER)"
// @Failure		404	{object}	response.ErrorResponse	"Барбершоп или услуга не найдены"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/shops/{shopId}/services/{serviceId} [delete]
func DeleteShopServiceHandler(c *gin.Context) {
	shopID, err := strconv.Atoi(c.Param("shopId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SHOP_ID",
			Message: "Неверный идентификатор барбершопа",
		})
		return
	}
	serviceID, err := strconv.Atoi(c.Param("serviceId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SERVICE_ID",
			Message: "Неверный идентификатор услуги",
		})
		return
	}

	userID := c.GetUint("userID")
	shop, ok := loadOwnedShop(c, shopID, userID)
	if !ok {
		return
	}

	result := storage.DB.Where("id = ? AND shop_id = ?", serviceID, shop.ID).Delete(&models.ShopService{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка удаления услуги",
			Details: result.Error.Error(),
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "SERVICE_NOT_FOUND",
			Message: "Услуга не найдена",
		})
		return
	}

	invalidateShopsCache()
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Услуга удалена"})
}
