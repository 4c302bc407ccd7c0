package handlers

import (
	"net/http"
	"strconv"
	"time"

	"hair_queue/internal/models"
	"hair_queue/internal/queue"
	"hair_queue/internal/response"
	"hair_queue/internal/storage"
	"hair_queue/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ServiceInput struct {
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
}

type JoinQueueRequest struct {
	Service ServiceInput `json:"service" binding:"required"`
}

// QueueEntryResponse — запись очереди в ответах API.
type QueueEntryResponse struct {
	ID                 uint      `json:"id"`
	ShopID             uint      `json:"shop_id"`
	CustomerID         uint      `json:"customer_id"`
	CustomerName       string    `json:"customer_name,omitempty"`
	ServiceName        string    `json:"service_name"`
	ServicePrice       float64   `json:"service_price"`
	Status             string    `json:"status"`
	Position           int       `json:"position"`
	EstimatedStartTime time.Time `json:"estimated_start_time"`
}

func entryResponse(entry models.QueueEntry) QueueEntryResponse {
	return QueueEntryResponse{
		ID:                 entry.ID,
		ShopID:             entry.ShopID,
		CustomerID:         entry.CustomerID,
		CustomerName:       entry.Customer.FullName,
		ServiceName:        entry.ServiceName,
		ServicePrice:       entry.ServicePrice,
		Status:             entry.Status,
		Position:           entry.Position,
		EstimatedStartTime: entry.EstimatedStartTime,
	}
}

// JoinQueueHandler обрабатывает запрос на вступление в очередь барбершопа
// @Summary		Вступление в очередь
// @Description	Записывает клиента в конец живой очереди барбершопа
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			shopId	path		string				true	"ID барбершопа"
// @Param			service	body		JoinQueueRequest	true	"Выбранная услуга"
// @Security		BearerAuth
// @Success		201	{object}	QueueEntryResponse	"Созданная запись в очереди"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_SHOP_ID, INVALID_SERVICE)"
// @Failure		404	{object}	response.ErrorResponse	"Барбершоп не найден или закрыт (SHOP_NOT_FOUND, SHOP_INACTIVE)"
// @Failure		409	{object}	response.ErrorResponse	"Клиент уже в очереди (ALREADY_IN_QUEUE)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/queue/{shopId}/join [post]
func JoinQueueHandler(c *gin.Context) {
	shopIDStr := c.Param("id")
	shopID, err := strconv.Atoi(shopIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SHOP_ID",
			Message: "Неверный идентификатор барбершопа",
		})
		return
	}

	var req JoinQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SERVICE",
			Message: "Нужно указать услугу с названием и ценой",
			Details: err.Error(),
		})
		return
	}
	if req.Service.Name == "" || req.Service.Price == nil || *req.Service.Price < 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SERVICE",
			Message: "Название услуги не должно быть пустым, цена — неотрицательной",
		})
		return
	}

	userID := c.GetUint("userID")

	var shop models.Shop
	if err := storage.DB.First(&shop, shopID).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "SHOP_NOT_FOUND",
			Message: "Барбершоп не найден",
		})
		return
	}
	if !shop.IsActive {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "SHOP_INACTIVE",
			Message: "Барбершоп сейчас не принимает клиентов",
		})
		return
	}

	// Выдача позиции сериализуется по магазину: два конкурентных join
	// не должны получить одинаковую позицию.
	lock := queue.ShopLock(uint(shopID))
	lock.Lock()
	defer lock.Unlock()

	var existing models.QueueEntry
	if err := storage.DB.
		Where("shop_id = ? AND customer_id = ? AND status IN ?",
			shopID, userID, []string{models.StatusWaiting, models.StatusInProgress}).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, response.ErrorResponse{
			Code:    "ALREADY_IN_QUEUE",
			Message: "Клиент уже состоит в очереди этого барбершопа",
		})
		return
	}

	position, err := queue.NextPosition(storage.DB, uint(shopID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка вычисления позиции в очереди",
			Details: err.Error(),
		})
		return
	}

	entry := models.QueueEntry{
		ShopID:             uint(shopID),
		CustomerID:         userID,
		ServiceName:        req.Service.Name,
		ServicePrice:       *req.Service.Price,
		Status:             models.StatusWaiting,
		Position:           position,
		EstimatedStartTime: queue.EstimateStart(position, shop.AverageWaitTime),
	}

	if err := storage.DB.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка добавления в очередь",
			Details: err.Error(),
		})
		return
	}

	ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
		EventType: "user_joined",
		ShopID:    shopIDStr,
		Data: map[string]interface{}{
			"entry_id": entry.ID,
			"user_id":  userID,
			"position": position,
		},
	})

	c.JSON(http.StatusCreated, entryResponse(entry))
}

// LeaveQueueHandler обрабатывает запрос на выход из очереди
// @Summary		Выход из очереди
// @Description	Отменяет запись клиента и сдвигает позиции оставшихся участников
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			entryId	path		string	true	"ID записи в очереди"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse	"Успешный выход из очереди"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_ENTRY_ID)"
// @Failure		403	{object}	response.ErrorResponse	"Чужая запись (NOT_YOUR_ENTRY)"
// @Failure		404	{object}	response.ErrorResponse	"Запись не найдена (ENTRY_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/queue/{entryId}/leave [delete]
func LeaveQueueHandler(c *gin.Context) {
	entryIDStr := c.Param("id")
	entryID, err := strconv.Atoi(entryIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_ENTRY_ID",
			Message: "Неверный идентификатор записи",
		})
		return
	}

	userID := c.GetUint("userID")

	var entry models.QueueEntry
	if err := storage.DB.First(&entry, entryID).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "ENTRY_NOT_FOUND",
			Message: "Запись в очереди не найдена",
		})
		return
	}
	if entry.CustomerID != userID {
		c.JSON(http.StatusForbidden, response.ErrorResponse{
			Code:    "NOT_YOUR_ENTRY",
			Message: "Можно отменить только свою запись",
		})
		return
	}

	lock := queue.ShopLock(entry.ShopID)
	lock.Lock()
	defer lock.Unlock()

	var wasWaiting bool
	err = storage.DB.Transaction(func(tx *gorm.DB) error {
		// Перечитываем запись под замком: статус мог измениться,
		// пока запрос ждал своей очереди.
		if err := tx.First(&entry, entryID).Error; err != nil {
			return err
		}
		wasWaiting = entry.Status == models.StatusWaiting

		if err := tx.Model(&models.QueueEntry{}).
			Where("id = ?", entry.ID).
			Update("status", models.StatusCancelled).Error; err != nil {
			return err
		}

		// Сдвигаем оставшихся только если отменённая запись действительно ждала:
		// позиция завершённой или уже отменённой записи не входит в нумерацию,
		// и сдвиг по ней испортил бы позиции непричастных участников.
		if wasWaiting {
			return queue.RenumberAfter(tx, entry.ShopID, entry.Position)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при выходе из очереди",
			Details: err.Error(),
		})
		return
	}

	if wasWaiting {
		ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
			EventType: "user_left",
			ShopID:    strconv.Itoa(int(entry.ShopID)),
			Data: map[string]interface{}{
				"entry_id":      entry.ID,
				"user_id":       userID,
				"left_position": entry.Position,
			},
		})
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Вы успешно вышли из очереди"})
}

// NextCustomerHandler обрабатывает запрос владельца "позвать следующего"
// @Summary		Следующий клиент
// @Description	Завершает текущее обслуживание и приглашает клиента с минимальной позицией
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			shopId	path		string	true	"ID барбершопа"
// @Security		BearerAuth
// @Success		200	{object}	QueueEntryResponse	"Приглашённый клиент либо сообщение о пустой очереди"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_SHOP_ID)"
// @Failure		403	{object}	response.ErrorResponse	"Не владелец барбершопа (NOT_SHOP_OWNER)"
// @Failure		404	{object}	response.ErrorResponse	"Барбершоп не найден (SHOP_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/queue/{shopId}/next [post]
func NextCustomerHandler(c *gin.Context) {
	shopIDStr := c.Param("id")
	shopID, err := strconv.Atoi(shopIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SHOP_ID",
			Message: "Неверный идентификатор барбершопа",
		})
		return
	}

	userID := c.GetUint("userID")

	var shop models.Shop
	if err := storage.DB.First(&shop, shopID).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "SHOP_NOT_FOUND",
			Message: "Барбершоп не найден",
		})
		return
	}
	if shop.OwnerID != userID {
		c.JSON(http.StatusForbidden, response.ErrorResponse{
			Code:    "NOT_SHOP_OWNER",
			Message: "Звать следующего может только владелец барбершопа",
		})
		return
	}

	lock := queue.ShopLock(uint(shopID))
	lock.Lock()
	defer lock.Unlock()

	var promoted *models.QueueEntry
	err = storage.DB.Transaction(func(tx *gorm.DB) error {
		// Завершаем текущее обслуживание, если оно идёт.
		var current models.QueueEntry
		if err := tx.
			Where("shop_id = ? AND status = ?", shopID, models.StatusInProgress).
			First(&current).Error; err == nil {
			if err := tx.Model(&models.QueueEntry{}).
				Where("id = ?", current.ID).
				Update("status", models.StatusCompleted).Error; err != nil {
				return err
			}
		}

		var next models.QueueEntry
		if err := tx.Preload("Customer").
			Where("shop_id = ? AND status = ?", shopID, models.StatusWaiting).
			Order("position ASC").
			First(&next).Error; err != nil {
			// Пустая очередь — не ошибка.
			return nil
		}

		if err := tx.Model(&models.QueueEntry{}).
			Where("id = ?", next.ID).
			Update("status", models.StatusInProgress).Error; err != nil {
			return err
		}
		next.Status = models.StatusInProgress

		// Приглашённый выбыл из ожидающих, оставшиеся сдвигаются на 1..N-1.
		if err := queue.RenumberAfter(tx, uint(shopID), next.Position); err != nil {
			return err
		}

		promoted = &next
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при вызове следующего клиента",
			Details: err.Error(),
		})
		return
	}

	if promoted == nil {
		c.JSON(http.StatusOK, response.SuccessResponse{Message: "Нет клиентов в очереди"})
		return
	}

	ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
		EventType: "queue_advanced",
		ShopID:    shopIDStr,
		Data: map[string]interface{}{
			"entry_id": promoted.ID,
			"user_id":  promoted.CustomerID,
		},
	})

	c.JSON(http.StatusOK, entryResponse(*promoted))
}

// ShopQueueResponse содержит живую очередь барбершопа.
type ShopQueueResponse struct {
	ShopID  uint                 `json:"shop_id"`
	Entries []QueueEntryResponse `json:"entries"`
}

// GetShopQueueHandler обрабатывает запрос на получение очереди барбершопа
// @Summary		Очередь барбершопа
// @Description	Возвращает активные записи (ожидающие и обслуживаемого) по возрастанию позиции
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			shopId	path		string	true	"ID барбершопа"
// @Success		200	{object}	ShopQueueResponse	"Активные записи очереди"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_SHOP_ID)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/queue/shop/{shopId} [get]
func GetShopQueueHandler(c *gin.Context) {
	shopIDStr := c.Param("shopId")
	shopID, err := strconv.Atoi(shopIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SHOP_ID",
			Message: "Неверный идентификатор барбершопа",
		})
		return
	}

	var entries []models.QueueEntry
	if err := storage.DB.
		Preload("Customer").
		Where("shop_id = ? AND status IN ?",
			shopID, []string{models.StatusWaiting, models.StatusInProgress}).
		Order("position ASC").
		Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки очереди",
			Details: err.Error(),
		})
		return
	}

	items := make([]QueueEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, entryResponse(entry))
	}

	c.JSON(http.StatusOK, ShopQueueResponse{
		ShopID:  uint(shopID),
		Entries: items,
	})
}
