package handlers

import (
	"net/http"
	"time"

	"hair_queue/internal/models"
	"hair_queue/internal/response"
	"hair_queue/internal/storage"

	"github.com/gin-gonic/gin"
)

// UserQueueItem represents a single active queue entry with shop details
type UserQueueItem struct {
	EntryID            uint    `json:"entry_id"`
	ShopID             uint    `json:"shop_id"`
	ShopName           string  `json:"shop_name"`
	ShopAddress        string  `json:"shop_address"`
	ServiceName        string  `json:"service_name"`
	ServicePrice       float64 `json:"service_price"`
	Status             string  `json:"status"`
	Position           int     `json:"position"`
	EstimatedStartTime string  `json:"estimated_start_time"`
}

// GetUserQueuesHandler godoc
// @Summary		Получение списка своих записей
// @Description	Активные записи пользователя в очередях барбершопов
// @Tags			profile
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		UserQueueItem	"Active queue entries of the user"
// @Failure		500	{object}	response.ErrorResponse	"Server error (DB_ERROR)"
// @Router			/profile/queue [get]
func GetUserQueuesHandler(c *gin.Context) {
	userID := c.GetUint("userID")

	// Get all active queue entries for the user
	var entries []models.QueueEntry
	if err := storage.DB.
		Where("customer_id = ? AND status IN ?",
			userID, []string{models.StatusWaiting, models.StatusInProgress}).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Error fetching user queue entries",
			Details: err.Error(),
		})
		return
	}

	if len(entries) == 0 {
		c.JSON(http.StatusOK, []UserQueueItem{})
		return
	}

	// Extract shop IDs
	var shopIDs []uint
	for _, entry := range entries {
		shopIDs = append(shopIDs, entry.ShopID)
	}

	// Get shop details
	var shops []models.Shop
	if err := storage.DB.
		Where("id IN ?", shopIDs).
		Find(&shops).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Error fetching shop details",
			Details: err.Error(),
		})
		return
	}

	// Create a map for quick lookup
	shopMap := make(map[uint]models.Shop)
	for _, s := range shops {
		shopMap[s.ID] = s
	}

	// Build response
	var result []UserQueueItem
	for _, entry := range entries {
		shop, shopExists := shopMap[entry.ShopID]
		if !shopExists {
			continue
		}

		item := UserQueueItem{
			EntryID:            entry.ID,
			ShopID:             shop.ID,
			ShopName:           shop.Name,
			ShopAddress:        shop.Address,
			ServiceName:        entry.ServiceName,
			ServicePrice:       entry.ServicePrice,
			Status:             entry.Status,
			Position:           entry.Position,
			EstimatedStartTime: entry.EstimatedStartTime.Format(time.RFC3339),
		}

		result = append(result, item)
	}

	c.JSON(http.StatusOK, result)
}
