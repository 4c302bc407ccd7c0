package tasks

import (
	"log"
	"strconv"
	"time"

	"hair_queue/internal/models"
	"hair_queue/internal/queue"
	"hair_queue/internal/storage"
	"hair_queue/internal/ws"

	"github.com/robfig/cron/v3"
)

// CancelStaleEntries отменяет зависшие записи: клиент записался, но очередь за сутки
// до него так и не дошла (магазин забыл звать следующих или закрылся). После отмены
// позиции оставшихся пересчитываются заново.
func CancelStaleEntries() {
	cutoff := time.Now().Add(-24 * time.Hour)

	// Магазины, у которых есть устаревшие активные записи.
	var shopIDs []uint
	if err := storage.DB.Model(&models.QueueEntry{}).
		Where("status IN ? AND created_at < ?",
			[]string{models.StatusWaiting, models.StatusInProgress}, cutoff).
		Distinct("shop_id").
		Pluck("shop_id", &shopIDs).Error; err != nil {
		log.Println("Ошибка поиска устаревших записей:", err)
		return
	}

	for _, shopID := range shopIDs {
		lock := queue.ShopLock(shopID)
		lock.Lock()

		result := storage.DB.Model(&models.QueueEntry{}).
			Where("shop_id = ? AND status IN ? AND created_at < ?",
				shopID, []string{models.StatusWaiting, models.StatusInProgress}, cutoff).
			Update("status", models.StatusCancelled)
		if result.Error != nil {
			log.Println("Ошибка отмены устаревших записей магазина", shopID, ":", result.Error)
			lock.Unlock()
			continue
		}

		// Отмена могла выбить записи из середины очереди — нумеруем заново.
		if err := queue.RecomputePositions(storage.DB, shopID); err != nil {
			log.Println("Ошибка пересчёта позиций магазина", shopID, ":", err)
		}
		lock.Unlock()

		log.Printf("Магазин %d: отменено %d устаревших записей\n", shopID, result.RowsAffected)
		ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
			EventType: "queue_reset",
			ShopID:    strconv.Itoa(int(shopID)),
			Data: map[string]interface{}{
				"cancelled": result.RowsAffected,
			},
		})
	}
}

// ReconcileQueuePositions — корректирующий проход: если упавшая на полпути операция
// оставила дыру в нумерации, здесь позиции восстанавливаются из текущего состояния.
// Для консистентных очередей проход ничего не пишет.
func ReconcileQueuePositions() {
	var shopIDs []uint
	if err := storage.DB.Model(&models.QueueEntry{}).
		Where("status = ?", models.StatusWaiting).
		Distinct("shop_id").
		Pluck("shop_id", &shopIDs).Error; err != nil {
		log.Println("Ошибка поиска очередей для сверки:", err)
		return
	}

	for _, shopID := range shopIDs {
		lock := queue.ShopLock(shopID)
		lock.Lock()
		if err := queue.RecomputePositions(storage.DB, shopID); err != nil {
			log.Println("Ошибка сверки позиций магазина", shopID, ":", err)
		}
		lock.Unlock()
	}
}

// InitScheduler инициализирует планировщик cron-задач.
func InitScheduler() *cron.Cron {
	c := cron.New(cron.WithSeconds())

	// Сверка нумерации очередей каждый час.
	_, err := c.AddFunc("0 0 * * * *", ReconcileQueuePositions)
	if err != nil {
		log.Println("Ошибка запуска cron-задачи ReconcileQueuePositions:", err)
	}

	// Очистка зависших записей каждый день в 03:00.
	_, err = c.AddFunc("0 0 3 * * *", CancelStaleEntries)
	if err != nil {
		log.Println("Ошибка запуска cron-задачи CancelStaleEntries:", err)
	}

	c.Start()
	log.Println("Cron-планировщик запущен.")
	return c
}
