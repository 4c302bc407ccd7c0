package queue

import (
	"time"

	"hair_queue/internal/models"

	"gorm.io/gorm"
)

// NextPosition вычисляет позицию для нового участника очереди:
// максимальная позиция среди ожидающих записей магазина + 1, либо 1 для пустой очереди.
// Вызывать только под ShopLock соответствующего магазина.
func NextPosition(db *gorm.DB, shopID uint) (int, error) {
	var maxPosition int
	row := db.Model(&models.QueueEntry{}).
		Where("shop_id = ? AND status = ?", shopID, models.StatusWaiting).
		Select("COALESCE(MAX(position),0)").Row()
	if err := row.Scan(&maxPosition); err != nil {
		return 0, err
	}
	return maxPosition + 1, nil
}

// RenumberAfter сдвигает на единицу вниз все ожидающие записи магазина с позицией
// больше fromPos. Граница берётся из текущего состояния записи, поэтому повторный
// вызов после уже выполненного сдвига ничего не меняет.
func RenumberAfter(db *gorm.DB, shopID uint, fromPos int) error {
	return db.Model(&models.QueueEntry{}).
		Where("shop_id = ? AND status = ? AND position > ?", shopID, models.StatusWaiting, fromPos).
		UpdateColumn("position", gorm.Expr("position - 1")).Error
}

// RecomputePositions полностью пересчитывает позиции ожидающих записей магазина:
// сортировка по (position, id) и перенумерация 1..N. Корректирующий проход на случай,
// если частично упавшая операция оставила дыру в нумерации. Для плотной очереди — no-op.
func RecomputePositions(db *gorm.DB, shopID uint) error {
	var entries []models.QueueEntry
	if err := db.
		Where("shop_id = ? AND status = ?", shopID, models.StatusWaiting).
		Order("position ASC, id ASC").
		Find(&entries).Error; err != nil {
		return err
	}

	for i, entry := range entries {
		want := i + 1
		if entry.Position == want {
			continue
		}
		if err := db.Model(&models.QueueEntry{}).
			Where("id = ?", entry.ID).
			UpdateColumn("position", want).Error; err != nil {
			return err
		}
	}
	return nil
}

// EstimateStart оценивает время начала обслуживания для позиции в очереди.
// Считается один раз при записи и дальше не пересчитывается, даже если очередь
// впереди сдвинулась.
func EstimateStart(position int, averageWaitMinutes int) time.Time {
	return time.Now().Add(time.Duration(position-1) * time.Duration(averageWaitMinutes) * time.Minute)
}
