package models

import (
	"time"

	"gorm.io/gorm"
)

// Статусы записи в очереди.
const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

type QueueEntry struct {
	gorm.Model
	ShopID             uint    `gorm:"index:idx_shop_status_position;index:idx_shop_customer;not null"`
	Shop               Shop    `gorm:"foreignKey:ShopID"`
	CustomerID         uint    `gorm:"index:idx_shop_customer;not null"`
	Customer           User    `gorm:"foreignKey:CustomerID"`
	ServiceName        string  `gorm:"not null"` // Снимок услуги на момент записи, после не меняется
	ServicePrice       float64 `gorm:"not null"`
	Status             string  `gorm:"index:idx_shop_status_position;default:waiting"`
	Position           int     `gorm:"index:idx_shop_status_position"` // Позиция в очереди, актуальна только для status=waiting
	EstimatedStartTime time.Time
}
