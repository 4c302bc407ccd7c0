package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FullName string `gorm:"not null"`
	Email    string `gorm:"uniqueIndex;not null"`
	Role     string `gorm:"default:customer"` // customer или barber
}

type Shop struct {
	gorm.Model
	Name            string `gorm:"index;not null"`
	OwnerID         uint   `gorm:"index;not null"`
	Owner           User   `gorm:"foreignKey:OwnerID"`
	Phone           string
	Address         string
	Description     string
	IsActive        bool          `gorm:"default:true"`  // Принимает ли барбершоп клиентов сейчас
	AverageWaitTime int           `gorm:"default:15"`    // Среднее время обслуживания одного клиента, минуты
	OpensAt         string        `gorm:"default:09:00"` // Время открытия, "HH:MM"
	ClosesAt        string        `gorm:"default:21:00"` // Время закрытия, "HH:MM"
	Services        []ShopService `gorm:"foreignKey:ShopID"`
}

type ShopService struct {
	gorm.Model
	ShopID      uint    `gorm:"index;not null"`
	Name        string  `gorm:"not null"`
	Price       float64 `gorm:"not null"`
	Duration    int     // Длительность услуги, минуты
	Description string
}
