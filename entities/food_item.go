package entities

import (
	"time"
)

type FoodItem struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          string    `gorm:"index;not null" json:"user_id"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Category        string    `gorm:"size:100" json:"category,omitempty"`
	PreparationDate time.Time `gorm:"type:date;not null" json:"preparation_date"`
	DaysToExpiry    int       `gorm:"not null" json:"days_to_expiry"`
	ExpiryDate      time.Time `gorm:"type:date;not null;index" json:"expiry_date"` // PreparationDate + DaysToExpiry
	Quantity        string    `gorm:"size:100" json:"quantity,omitempty"`
	Location        string    `gorm:"size:255" json:"location,omitempty"`

	Timestamp
}
