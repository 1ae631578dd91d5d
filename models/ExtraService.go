package models

import "gorm.io/gorm"

// ExtraService is a bookable add-on (airport pickup, spa access, ...).
type ExtraService struct {
	gorm.Model
	Name        string  `json:"name" gorm:"size:200;not null"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit" gorm:"size:50"`      // per_person, per_hour, flat
	Category    string  `json:"category" gorm:"size:100"` // transport, wellness, dining
	IsActive    *bool   `json:"isActive" gorm:"default:true"`
}
