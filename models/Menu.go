package models

import "gorm.io/gorm"

// Menu groups the items served by one outlet or daypart.
type Menu struct {
	gorm.Model
	Name        string     `json:"name" gorm:"size:200;not null"`
	Description string     `json:"description" gorm:"type:text"`
	Type        string     `json:"type" gorm:"type:varchar(30);index"` // breakfast, lunch, dinner, room_service, bar
	IsActive    *bool      `json:"isActive" gorm:"default:true"`
	Items       []MenuItem `json:"items" gorm:"foreignKey:MenuID"`
}

type MenuItem struct {
	gorm.Model
	MenuID      uint    `json:"menuID" gorm:"index;not null"`
	Name        string  `json:"name" gorm:"size:200;not null"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"price"`
	Category    string  `json:"category" gorm:"size:100"` // starter, main, dessert, drink
	Available   *bool   `json:"available" gorm:"default:true"`
}
