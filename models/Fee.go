package models

import "gorm.io/gorm"

// Fee is a recurring charge attached to stays (cleaning, city tax, ...).
type Fee struct {
	gorm.Model
	Name        string  `json:"name" gorm:"size:200;not null"`
	Description string  `json:"description" gorm:"type:text"`
	Amount      float64 `json:"amount" gorm:"not null"`
	Currency    string  `json:"currency" gorm:"size:10"`
	ChargeType  string  `json:"chargeType" gorm:"type:varchar(20);default:'per_stay'"` // per_stay, per_night, per_person
	Taxable     bool    `json:"taxable" gorm:"default:false"`
	IsActive    *bool   `json:"isActive" gorm:"default:true"`
}
