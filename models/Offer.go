package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Offer is a promotional discount the marketing pages run for a date window.
type Offer struct {
	gorm.Model
	Name         string         `json:"name" gorm:"size:200;not null"`
	Description  string         `json:"description" gorm:"type:text"`
	DiscountType string         `json:"discountType" gorm:"type:varchar(20);not null"` // percentage, fixed
	Value        float64        `json:"value" gorm:"not null"`
	StartDate    time.Time      `json:"startDate"`
	EndDate      time.Time      `json:"endDate"`
	RoomTypes    datatypes.JSON `json:"roomTypes" gorm:"type:jsonb"` // room type names the offer applies to
	IsActive     *bool          `json:"isActive" gorm:"default:true"`
}

// Live reports whether the offer is active and its date window contains now.
func (o *Offer) Live(now time.Time) bool {
	if o.IsActive != nil && !*o.IsActive {
		return false
	}
	if !o.StartDate.IsZero() && now.Before(o.StartDate) {
		return false
	}
	if !o.EndDate.IsZero() && now.After(o.EndDate) {
		return false
	}
	return true
}
