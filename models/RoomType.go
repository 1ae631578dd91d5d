package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// RoomType is a catalog entry rooms reference by name from the structure
// tree (Single, Double, Suite, ...).
type RoomType struct {
	gorm.Model
	Name        string  `json:"name" gorm:"uniqueIndex;size:100"`
	Description string  `json:"description" gorm:"type:text"`
	BasePrice   float64 `json:"basePrice"`
	Capacity    int     `json:"capacity"`
	Amenities   string  `json:"amenities"` // JSON array of strings
	IsActive    *bool   `json:"isActive" gorm:"default:true"`
}

// Custom JSON marshaling to convert the Amenities string to an array
func (rt *RoomType) MarshalJSON() ([]byte, error) {
	type Alias RoomType
	aux := &struct {
		Amenities []string `json:"amenities"`
		*Alias
	}{
		Amenities: []string{},
		Alias:     (*Alias)(rt),
	}
	if rt.Amenities != "" {
		var amenities []string
		if err := json.Unmarshal([]byte(rt.Amenities), &amenities); err == nil {
			aux.Amenities = amenities
		}
	}
	return json.Marshal(aux)
}
