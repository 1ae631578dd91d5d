package main

import (
	"encoding/json"
	"fmt"
	"log"

	"hotel-dashboard-server/models"
	"hotel-dashboard-server/storage"

	"gorm.io/gorm/clause"
)

var catalog = []struct {
	Name      string
	BasePrice float64
	Capacity  int
	Amenities []string
}{
	{"Single", 60, 1, []string{"WiFi", "TV"}},
	{"Double", 90, 2, []string{"WiFi", "TV", "Minibar"}},
	{"Twin", 90, 2, []string{"WiFi", "TV"}},
	{"Suite", 180, 4, []string{"WiFi", "TV", "Minibar", "Living Area"}},
	{"Family", 140, 5, []string{"WiFi", "TV", "Kitchenette"}},
}

func main() {
	// Initialize database
	storage.InitializeDB()

	active := true
	for _, entry := range catalog {
		amenitiesJSON, _ := json.Marshal(entry.Amenities)
		roomType := models.RoomType{
			Name:      entry.Name,
			BasePrice: entry.BasePrice,
			Capacity:  entry.Capacity,
			Amenities: string(amenitiesJSON),
			IsActive:  &active,
		}
		// Re-running the seed never duplicates or overwrites edits.
		result := storage.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&roomType)
		if result.Error != nil {
			log.Fatalf("Error seeding room type %s: %v", entry.Name, result.Error)
		}
	}

	fmt.Println("Room type catalog seeding completed successfully!")
}
